package live

import (
	"sync"

	"github.com/google/uuid"
)

// Hub broadcasts change signals to subscribers.
// Safe for concurrent use.
type Hub struct {
	mu     sync.Mutex
	subs   map[string]*Subscription
	closed bool
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]*Subscription)}
}

// Subscription receives change signals from a Hub.
type Subscription struct {
	ID string

	hub  *Hub
	ch   chan struct{}
	once sync.Once
}

// C returns the signal channel. It is closed when the subscription ends,
// either by Unsubscribe or by Hub.Close.
func (s *Subscription) C() <-chan struct{} {
	return s.ch
}

// Unsubscribe removes the subscription from its hub. Safe to call twice.
func (s *Subscription) Unsubscribe() {
	s.hub.remove(s)
}

// Subscribe registers a new subscriber. On a closed hub the returned
// subscription's channel is already closed.
func (h *Hub) Subscribe() *Subscription {
	sub := &Subscription{
		ID:  uuid.NewString(),
		hub: h,
		ch:  make(chan struct{}, 1),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		sub.once.Do(func() { close(sub.ch) })
		return sub
	}
	h.subs[sub.ID] = sub
	return sub
}

// Publish signals every subscriber without blocking. A subscriber that has
// not consumed the previous signal keeps a single pending one.
func (h *Hub) Publish() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.subs {
		select {
		case sub.ch <- struct{}{}:
		default:
		}
	}
}

// Len returns the number of active subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close ends every subscription. Later subscriptions are closed on arrival.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, sub := range h.subs {
		delete(h.subs, id)
		sub.once.Do(func() { close(sub.ch) })
	}
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.subs, sub.ID)
	sub.once.Do(func() { close(sub.ch) })
}
