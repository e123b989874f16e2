// Package live pushes reload notifications to connected browsers.
//
// A Hub fans a change signal out to every subscriber. Two transports consume
// subscriptions: Server-Sent Events (SSEHandler) and WebSocket
// (WebSocketHandler). Both send the text "reload" once per signal.
package live

// ReloadMessage is the payload sent to browsers on every change.
const ReloadMessage = "reload"
