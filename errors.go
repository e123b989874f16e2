package mdlive

import (
	"errors"

	"github.com/alnah/go-mdlive/internal/browser"
	"github.com/alnah/go-mdlive/internal/watch"
)

// Sentinel errors for library operations.
var (
	// Input errors.
	ErrDecode            = errors.New("markdown source is not valid UTF-8")
	ErrReadSource        = errors.New("cannot read markdown source")
	ErrStdinInServerMode = errors.New("server mode needs a file to watch")

	// Output errors.
	ErrWriteOutput = errors.New("cannot write preview file")
	ErrNoBrowser   = browser.ErrNoBrowser

	// Server errors.
	ErrPortInUse = errors.New("port already in use")
	ErrListen    = errors.New("cannot listen")
	ErrWatch     = watch.ErrWatch

	// Asset loading errors.
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrStyleFile        = errors.New("cannot read style file")
)
