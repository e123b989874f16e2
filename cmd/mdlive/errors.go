package main

import (
	"errors"

	mdlive "github.com/alnah/go-mdlive"
	"github.com/alnah/go-mdlive/internal/config"
	"github.com/alnah/go-mdlive/internal/hints"
)

// hintedError carries a hint computed where the context was known.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() + e.hint }
func (e *hintedError) Unwrap() error { return e.err }

func withHint(err error, hint string) error {
	if hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}

// formatError renders err for stderr with an actionable hint when one
// applies.
func formatError(err error) string {
	msg := "mdlive: " + err.Error()

	var hinted *hintedError
	if errors.As(err, &hinted) {
		return msg
	}

	var notFound *config.NotFoundError
	switch {
	case errors.As(err, &notFound):
		return msg + hints.ForConfigNotFound(notFound.Tried)
	case errors.Is(err, config.ErrConfigNotFound):
		return msg + hints.ForConfigNotFound(nil)
	case errors.Is(err, mdlive.ErrNoBrowser):
		return msg + hints.ForNoBrowser()
	case errors.Is(err, mdlive.ErrWatch):
		return msg + hints.ForWatchLimit()
	case errors.Is(err, mdlive.ErrStdinInServerMode):
		return msg + hints.ForStdinInServerMode()
	case errors.Is(err, mdlive.ErrWriteOutput):
		return msg + hints.ForOutputDirectory()
	case errors.Is(err, ErrUsage):
		return msg + "\n  run 'mdlive --help' for usage"
	}
	return msg
}
