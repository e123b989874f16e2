package main

import (
	"errors"
	"os"

	mdlive "github.com/alnah/go-mdlive"
	"github.com/alnah/go-mdlive/internal/config"
)

// Exit codes for the mdlive CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Preview written or server stopped by signal
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Source unreadable or not UTF-8, output not writable
	ExitBrowser = 4 // No browser could be started
	ExitServer  = 5 // Bind or file watch failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, mdlive.ErrNoBrowser) {
		return ExitBrowser
	}

	// Server errors (exit 5)
	if errors.Is(err, mdlive.ErrPortInUse) ||
		errors.Is(err, mdlive.ErrListen) ||
		errors.Is(err, mdlive.ErrWatch) {
		return ExitServer
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, mdlive.ErrStdinInServerMode) ||
		errors.Is(err, mdlive.ErrInvalidAssetPath) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidConfig) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, mdlive.ErrReadSource) ||
		errors.Is(err, mdlive.ErrDecode) ||
		errors.Is(err, mdlive.ErrWriteOutput) ||
		errors.Is(err, mdlive.ErrStyleFile) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	return ExitGeneral
}
