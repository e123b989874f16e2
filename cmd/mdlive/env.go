package main

import (
	"io"
	"os"

	"golang.org/x/term"

	mdlive "github.com/alnah/go-mdlive"
	"github.com/alnah/go-mdlive/internal/browser"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
	Getenv     func(string) string
	Environ    func() []string
	IsTerminal func(io.Reader) bool
	Opener     mdlive.Opener
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Getenv:     os.Getenv,
		Environ:    os.Environ,
		IsTerminal: isTerminal,
		Opener:     browser.New(),
	}
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- fd fits in int
}
