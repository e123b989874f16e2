package mdlive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ReadInput loads a document from path, or from stdin when path is empty.
// The returned Input carries the file name as Name and the file's directory
// as BaseDir. Documents read from stdin resolve relative links against the
// working directory.
func ReadInput(path string, stdin io.Reader) (Input, error) {
	if path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return Input{}, fmt.Errorf("%w: stdin: %v", ErrReadSource, err)
		}
		dir, _ := os.Getwd()
		return Input{Markdown: data, BaseDir: dir}, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return Input{}, fmt.Errorf("%w: %v", ErrReadSource, err)
	}
	data, err := os.ReadFile(abs) // #nosec G304 -- user-provided path
	if err != nil {
		return Input{}, fmt.Errorf("%w: %w", ErrReadSource, err)
	}
	return Input{
		Name:     filepath.Base(abs),
		Markdown: data,
		BaseDir:  filepath.Dir(abs),
	}, nil
}
