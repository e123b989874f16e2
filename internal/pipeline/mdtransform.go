package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"
)

// ErrInvalidEncoding indicates the source is not valid UTF-8.
var ErrInvalidEncoding = errors.New("input is not valid UTF-8")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// Decode converts raw source bytes to a string.
// A leading UTF-8 byte order mark is removed.
func Decode(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: invalid byte at offset %d", ErrInvalidEncoding, firstInvalidByte(data))
	}
	return string(data), nil
}

func firstInvalidByte(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(data)
}

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor applies transformations before CommonMark conversion.
// It only touches line endings; everything else, code included, reaches
// Goldmark verbatim.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown applies all transformations to prepare Markdown for conversion.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	return normalizeLineEndings(content)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
