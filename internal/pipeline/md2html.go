package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// DefaultHighlightStyle is the chroma style used for fenced code blocks.
const DefaultHighlightStyle = "github"

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter converts Markdown to an HTML fragment using goldmark.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM, footnotes,
// smart punctuation, ==mark== and class-based syntax highlighting.
func NewGoldmarkConverter(highlightStyle string) *GoldmarkConverter {
	if highlightStyle == "" {
		highlightStyle = DefaultHighlightStyle
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,         // Tables, strikethrough, autolinks, task lists
			extension.Footnote,    // [^1] footnotes
			extension.Typographer, // Smart quotes, dashes, ellipses
			MarkExtension,         // ==highlight==
			highlighting.NewHighlighting(
				highlighting.WithStyle(highlightStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // Treat newlines as <br>
			html.WithUnsafe(),    // Raw HTML blocks pass through
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// HighlightCSS returns the stylesheet for the chroma classes emitted by
// GoldmarkConverter. Unknown style names resolve to chroma's fallback style
// and report found=false.
func HighlightCSS(styleName string) (css string, found bool, err error) {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}

	style, found := lookupStyle(styleName)

	var buf strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, style); err != nil {
		return "", found, fmt.Errorf("writing highlight CSS for %q: %w", styleName, err)
	}
	return buf.String(), found, nil
}

// HighlightStyles lists the available chroma style names.
func HighlightStyles() []string {
	return styles.Names()
}

func lookupStyle(name string) (*chroma.Style, bool) {
	if s, ok := styles.Registry[strings.ToLower(name)]; ok {
		return s, true
	}
	return styles.Fallback, false
}

// Compile-time interface check.
var _ HTMLConverter = (*GoldmarkConverter)(nil)
