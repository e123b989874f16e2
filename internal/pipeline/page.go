package pipeline

import (
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"
)

// Page template errors.
var (
	ErrTemplateParse   = errors.New("page template parse failed")
	ErrTemplateExecute = errors.New("page template execution failed")
)

// PageData is the input of a page template execution.
type PageData struct {
	Title   string
	Body    string // trusted HTML fragment produced by the converter
	CSS     string
	Favicon []byte // SVG document
	Reload  string // "", "sse" or "websocket"
}

// pageView is the value seen by the template, with trusted types set.
type pageView struct {
	Title   string
	Body    template.HTML
	CSS     template.CSS
	Favicon template.URL
	Reload  string
}

// Page wraps HTML fragments in a complete document.
// Safe for concurrent use once created.
type Page struct {
	tmpl *template.Template
}

// NewPage parses the page template source.
func NewPage(source string) (*Page, error) {
	tmpl, err := template.New("page").Option("missingkey=error").Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	return &Page{tmpl: tmpl}, nil
}

// Execute writes the full HTML document for data to w.
func (p *Page) Execute(w io.Writer, data PageData) error {
	// #nosec G203 -- body is converter output; raw HTML is a CommonMark feature
	body := template.HTML(data.Body)
	// #nosec G203 -- local stylesheet with </ escaped
	css := template.CSS(sanitizeCSS(data.CSS))

	view := pageView{
		Title:   data.Title,
		Body:    body,
		CSS:     css,
		Favicon: FaviconDataURI(data.Favicon),
		Reload:  data.Reload,
	}
	if err := p.tmpl.Execute(w, view); err != nil {
		return fmt.Errorf("%w: %v", ErrTemplateExecute, err)
	}
	return nil
}

// Render is Execute into a string.
func (p *Page) Render(data PageData) (string, error) {
	var buf strings.Builder
	if err := p.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FaviconDataURI encodes an SVG favicon as a data: URI.
// Returns an empty URL for empty input.
func FaviconDataURI(svg []byte) template.URL {
	if len(svg) == 0 {
		return ""
	}
	return template.URL("data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(svg)) // #nosec G203 -- base64 payload
}

// FontFace is a font to inline into the page stylesheet.
type FontFace struct {
	Family string
	Weight int
	Data   []byte // WOFF2
}

// FontFaceCSS returns @font-face rules with the faces embedded as data: URIs.
// Faces without data are skipped.
func FontFaceCSS(faces []FontFace) string {
	var b strings.Builder
	for _, f := range faces {
		if len(f.Data) == 0 {
			continue
		}
		fmt.Fprintf(&b, "@font-face {\n  font-family: %q;\n  src: url(data:font/woff2;base64,%s) format(\"woff2\");\n  font-weight: %d;\n  font-style: normal;\n  font-display: swap;\n}\n",
			f.Family, base64.StdEncoding.EncodeToString(f.Data), f.Weight)
	}
	return b.String()
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
