package mdlive

import (
	"context"
	"fmt"

	"github.com/alnah/go-mdlive/internal/fileutil"
)

// Opener opens a file path or URL in a browser without waiting for it.
type Opener interface {
	Open(target string) error
}

// tempPrefix names the HTML files written by static previews.
const tempPrefix = "markdown_preview_"

// StaticPreviewer renders a document once to an HTML file and opens it.
type StaticPreviewer struct {
	renderer   *Renderer
	opener     Opener
	outputPath string
	tempDir    string
	open       bool
}

// StaticOption configures a StaticPreviewer.
type StaticOption func(*StaticPreviewer)

// WithOutputPath writes the page to path, replacing it atomically, instead
// of creating a temp file.
func WithOutputPath(path string) StaticOption {
	return func(p *StaticPreviewer) {
		p.outputPath = path
	}
}

// WithOpen controls whether the written file is opened in a browser.
// Enabled by default.
func WithOpen(open bool) StaticOption {
	return func(p *StaticPreviewer) {
		p.open = open
	}
}

// WithTempDir sets the directory for temp files (default os.TempDir).
func WithTempDir(dir string) StaticOption {
	return func(p *StaticPreviewer) {
		p.tempDir = dir
	}
}

// NewStaticPreviewer creates a StaticPreviewer. opener may be nil when
// opening is disabled with WithOpen(false).
func NewStaticPreviewer(r *Renderer, opener Opener, opts ...StaticOption) *StaticPreviewer {
	p := &StaticPreviewer{
		renderer: r,
		opener:   opener,
		open:     true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Preview renders in without a reload script, writes the page and opens it.
// Returns the path of the written file. The file is left in place: the
// browser reads it after Preview returns.
func (p *StaticPreviewer) Preview(ctx context.Context, in Input) (string, error) {
	in.Reload = ReloadNone

	res, err := p.renderer.Render(ctx, in)
	if err != nil {
		return "", err
	}

	path, err := p.write(res.HTML)
	if err != nil {
		return "", err
	}

	if !p.open {
		return path, nil
	}
	if p.opener == nil {
		return path, ErrNoBrowser
	}
	if err := p.opener.Open(path); err != nil {
		return path, fmt.Errorf("opening %s: %w", path, err)
	}
	return path, nil
}

func (p *StaticPreviewer) write(html []byte) (string, error) {
	if p.outputPath != "" {
		if err := fileutil.WriteFileAtomic(p.outputPath, html); err != nil {
			return "", fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return p.outputPath, nil
	}

	path, _, err := fileutil.WriteTempFile(p.tempDir, tempPrefix, "html", html)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return path, nil
}
