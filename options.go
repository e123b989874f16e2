package mdlive

import (
	"github.com/alnah/go-mdlive/internal/assets"
)

// Option configures a Renderer.
type Option func(*rendererConfig)

type rendererConfig struct {
	styleName string
	styleFile string
	highlight string
	logger    Logger
	chainOpts assets.ChainOptions
	chainSet  bool
}

// WithStyle selects a named stylesheet from the asset directories
// (for example "default" loads styles/default.css).
func WithStyle(name string) Option {
	return func(c *rendererConfig) {
		c.styleName = name
	}
}

// WithStyleFile uses the CSS file at path instead of a named style.
func WithStyleFile(path string) Option {
	return func(c *rendererConfig) {
		c.styleFile = path
	}
}

// WithAssetPath adds dir as the first asset directory searched for styles,
// the page template and the favicon.
func WithAssetPath(dir string) Option {
	return func(c *rendererConfig) {
		c.chainOpts.CustomPath = dir
	}
}

// WithHighlightStyle selects the chroma style of fenced code blocks.
func WithHighlightStyle(name string) Option {
	return func(c *rendererConfig) {
		c.highlight = name
	}
}

// WithLogger sets the logger for style fallback warnings.
func WithLogger(l Logger) Option {
	return func(c *rendererConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// withChainOptions replaces the asset search directories.
func withChainOptions(opts assets.ChainOptions) Option {
	return func(c *rendererConfig) {
		c.chainOpts = opts
		c.chainSet = true
	}
}
