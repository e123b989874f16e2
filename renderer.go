package mdlive

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-mdlive/internal/assets"
	"github.com/alnah/go-mdlive/internal/logging"
	"github.com/alnah/go-mdlive/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ assets.AssetLoader            = (*assets.Chain)(nil)
)

// Renderer turns Markdown into a complete, self-contained HTML page.
// Create with NewRenderer. Safe for concurrent use: every field is read-only
// after construction.
type Renderer struct {
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	page          *pipeline.Page
	css           string
	favicon       []byte
	styleSource   string
}

// NewRenderer resolves the stylesheet, page template and favicon once and
// returns a Renderer that reuses them for every document.
//
// An unknown style name or highlight style falls back to the default with a
// warning. An unreadable style file or asset path is an error.
func NewRenderer(opts ...Option) (*Renderer, error) {
	cfg := rendererConfig{
		styleName: assets.DefaultStyleName,
		highlight: pipeline.DefaultHighlightStyle,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	chainOpts := cfg.chainOpts
	if !cfg.chainSet {
		chainOpts = assets.DefaultChainOptions(cfg.chainOpts.CustomPath)
	}
	chain, err := assets.NewDefaultChain(chainOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	style, source, err := resolveStyle(chain, cfg)
	if err != nil {
		return nil, err
	}

	highlightCSS, found, err := pipeline.HighlightCSS(cfg.highlight)
	if err != nil {
		return nil, fmt.Errorf("generating highlight CSS: %w", err)
	}
	if !found {
		cfg.logger.Warn("unknown highlight style, using fallback", "style", cfg.highlight)
	}

	tmpl, err := chain.LoadTemplate(assets.PageTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading page template: %w", err)
	}
	page, err := pipeline.NewPage(tmpl)
	if err != nil {
		return nil, err
	}

	favicon, err := chain.LoadFavicon()
	if err != nil {
		cfg.logger.Warn("favicon unavailable", "error", err)
	}

	fontCSS, err := embeddedFontCSS()
	if err != nil {
		cfg.logger.Warn("fonts unavailable", "error", err)
	}

	return &Renderer{
		preprocessor:  &pipeline.CommonMarkPreprocessor{},
		htmlConverter: pipeline.NewGoldmarkConverter(cfg.highlight),
		page:          page,
		css:           fontCSS + style + "\n" + highlightCSS,
		favicon:       favicon,
		styleSource:   source,
	}, nil
}

func embeddedFontCSS() (string, error) {
	fonts, err := assets.EmbeddedFonts()
	if err != nil {
		return "", err
	}
	faces := make([]pipeline.FontFace, 0, len(fonts))
	for _, f := range fonts {
		faces = append(faces, pipeline.FontFace{Family: f.Family, Weight: f.Weight, Data: f.Data})
	}
	return pipeline.FontFaceCSS(faces), nil
}

// resolveStyle returns the stylesheet and where it came from: the style
// file when set, else the named style from the asset chain.
func resolveStyle(chain *assets.Chain, cfg rendererConfig) (css, source string, err error) {
	if cfg.styleFile != "" {
		content, err := os.ReadFile(cfg.styleFile) // #nosec G304 -- user-provided path
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrStyleFile, err)
		}
		if strings.TrimSpace(string(content)) == "" {
			return "", "", fmt.Errorf("%w: %s is empty", ErrStyleFile, cfg.styleFile)
		}
		return string(content), cfg.styleFile, nil
	}

	css, source, err = chain.LoadStyleSource(cfg.styleName)
	if err == nil {
		return css, source, nil
	}
	if cfg.styleName == assets.DefaultStyleName {
		return "", "", fmt.Errorf("loading style %q: %w", cfg.styleName, err)
	}

	cfg.logger.Warn("style not found, using default", "style", cfg.styleName, "error", err)
	css, source, err = chain.LoadStyleSource(assets.DefaultStyleName)
	if err != nil {
		return "", "", fmt.Errorf("loading style %q: %w", assets.DefaultStyleName, err)
	}
	return css, source, nil
}

// StyleSource reports where the stylesheet was loaded from: a file path or
// one of the asset chain source names.
func (r *Renderer) StyleSource() string {
	return r.styleSource
}

// Render converts in to a complete HTML page.
// The only failure modes are invalid UTF-8 input (ErrDecode) and
// cancellation. Recovers from internal panics to prevent crashes from
// propagating to callers.
func (r *Renderer) Render(ctx context.Context, in Input) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source, err := pipeline.Decode(in.Markdown)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	// Front matter is split off before preprocessing.
	meta, body := pipeline.SplitFrontMatter(source)

	body = r.preprocessor.PreprocessMarkdown(ctx, body)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	fragment, err := r.htmlConverter.ToHTML(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	if in.BaseDir != "" {
		fragment, err = pipeline.RewriteRelativePaths(fragment, in.BaseDir)
		if err != nil {
			return nil, fmt.Errorf("rewriting relative paths: %w", err)
		}
	}

	title := pageTitle(meta, in.Name)
	page, err := r.page.Render(pipeline.PageData{
		Title:   title,
		Body:    fragment,
		CSS:     r.css,
		Favicon: r.favicon,
		Reload:  string(in.Reload),
	})
	if err != nil {
		return nil, err
	}

	return &Result{Title: title, Body: fragment, HTML: []byte(page)}, nil
}

// pageTitle picks the front-matter title, then the document name, then the
// stdin placeholder.
func pageTitle(meta pipeline.FrontMatter, name string) string {
	switch {
	case meta.Title != "":
		return meta.Title
	case name != "":
		return name
	default:
		return defaultTitle
	}
}
