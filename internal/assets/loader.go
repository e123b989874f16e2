package assets

// Built-in asset names.
const (
	// DefaultStyleName is the name of the built-in CSS style.
	DefaultStyleName = "default"

	// PageTemplateName is the name of the HTML document template.
	PageTemplateName = "page"

	// FaviconFile is the favicon file name inside an asset directory.
	FaviconFile = "favicon.svg"
)

// AssetLoader defines the contract for loading styles, templates and the favicon.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)

	// LoadFavicon loads the SVG favicon.
	// Returns ErrFaviconNotFound if there is none.
	LoadFavicon() ([]byte, error)
}
