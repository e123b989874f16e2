package assets

import (
	"embed"
	"fmt"
)

//go:embed fonts/*.woff2
var fonts embed.FS

// FontFamily is the family name the built-in fonts are registered under.
const FontFamily = "Open Sans"

// Font is one embedded WOFF2 face.
type Font struct {
	Family string
	Weight int
	Data   []byte
}

var fontWeights = []int{300, 400, 600}

// EmbeddedFonts returns the built-in font faces, lightest first.
func EmbeddedFonts() ([]Font, error) {
	out := make([]Font, 0, len(fontWeights))
	for _, w := range fontWeights {
		data, err := fonts.ReadFile(fmt.Sprintf("fonts/open-sans-%d.woff2", w))
		if err != nil {
			return nil, fmt.Errorf("%w: weight %d", ErrFontNotFound, w)
		}
		out = append(out, Font{Family: FontFamily, Weight: w, Data: data})
	}
	return out, nil
}
