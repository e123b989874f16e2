package pipeline

import (
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/alnah/go-mdlive/internal/yamlutil"
)

// FrontMatter holds the document metadata read from a YAML header.
type FrontMatter struct {
	Title string `yaml:"title"`
}

// yamlFormat restricts detection to --- delimited YAML headers.
var yamlFormat = frontmatter.NewFormat("---", "---", yamlutil.Unmarshal)

// SplitFrontMatter separates a leading YAML header from the Markdown body.
// Content without a header, or with a header that does not parse as a
// mapping, is returned unchanged so a leading thematic break still renders.
func SplitFrontMatter(content string) (FrontMatter, string) {
	var meta FrontMatter

	if !strings.HasPrefix(content, "---") {
		return meta, content
	}

	body, err := frontmatter.Parse(strings.NewReader(content), &meta, yamlFormat)
	if err != nil {
		return FrontMatter{}, content
	}

	meta.Title = strings.TrimSpace(meta.Title)
	return meta, string(body)
}
