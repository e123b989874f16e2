package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteRelativePaths converts relative image and link paths in an HTML
// fragment to absolute file:// URLs resolved against baseDir.
// If baseDir is empty, returns the HTML unchanged.
//
// Rewrites:
//   - img[src]: relative paths to images
//   - a[href]: relative file paths (not anchors, not URLs)
//
// Query strings and fragments are preserved. Parent-relative paths are
// resolved too: a preview opens local files the user already has.
func RewriteRelativePaths(fragment, baseDir string) (string, error) {
	if baseDir == "" {
		return fragment, nil
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	doc, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}

	rewriteNode(doc, absBaseDir)

	return renderFragment(doc)
}

// parseFragment parses HTML in a <body> context and wraps the resulting
// nodes in a container for uniform traversal.
func parseFragment(content string) (*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// renderFragment renders the container's children without a wrapper.
func renderFragment(doc *html.Node) (string, error) {
	var buf strings.Builder
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// rewriteNode traverses the DOM and rewrites relative paths.
func rewriteNode(n *html.Node, baseDir string) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			rewriteAttr(n, "src", baseDir)
		case atom.A:
			rewriteAttr(n, "href", baseDir)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, baseDir)
	}
}

// rewriteAttr rewrites a single attribute if it holds a relative path.
func rewriteAttr(n *html.Node, attrName, baseDir string) {
	for i, attr := range n.Attr {
		if attr.Key != attrName {
			continue
		}
		u, ok := relativeURL(attr.Val)
		if !ok {
			continue
		}

		absPath := filepath.Join(baseDir, filepath.FromSlash(u.Path))
		n.Attr[i].Val = fileURL(absPath, u.RawQuery, u.Fragment)
	}
}

// relativeURL parses ref and reports whether it is a relative file path.
// URLs with a scheme or host, bare anchors, and absolute paths are skipped.
func relativeURL(ref string) (*url.URL, bool) {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return nil, false
	}

	u, err := url.Parse(ref)
	if err != nil {
		return nil, false
	}
	if u.Scheme != "" || u.Host != "" || u.Path == "" {
		return nil, false
	}
	if strings.HasPrefix(u.Path, "/") || filepath.IsAbs(u.Path) {
		return nil, false
	}
	return u, true
}

// fileURL converts an absolute path to a file:// URL.
// Handles both Unix and Windows paths.
func fileURL(absPath, rawQuery, fragment string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // C:/docs -> /C:/docs
	}
	u := url.URL{
		Scheme:   "file",
		Path:     p,
		RawQuery: rawQuery,
		Fragment: fragment,
	}
	return u.String()
}
