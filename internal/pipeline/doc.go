// Package pipeline implements the Markdown-to-HTML conversion stages.
//
// A render pass runs these stages in order:
//   - Decode: UTF-8 validation and BOM removal
//   - Front matter: YAML header stripping and title extraction
//   - Preprocess: line ending normalization
//   - Convert: CommonMark to an HTML fragment via Goldmark, with ==highlight==
//   - Rewrite: relative img/a paths to file:// URLs (static previews)
//   - Page: the fragment wrapped in the HTML document template
//
// The stages hold no per-document state, so a single set can be shared by
// concurrent renders.
package pipeline
