// Package mdlive renders Markdown documents to self-contained HTML pages and
// previews them in a browser.
//
// # Quick Start
//
// Create a renderer once and render documents with it:
//
//	r, err := mdlive.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := r.Render(ctx, mdlive.Input{
//	    Name:     "notes.md",
//	    Markdown: []byte("# Hello\n\nWorld"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("notes.html", res.HTML, 0o644)
//
// The page embeds its stylesheet, fonts and favicon, so the file can be
// opened from anywhere.
//
// # Rendering Pipeline
//
//  1. Decoding (UTF-8 check, byte order mark removed)
//  2. YAML front matter split; a title key becomes the page title
//  3. Line ending normalization
//  4. Markdown to HTML via Goldmark (GFM, footnotes, smart punctuation,
//     ==highlight== marks, chroma syntax highlighting)
//  5. Relative link rewriting to file:// URLs when Input.BaseDir is set
//  6. Page template execution with fonts, CSS, favicon and reload script
//
// # Static Preview
//
// StaticPreviewer renders once, writes a temp file and opens it:
//
//	p := mdlive.NewStaticPreviewer(r, browser.New())
//	path, err := p.Preview(ctx, in)
//
// # Live Preview
//
// Server serves the document over HTTP and reloads open pages when the file
// changes, over Server-Sent Events or WebSocket:
//
//	srv, err := mdlive.NewServer(r, mdlive.ServerConfig{
//	    Path: "notes.md",
//	    Port: 3030,
//	    Open: true,
//	}, mdlive.WithOpener(browser.New()))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = srv.Run(ctx) // returns when ctx is cancelled
//
// # Styles
//
// Stylesheets, the page template and the favicon are looked up in order in
// the directory given by WithAssetPath, the directory of the executable, the
// user config directory (mdlive/) and finally the embedded defaults:
//
//	r, err := mdlive.NewRenderer(
//	    mdlive.WithStyle("dark"),             // styles/dark.css
//	    mdlive.WithHighlightStyle("monokai"), // chroma style
//	)
//
// An unknown style name falls back to the default stylesheet with a warning.
//
// # Error Handling
//
// Errors wrap sentinels that can be checked with errors.Is:
//
//	if errors.Is(err, mdlive.ErrPortInUse) {
//	    // choose another port
//	}
package mdlive
