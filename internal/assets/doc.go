// Package assets provides the style sheet, page template, favicon and fonts
// used to build preview pages.
//
// # Loader Chain
//
// Assets are resolved through an ordered chain of loaders:
//
//	Chain
//	    │
//	    ├── FilesystemLoader  - custom directory (--asset-path), errors if invalid
//	    ├── FilesystemLoader  - directory of the running executable
//	    ├── FilesystemLoader  - {user config dir}/mdlive
//	    └── EmbeddedLoader    - compiled-in defaults
//
// The first loader that returns non-empty content wins. Missing files, empty
// files and unreadable files fall through to the next loader without error,
// so the embedded default is always reachable and a style sheet is always
// available.
//
// Fonts are not part of the chain: the Open Sans faces (Apache 2.0, see
// fonts/LICENSE.txt) are always compiled in and inlined into every page.
//
// # Directory Structure
//
//	{basePath}/
//	├── favicon.svg
//	├── styles/
//	│   └── {name}.css
//	└── templates/
//	    └── {name}.html
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
