// Package assets provides the stylesheets and the page template used to
// build report documents.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in assets compiled into the binary
//	    ├── FilesystemLoader  - assets from a directory on disk
//	    └── AssetResolver     - custom directory first, embedded fallback
//
// AssetResolver is what the converter uses. A custom directory only needs
// to contain the files it overrides; anything missing falls back to the
// embedded copy.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # stylesheet selected by --style
//	└── templates/
//	    └── document.html        # page template
//
// The page template is an html/template receiving Title, Lang, CSS and
// Body.
//
// # Security
//
// Asset names are validated before use. FilesystemLoader resolves symlinks
// and rejects paths that leave basePath.
package assets
