// Package assets provides the page stylesheets used by standalone documents.
//
//	StyleLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in styles compiled into the binary
//	    ├── FilesystemLoader  - {basePath}/styles/{name}.css on disk
//	    └── AssetResolver     - custom directory first, embedded fallback
//
// Each theme has a page stylesheet named after its mode ("light", "dark").
// A custom directory can override it by shipping a file with the same name.
//
// Style names are validated before use, and FilesystemLoader resolves
// symlinks and refuses paths outside its base directory.
package assets
