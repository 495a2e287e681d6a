// Package assets provides the LaTeX templates used to render resumes.
// Templates can be loaded from embedded files or a custom directory.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (awesome-cv, classic)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the generator. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when the template
// is not found, so a user can override one template and keep the others.
//
// # Directory Structure
//
//	{basePath}/
//	├── templates/
//	│   └── {name}.tex        # template with \VAR{...} actions
//	├── awesome-cv.cls        # document class, linked next to the .tex
//	└── fonts/                # font directory, linked next to the .tex
//
// Only templates/ is read by this package. The other entries are linked
// into the output directory at compile time.
//
// # Security
//
// Template names are validated to prevent path traversal.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
