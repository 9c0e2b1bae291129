// Package assets embeds the static files served by the web front-end.
package assets

import _ "embed"

// Index is the upload page.
//
//go:embed index.html
var Index []byte
