// Package views holds the server-rendered page templates, embedded so
// rendering works regardless of the working directory.
package views

import "embed"

//go:embed *.html
var FS embed.FS
