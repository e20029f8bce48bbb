// Package web provides the embedded static assets (CSS, JS) of the
// tutorial site, served at /static/.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree: the stylesheet and the
// script that implements copy-to-clipboard in the browser.
//
//go:embed all:static
var StaticFS embed.FS
