// Package assets embeds the static files served with rendered plan pages.
package assets

import _ "embed"

// Stylesheet styles the plan page and the timeline elements
//
//go:embed planview.css
var Stylesheet string

// ViewerScript posts action selections back to the serve command
//
//go:embed viewer.js
var ViewerScript string
