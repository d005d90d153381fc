// Package web embeds the HTML templates and static assets of the web UI.
package web

import "embed"

// Templates holds the page templates under templates/.
//
//go:embed templates
var Templates embed.FS

// Static holds the browser assets under static/.
//
//go:embed static
var Static embed.FS
