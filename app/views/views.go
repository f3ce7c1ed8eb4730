package views

import (
	"embed"
	"html/template"
)

//go:embed layout.html posts/*.html shared/*.html
var files embed.FS

// Static holds the stylesheet served under /static/.
//
//go:embed static
var Static embed.FS

// Load parses the page templates. The result renders with
// ExecuteTemplate(w, "layout", data).
func Load() (*template.Template, error) {
	return template.ParseFS(files,
		"layout.html",
		"posts/index.html",
		"shared/post.html",
		"shared/comments.html",
		"shared/settings.html",
	)
}

// MustLoad is Load that panics on a template error.
func MustLoad() *template.Template {
	return template.Must(Load())
}
