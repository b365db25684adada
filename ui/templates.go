package ui

import (
	"bytes"
	"html/template"
	"io"
	"net/http"

	"hierview/internal"
)

const indexTemplate = "index.html"

// pageRenderer executes page templates into a buffer before writing the response
type pageRenderer struct {
	templates *template.Template
	logger    *internal.Logger
}

// render writes the named template as an HTML response. Unknown templates are a 404.
func (p *pageRenderer) render(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	if p.templates == nil || p.templates.Lookup(name) == nil {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := p.templates.ExecuteTemplate(&buf, name, data); err != nil {
		p.logger.Error("Template error for %s: %v", name, err)
		http.Error(w, "Template rendering failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, &buf); err != nil {
		p.logger.Error("Error writing template response: %v", err)
	}
}
