package ui

import (
	"context"
	"embed"
	"html/template"
	"io/fs"

	"hierview/domain/hierarchy"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// DocumentReader loads the cached hierarchy document
type DocumentReader interface {
	Read(ctx context.Context) (*hierarchy.Node, error)
}

// PageData is passed to the visualization template
type PageData struct {
	Title   string
	DataURL string
}

func parseTemplates() (*template.Template, error) {
	return template.New("").ParseFS(embeddedFiles, "templates/*.html")
}

func staticFiles() (fs.FS, error) {
	return fs.Sub(embeddedFiles, "static")
}
