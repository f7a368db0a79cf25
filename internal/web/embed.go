package web

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
)

const (
	templateDir = "templates"
	staticDir   = "static"
)

var (
	//go:embed static/*
	embeddedStaticFiles embed.FS

	//go:embed templates/*
	embeddedTemplates embed.FS
)

// subdirFS serves one top level directory of an embed.FS as its root.
type subdirFS struct {
	content embed.FS
	dir     string
}

// Open opens name below the directory.
func (e subdirFS) Open(name string) (fs.File, error) {
	return e.content.Open(path.Join(e.dir, name))
}

// templateFS holds the .gohtml views, named by their path below templates/.
func templateFS() http.FileSystem {
	return http.FS(subdirFS{content: embeddedTemplates, dir: templateDir})
}

// staticFS holds css and images, mounted with PathPrefix staticDir.
func staticFS() http.FileSystem {
	return http.FS(embeddedStaticFiles)
}
