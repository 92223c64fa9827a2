package server

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/jrsteele09/college-portal/views"
)

//go:embed templates/*
var templateFiles embed.FS

const layoutTemplate = "layout.html"

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// ParseTemplate parses a standalone template from the embedded filesystem
func ParseTemplate(name string) (*template.Template, error) {
	content, err := fs.ReadFile(TemplateFilesFS(), name)
	if err != nil {
		return nil, err
	}
	return template.New(name).Funcs(templateFuncs).Parse(string(content))
}

// parseViewTemplate parses a view's content template inside the shared layout
func parseViewTemplate(name string) (*template.Template, error) {
	return template.New(layoutTemplate).Funcs(templateFuncs).ParseFS(TemplateFilesFS(), layoutTemplate, name)
}

type pageTemplates struct {
	login *template.Template
	views map[views.View]*template.Template
}

// parsePageTemplates parses the login page and one template per view, named "<slug>.html"
func parsePageTemplates() (*pageTemplates, error) {
	login, err := ParseTemplate("login.html")
	if err != nil {
		return nil, fmt.Errorf("login.html: %w", err)
	}

	pages := &pageTemplates{login: login, views: make(map[views.View]*template.Template, len(views.All))}
	for _, v := range views.All {
		tmpl, err := parseViewTemplate(v.String() + ".html")
		if err != nil {
			return nil, fmt.Errorf("%s.html: %w", v, err)
		}
		pages.views[v] = tmpl
	}
	return pages, nil
}

var templateFuncs = template.FuncMap{
	"viewPath": func(v views.View) string { return viewPath(v.String()) },
}
