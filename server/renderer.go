package server

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/college-portal/portal"
)

const contentTypeHTML = "text/html; charset=utf-8"

// htmlRenderer writes a portal page to one response
type htmlRenderer struct {
	w     http.ResponseWriter
	pages *pageTemplates
}

var _ portal.Renderer = (*htmlRenderer)(nil)

func (s *Server) pageRenderer(w http.ResponseWriter) *htmlRenderer {
	return &htmlRenderer{w: w, pages: s.pages}
}

// Render executes into a buffer first so a template error never leaves a half written page
func (hr *htmlRenderer) Render(_ context.Context, page portal.Page) error {
	tmpl, ok := hr.pages.views[page.View]
	if !ok {
		return fmt.Errorf("[htmlRenderer.Render] no template for view %q", page.View)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, page); err != nil {
		return fmt.Errorf("[htmlRenderer.Render] %s: %w", page.View, err)
	}

	hr.w.Header().Set("Content-Type", contentTypeHTML)
	_, err := buf.WriteTo(hr.w)
	return err
}
