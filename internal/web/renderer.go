// Package web renders the HTML pages.  Templates are embedded in the binary;
// each page is parsed together with the shared layout.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Pages rendered by the handlers.
const (
	PageGallery   = "gallery.html"
	PageTour      = "tour.html"
	PageInquiries = "inquiries.html"
	PageNotFound  = "not_found.html"
)

// Renderer implements echo.Renderer.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{PageGallery, PageTour, PageInquiries, PageNotFound} {
		t, err := template.New("layout.html").ParseFS(templateFS, "templates/layout.html", "templates/cards.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// MustRenderer panics when the embedded templates are broken.
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout.html", data)
}
