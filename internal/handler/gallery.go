package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tourfront/internal/view"
	"github.com/iliyamo/tourfront/internal/web"
)

// GalleryHandler serves the public tour gallery.  Every page load is a
// fresh mount with its own single list request.
type GalleryHandler struct {
	API view.TourAPI
}

func NewGalleryHandler(api view.TourAPI) *GalleryHandler {
	if api == nil {
		panic("nil tour API passed to NewGalleryHandler")
	}
	return &GalleryHandler{API: api}
}

type galleryPage struct {
	Title string
	Error string
	Cards []view.TourCard
}

type tourPage struct {
	Title string
	Card  view.TourCard
}

type messagePage struct {
	Title   string
	Message string
}

// Gallery handles GET / and GET /tours.
func (h *GalleryHandler) Gallery(c echo.Context) error {
	g := view.NewGalleryView(h.API)
	g.LoadOnMount(c.Request().Context())
	return c.Render(http.StatusOK, web.PageGallery, galleryData(g))
}

// Tour handles GET /tours/:id, the target of a card click.
func (h *GalleryHandler) Tour(c echo.Context) error {
	g := view.NewGalleryView(h.API)
	g.LoadOnMount(c.Request().Context())
	if g.Mode() != view.ModeCards {
		return c.Render(http.StatusOK, web.PageGallery, galleryData(g))
	}
	t, ok := g.Find(c.Param("id"))
	if !ok {
		return c.Render(http.StatusNotFound, web.PageNotFound, messagePage{Title: "Tour not found", Message: "Tour not found."})
	}
	return c.Render(http.StatusOK, web.PageTour, tourPage{Title: t.Title, Card: g.Card(t)})
}

func galleryData(g *view.GalleryView) galleryPage {
	// The page is rendered after LoadOnMount returns, so it is never in
	// the loading mode.
	p := galleryPage{Title: "Tours"}
	switch g.Mode() {
	case view.ModeError:
		p.Error = g.Err
	case view.ModeCards:
		p.Cards = g.Cards()
	}
	return p
}
