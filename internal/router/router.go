package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tourfront/internal/handler"
)

// RegisterRoutes registers routes that need neither a session nor
// authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the tour gallery.  These routes are open to
// guests.
func RegisterPublic(e *echo.Echo, g *handler.GalleryHandler) {
	e.GET("/", g.Gallery)
	e.GET("/tours", g.Gallery)
	e.GET("/tours/:id", g.Tour)
}
