package router

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/tourfront/internal/config"
	"github.com/iliyamo/tourfront/internal/handler"
	"github.com/iliyamo/tourfront/internal/middleware"
)

// AdminOptions configures the middleware in front of the admin panel.
type AdminOptions struct {
	JWTSecret  string // empty leaves the panel open
	SessionTTL time.Duration
	RateLimit  config.RateLimitConfig
	Redis      *redis.Client
}

// RegisterAdmin registers the inquiries panel under /admin.  Every route
// gets a session and CSRF protection.  When a JWT secret is configured the
// ADMIN role is required.
func RegisterAdmin(e *echo.Echo, h *handler.InquiriesHandler, opts AdminOptions) {
	mws := []echo.MiddlewareFunc{}
	if opts.JWTSecret != "" {
		mws = append(mws,
			middleware.JWTAuth(opts.JWTSecret),
			middleware.RequireRole("ADMIN"),
		)
	}
	mws = append(mws,
		middleware.Session(opts.SessionTTL),
		middleware.CSRF(),
		middleware.NewTokenBucket(opts.RateLimit, opts.Redis),
	)
	g := e.Group("/admin", mws...)

	g.GET("/inquiries", h.List)
	g.POST("/inquiries/reload", h.Reload)
	g.GET("/inquiries/:id/delete", h.ConfirmDelete)
	g.POST("/inquiries/:id/delete", h.Delete)
	g.POST("/inquiries/:id/reply", h.OpenReply)
	g.GET("/inquiries/:id/reply", h.ViewReply)

	// The reply dialog works on the selected inquiry, not on a path id.
	g.POST("/reply/send", h.SendReply)
	g.POST("/reply/cancel", h.CancelReply)
}
