package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/tourfront/internal/apiclient"
	"github.com/iliyamo/tourfront/internal/config"
	"github.com/iliyamo/tourfront/internal/handler"
	"github.com/iliyamo/tourfront/internal/logger"
	"github.com/iliyamo/tourfront/internal/middleware"
	"github.com/iliyamo/tourfront/internal/router"
	"github.com/iliyamo/tourfront/internal/service"
	"github.com/iliyamo/tourfront/internal/session"
	"github.com/iliyamo/tourfront/internal/web"
)

func main() {
	logger.InitLogger()
	defer func() { _ = logger.Close() }()
	log := logger.GetLogger()

	cfg := config.Load()

	rdb := config.NewRedisClient()
	var sessions session.Store
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		sessions = session.NewRedisStore(rdb, cfg.SessionTTL)
	} else {
		sessions = session.NewMemoryStore(cfg.SessionTTL)
	}

	api := apiclient.New(cfg.APIBaseURL, cfg.ToursBaseURL, cfg.APITimeout)
	audit := service.NewAuditPublisher(cfg.Audit)

	e := echo.New()
	e.HideBanner = true
	e.Renderer = web.MustRenderer()
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log))

	router.RegisterRoutes(e)
	router.RegisterPublic(e, handler.NewGalleryHandler(api))
	router.RegisterAdmin(e,
		handler.NewInquiriesHandler(api, sessions, audit, cfg.PageSize, cfg.DisplayLocation),
		router.AdminOptions{
			JWTSecret:  cfg.AdminJWTSecret,
			SessionTTL: cfg.SessionTTL,
			RateLimit:  config.LoadRateLimitConfig(),
			Redis:      rdb,
		})

	addr := ":" + cfg.Port
	go func() {
		log.Infow("listening", "addr", addr, "env", cfg.Env, "api", cfg.APIBaseURL, "admin_gate", cfg.AdminJWTSecret != "")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Errorw("graceful shutdown failed", "error", err)
	}
}
