package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/iliyamo/tourfront/internal/config"
	"github.com/iliyamo/tourfront/internal/logger"
	"github.com/iliyamo/tourfront/internal/queue"
)

// auditlog drains the inquiry audit queue into a log file.
func main() {
	logger.InitLogger()
	defer func() { _ = logger.Close() }()
	log := logger.GetLogger()

	_ = godotenv.Load()
	cfg := config.LoadAuditConfig()
	stop := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		close(stop)
	}()

	log.Infow("audit consumer starting", "queue", cfg.Queue, "file", cfg.LogPath)
	if err := queue.StartAuditConsumer(cfg.URL, cfg.Queue, cfg.LogPath, stop); err != nil {
		log.Fatalw("audit consumer failed", "error", err)
	}
}
