package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"example.com/taskdesk/internal/app"
	"example.com/taskdesk/internal/config"
	"example.com/taskdesk/internal/logger"
	"example.com/taskdesk/internal/server"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	if cfg.StubSecret == "dev-secret" {
		log.Warn("TASKSTUB_SECRET not set, signing tokens with the development secret")
	}

	stub, err := app.NewStub(cfg)
	if err != nil {
		log.WithError(err).Fatal("stub setup failed")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{"addr": cfg.StubAddr, "base": app.StubBasePath}).Info("starting task stub")
	if err := server.New(cfg.StubAddr, stub.Router).Run(ctx, cfg.ShutdownTimeout); err != nil {
		log.WithError(err).Error("server stopped")
		os.Exit(1)
	}
	log.Info("task stub stopped")
}
