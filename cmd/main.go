package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"safetrack/config"
	"safetrack/pkg/alert"
	"safetrack/pkg/api"
	"safetrack/pkg/logger"
	"safetrack/pkg/mailer"
	"safetrack/pkg/token"
	"safetrack/service"
	"safetrack/storage/postgres"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.ServiceName)

	pgStore, err := postgres.New(context.Background(), cfg, log)
	if err != nil {
		log.Error("failed to connect to postgres", logger.Error(err))
		os.Exit(1)
	}
	defer pgStore.Close()

	tokens, err := token.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		log.Error("failed to initialize token manager", logger.Error(err))
		os.Exit(1)
	}

	alerts, err := alert.NewTelegram(cfg.TelegramAlertToken, cfg.TelegramAlertChatID, log)
	if err != nil {
		log.Error("failed to initialize telegram alerts", logger.Error(err))
		os.Exit(1)
	}

	svc := service.New(pgStore, tokens, mailer.NewLogMailer(log), alerts, cfg, log)

	server := api.NewServer(cfg.AppPort, svc, tokens, log)

	go func() {
		if err := server.Run(); err != nil {
			log.Error("http server stopped", logger.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", logger.Error(err))
	}
}
