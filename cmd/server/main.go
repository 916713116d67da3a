package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/JoelCyril/Pulso.ai/internal"
	"github.com/JoelCyril/Pulso.ai/internal/ai"
	"github.com/JoelCyril/Pulso.ai/internal/api"
	"github.com/JoelCyril/Pulso.ai/internal/backend"
	"github.com/JoelCyril/Pulso.ai/internal/chat"
	"github.com/JoelCyril/Pulso.ai/internal/config"
	"github.com/JoelCyril/Pulso.ai/internal/reminders"
	"github.com/JoelCyril/Pulso.ai/internal/service"
	"github.com/JoelCyril/Pulso.ai/internal/storage"
	"github.com/JoelCyril/Pulso.ai/internal/store"
)

func newLogger(cfg *config.Config) (internal.Logger, func()) {
	var zl *zap.Logger
	var err error
	if cfg.Env == "production" {
		zl, err = zap.NewProduction()
	} else {
		zl, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to init logger: " + err.Error())
	}
	return internal.NewZapLogger(zl.Sugar()), func() { _ = zl.Sync() }
}

func main() {
	cfg := config.Load()

	logger, flush := newLogger(cfg)
	defer flush()

	if cfg.DBType == "file" {
		if err := os.MkdirAll(filepath.Dir(cfg.DataFile), 0o755); err != nil {
			logger.Fatalf("failed to create data dir: %v", err)
		}
	}

	kv, err := storage.New(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}
	defer kv.Close()

	profiles := store.New(kv, logger)
	aiClient := ai.NewClient(cfg.GroqAPIKey, cfg.GroqModel, logger)
	healthAPI := backend.NewClient(cfg.BackendURL, logger)

	dispatcher, err := reminders.NewDispatcher(profiles, &reminders.LogNotifier{Logger: logger}, logger)
	if err != nil {
		logger.Fatalf("failed to init reminder dispatcher: %v", err)
	}
	dispatcher.Start(context.Background())
	defer dispatcher.Stop()

	app := &api.Application{
		Log:       logger,
		Profiles:  profiles,
		Flows:     service.NewOnboardingManager(profiles, aiClient, healthAPI, logger),
		Bot:       chat.NewAssistant(profiles, aiClient, dispatcher, logger),
		HealthAPI: healthAPI,
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(app)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("Server running on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("forced shutdown: %v", err)
	}
}
