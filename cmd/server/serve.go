package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/yatube/backend/internal/repositories"
	"github.com/anonto42/yatube/backend/internal/router"
	"github.com/anonto42/yatube/backend/internal/storage"
	"github.com/anonto42/yatube/backend/pkg/config"
	"github.com/anonto42/yatube/backend/pkg/firebase"
	"github.com/anonto42/yatube/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  serve,
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer db.CloseDB()
	log := logger.Get()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := repositories.AutoMigrate(db.Postgres.WithContext(ctx)); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	opts := router.Options{
		Logger:    log,
		JWTSecret: cfg.JWTSecret,
		JWTTTL:    cfg.JWTTTL,
	}

	fb, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	switch {
	case errors.Is(err, firebase.ErrNoCredentials):
		log.Warn("FIREBASE_CREDENTIALS_PATH not set, login is disabled")
	case err != nil:
		return err
	default:
		opts.FirebaseAuth = fb.AuthClient
	}

	if db.Mongo != nil {
		images, err := storage.NewGridFSImageStore(db.Mongo.Database(cfg.MongoDatabase))
		if err != nil {
			return fmt.Errorf("image store: %w", err)
		}
		opts.Images = images
	}

	e := echo.New()
	e.HideBanner = true
	config.SetupMiddleware(e, log)
	router.SetupRoutes(e, db.Postgres, opts)

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
