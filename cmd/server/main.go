package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sumire/issue-tracker/internal/config"
	"github.com/sumire/issue-tracker/internal/handler"
	"github.com/sumire/issue-tracker/internal/repository"
	"github.com/sumire/issue-tracker/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var store service.ProjectStore
	switch cfg.StoreDriver {
	case config.StoreMemory:
		store = repository.NewMemoryStore()
		slog.Info("using in-memory store")
	default:
		db, err := sqlx.Connect("pgx", cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		schemaCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = repository.EnsureSchema(schemaCtx, db)
		cancel()
		if err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}

		store = repository.NewProjectRepository(db)
		slog.Info("database connected")
	}

	issueSvc := service.NewIssueService(store)
	issueHandler := handler.NewIssueHandler(issueSvc)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewAppValidator()
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(handler.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	issueHandler.Register(e)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
