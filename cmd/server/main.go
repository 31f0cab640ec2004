package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/folio/backend/internal/config"
	"github.com/folio/backend/internal/handler"
	"github.com/folio/backend/internal/logging"
	"github.com/folio/backend/internal/service"
	"github.com/folio/backend/pkg/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	store, closeStore, err := openStore(context.Background(), cfg)
	if err != nil {
		logging.Fatal("failed to open contact store", "driver", cfg.StoreDriver, "error", err)
	}
	defer closeStore()

	contactService := service.NewContactService(store)

	var requireAdmin func(http.Handler) http.Handler
	if cfg.AuthRequired {
		requireAdmin = auth.RequireAdmin(auth.SecretBytes(cfg.SessionSecret))
	} else {
		slog.Warn("AUTH_REQUIRED is off: inbox routes are open")
		requireAdmin = auth.Open
	}

	var submitLimit func(http.Handler) http.Handler
	if cfg.ContactRateLimit > 0 {
		limiter := handler.NewRateLimiter(cfg.ContactRateLimit)
		defer limiter.Close()
		submitLimit = limiter.Middleware
	}

	var site http.Handler
	if info, err := os.Stat(cfg.SiteDir); err == nil && info.IsDir() {
		site = handler.NewSiteHandler(cfg.SiteDir)
	} else {
		slog.Warn("site directory not found, static serving disabled", "dir", cfg.SiteDir)
	}

	h := handler.New(store, cfg.FrontendURL)
	server := &http.Server{
		Addr: cfg.Addr(),
		Handler: h.Router(handler.RouterConfig{
			Contacts:     handler.NewContactHandler(contactService),
			SubmitLimit:  submitLimit,
			RequireAdmin: requireAdmin,
			Site:         site,
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "store", cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}
