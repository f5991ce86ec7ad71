package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"signup-wizard/internal/api"
	"signup-wizard/internal/backend"
	"signup-wizard/internal/catalog"
	"signup-wizard/internal/config"
	"signup-wizard/internal/database"
	"signup-wizard/internal/theme"
	"signup-wizard/internal/wizard"
	"signup-wizard/internal/ws"
	"syscall"
	"time"
)

func main() {
	cfg := config.LoadConfig()
	database.InitGorm(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backendClient := backend.NewClient(cfg)
	submissionStore := database.NewSubmissionStore(database.GormDB)
	hub := ws.NewHub()
	go hub.Run(ctx)

	gateway := &wizard.Gateway{
		Backend:            backendClient,
		BrandName:          cfg.BrandName,
		SentinelPhone:      cfg.SentinelPhone,
		DefaultCountryCode: cfg.DefaultCountryCode,
	}
	deps := &wizard.Deps{
		Gateway:    gateway,
		Reconciler: wizard.NewReconciler(backendClient, cfg.LookupMinLength),
		Recorder:   submissionStore,
		Notifier:   hub,
		Links: wizard.Links{
			WhatsAppNumber: cfg.WhatsAppNumber,
			WhatsAppText:   cfg.WhatsAppActivationText,
			TelegramBot:    cfg.TelegramBot,
		},
		DefaultCountryCode: cfg.DefaultCountryCode,
	}
	loader := catalog.NewLoader(backendClient, cfg.AllowedParentTypes, cfg.ExcludeCustom)
	store := wizard.NewStore(deps, loader, cfg.SessionTTL)
	go store.Run(ctx)

	r := api.NewRouter(cfg.CORSOrigin, api.Handlers{
		Wizard:      api.NewWizardHandler(store, hub, cfg.SessionTTL),
		Proxy:       api.NewProxyHandler(backendClient, gateway),
		Theme:       api.NewThemeHandler(theme.NewPreference(theme.Theme(cfg.DefaultTheme))),
		Submissions: api.NewSubmissionHandler(submissionStore),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Server starting on port %s (backend %s)", cfg.Port, cfg.BackendURL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to run server: %v", err)
	}
	log.Println("Server stopped")
}
