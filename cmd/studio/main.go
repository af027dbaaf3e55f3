package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/BatyaBracha/IntegrAIte/internal/config"
	"github.com/BatyaBracha/IntegrAIte/internal/gateway"
	"github.com/BatyaBracha/IntegrAIte/internal/logger"
	"github.com/BatyaBracha/IntegrAIte/internal/notify"
	"github.com/BatyaBracha/IntegrAIte/internal/session"
	"github.com/BatyaBracha/IntegrAIte/internal/studio"
)

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.App.Environment)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer zl.Sync()

	// --- Studio wiring ---
	sessions := session.NewManager(session.NewFileStore(cfg.App.SessionFile), zl)
	toasts := notify.NewScheduler(nil)
	defer toasts.Close()

	client := gateway.NewClient(cfg.App.APIBase, zl)
	core := studio.New(client, toasts, sessions, zl)

	core.RestoreSession(context.Background())

	// --- Router ---
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.App.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	studioHandler := studio.NewHandler(core, toasts)
	studio.RegisterRoutes(r, studioHandler)

	// --- health ---
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	zl.Info("listening",
		zap.String("port", cfg.App.Port),
		zap.String("api_base", cfg.App.APIBase),
		zap.String("session_id", sessions.Active()))
	if err := http.ListenAndServe(":"+cfg.App.Port, r); err != nil {
		zl.Fatal("server error", zap.Error(err))
	}
}
