package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/BatyaBracha/IntegrAIte/internal/ai"
	"github.com/BatyaBracha/IntegrAIte/internal/bots"
	"github.com/BatyaBracha/IntegrAIte/internal/config"
	"github.com/BatyaBracha/IntegrAIte/internal/logger"
)

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.App.Environment)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer zl.Sync()

	// --- Repo ---
	var repo bots.Repo
	if cfg.Backend.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.Backend.DatabaseURL)
		if err != nil {
			zl.Fatal("db open error", zap.Error(err))
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			zl.Fatal("db ping error", zap.Error(err))
		}

		repo = bots.NewPostgresRepo(db)
		zl.Info("using postgres repo")
	} else {
		repo = bots.NewMemoryRepo(24 * time.Hour)
		zl.Info("DATABASE_URL not set, using in-memory repo")
	}

	// --- AI ---
	aiClient, err := ai.NewOpenAIClient(cfg.AI.APIKey, cfg.AI.Model, zl)
	if err != nil {
		zl.Fatal("ai client init error", zap.Error(err))
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Backend.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Session-ID"},
	}))

	// --- Bots module wiring ---
	botsService := bots.NewService(repo, aiClient, cfg.AI.Model, zl)
	botsHandler := bots.NewHandler(botsService)

	r.Route("/api/v1", func(r chi.Router) {
		bots.RegisterRoutes(r, botsHandler)
	})

	// --- health ---
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	zl.Info("listening", zap.String("port", cfg.Backend.Port))
	if err := http.ListenAndServe(":"+cfg.Backend.Port, r); err != nil {
		zl.Fatal("server error", zap.Error(err))
	}
}
