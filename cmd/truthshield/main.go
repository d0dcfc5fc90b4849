// truthshield serves the claim verification API: remote AI fact-check when
// configured, local style-analysis fallback when trained artifacts exist.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/LegendarySumit/TruthShield/internal/api"
	"github.com/LegendarySumit/TruthShield/internal/cache"
	"github.com/LegendarySumit/TruthShield/internal/config"
	"github.com/LegendarySumit/TruthShield/internal/factcheck"
	"github.com/LegendarySumit/TruthShield/internal/service"
	"github.com/LegendarySumit/TruthShield/internal/store"
	"github.com/LegendarySumit/TruthShield/internal/textnorm"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("[INFO] no .env file loaded: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	local := loadLocalModel(cfg.Model.Path)

	var checker service.FactChecker
	if cfg.AI.APIKey != "" {
		c, err := factcheck.New(factcheck.Config{
			APIKey:         cfg.AI.APIKey,
			BaseURL:        cfg.AI.BaseURL,
			Models:         cfg.AI.Models,
			AttemptTimeout: cfg.AI.AttemptTimeout,
		})
		if err != nil {
			log.Fatalf("[FATAL] factcheck: %v", err)
		}
		checker = c
	} else {
		log.Printf("[WARN] no API key configured, AI fact-check disabled")
	}

	if checker == nil && local == nil {
		log.Printf("[WARN] neither classification path is available, all requests will fail")
	}

	svc := service.New(checker, local, cache.New(cfg.Cache.Capacity))
	server := api.NewServer(svc, api.Options{
		RateLimit: cfg.Server.RateLimit,
		RateBurst: cfg.Server.RateBurst,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg.Server.Addr); err != nil {
		log.Fatalf("[FATAL] server: %v", err)
	}
}

// loadLocalModel returns nil when artifacts are missing, leaving the service
// in AI-only mode.
func loadLocalModel(path string) service.LocalModel {
	st, err := store.Open(path)
	if err != nil {
		log.Printf("[WARN] model store unavailable, local fallback disabled: %v", err)
		return nil
	}
	defer st.Close()

	v, e, manifest, err := st.Load(textnorm.Version)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Printf("[WARN] no trained artifacts at %s, local fallback disabled", path)
		} else {
			log.Printf("[WARN] loading artifacts: %v", err)
		}
		return nil
	}

	local, err := service.NewLocalClassifier(v, e)
	if err != nil {
		log.Printf("[WARN] local classifier rejected artifacts: %v", err)
		return nil
	}
	log.Printf("[INFO] local model loaded: %d features, trained %s",
		manifest.FeatureCount, manifest.CreatedAt.Format("2006-01-02"))
	return local
}
