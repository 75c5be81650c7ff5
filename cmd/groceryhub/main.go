package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"GroceryHub/internal/grocery"
	"GroceryHub/internal/mailer"
	"GroceryHub/internal/persist"
	"GroceryHub/pkg/kit"
)

func main() {
	_ = godotenv.Load()

	service := "groceryhub"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8080")
	catalogFile := getenv("CATALOG_FILE", "grocery_catalog.json")

	local := persist.NewFileStore(catalogFile)
	primary, cleanup := buildPrimaryStore(log)
	defer cleanup()

	sources := []persist.DocumentStore{}
	if primary != nil {
		sources = append(sources, primary)
	}
	sources = append(sources, local)

	loader := &persist.Loader{Sources: sources, Log: log}
	result := loader.Load(context.Background())

	manager := grocery.NewManager(result.Doc, nil, log)

	registry := prometheus.NewRegistry()
	scheduler := persist.NewScheduler(persist.Config{
		Snapshot: manager.Snapshot,
		Primary:  primary,
		Fallback: local,
		Delay:    saveDelay(),
		Log:      log,
		Metrics:  persist.NewMetrics(registry),
	})
	manager.SetSaver(scheduler)

	if result.Healed || result.Source == "seed" {
		scheduler.Schedule()
	}

	var listMailer grocery.ListMailer
	if key := os.Getenv("RESEND_API_KEY"); key != "" {
		listMailer = mailer.NewClient(key, getenv("EMAIL_FROM", "onboarding@resend.dev"))
	} else {
		log.Warn("RESEND_API_KEY not set, email sending disabled")
	}

	s := &grocery.Server{
		Manager: manager,
		Mailer:  listMailer,
		Persist: scheduler,
		Log:     log,
	}

	h := grocery.NewHandler(s, grocery.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       registry,
		MetricsEnabled: os.Getenv("METRICS_ENABLED") == "true",
		MetricsToken:   os.Getenv("METRICS_TOKEN"),
		EmailLimiter:   kit.NewIPRateLimiter(5, 60),
	})

	err := kit.RunHTTPServer(":"+port, h, log, func() {
		log.Info("flushing state before exit")
		scheduler.Flush()
	})
	if err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

// buildPrimaryStore picks the remote document store: Postgres when
// DATABASE_URL is set, otherwise the hub when HUB_URL is. Neither being
// configured is normal; the local file carries everything.
func buildPrimaryStore(log *zap.Logger) (persist.DocumentStore, func()) {
	noop := func() {}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		pg, err := persist.OpenPostgres(dsn)
		if err != nil {
			log.Warn("postgres open failed, continuing without it", zap.Error(err))
			return nil, noop
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Warn("postgres schema setup failed, continuing without it", zap.Error(err))
			_ = pg.Close()
			return nil, noop
		}
		return pg, func() { _ = pg.Close() }
	}

	if hubURL := os.Getenv("HUB_URL"); hubURL != "" {
		return persist.NewHubClient(
			hubURL,
			getenv("HUB_REPO", "grocery-catalog"),
			getenv("HUB_FILE", "grocery_catalog.json"),
			os.Getenv("HUB_TOKEN"),
		), noop
	}

	log.Info("no remote store configured, local file only")
	return nil, noop
}

func saveDelay() time.Duration {
	if v := os.Getenv("SAVE_DELAY_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return persist.DefaultSaveDelay
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
