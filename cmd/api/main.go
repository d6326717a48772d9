package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/minhlq-dev/retailbase-backend/internal/config"
	"github.com/minhlq-dev/retailbase-backend/internal/database"
	"github.com/minhlq-dev/retailbase-backend/internal/logger"
	"github.com/minhlq-dev/retailbase-backend/internal/metrics"
	"github.com/minhlq-dev/retailbase-backend/internal/modules/catalog"
	"github.com/minhlq-dev/retailbase-backend/internal/modules/purchase"
	"github.com/minhlq-dev/retailbase-backend/internal/modules/sales"
	"github.com/minhlq-dev/retailbase-backend/internal/modules/store"
	"github.com/minhlq-dev/retailbase-backend/internal/modules/supplier"
	"github.com/minhlq-dev/retailbase-backend/migrations"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.App.Env)

	db, err := database.Open(cfg.Postgres.DSN)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer db.Close()
	log.Info("database connected")

	if err := migrations.Up(db.DB); err != nil {
		log.WithError(err).Fatal("migrations failed")
	}
	log.Info("migrations applied")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(logger.RequestLogger(log))
	if cfg.Metrics.Enabled {
		router.Use(metrics.Middleware)
		router.Handle("/metrics", promhttp.Handler())
	}
	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// ── Tenants & master data ───────────────────────────────
	storeRepo := store.NewPostgresRepository(db)
	storeService := store.NewService(storeRepo)
	store.NewHandler(storeService).RegisterRoutes(router)

	supplierRepo := supplier.NewPostgresRepository(db)
	supplierService := supplier.NewService(supplierRepo)
	supplier.NewHandler(supplierService).RegisterRoutes(router)

	productRepo := catalog.NewProductPostgresRepository(db)
	unitRepo := catalog.NewUnitPostgresRepository(db)
	catalogService := catalog.NewService(productRepo, unitRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	// ── Purchasing & inventory lots ─────────────────────────
	purchaseRepo := purchase.NewPostgresRepository(db)
	purchaseService := purchase.NewService(purchaseRepo)
	purchase.NewHandler(purchaseService).RegisterRoutes(router)

	// ── POS sales (FIFO lot consumption) ────────────────────
	salesRepo := sales.NewPostgresRepository(db)
	salesService := sales.NewService(salesRepo)
	sales.NewHandler(salesService).RegisterRoutes(router)

	log.WithField("addr", cfg.HTTP.Addr).Info("API server starting")
	log.Fatal(http.ListenAndServe(cfg.HTTP.Addr, router))
}
