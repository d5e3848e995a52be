package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Aniket-7751/POS-sub001/api/controllers"
	"github.com/Aniket-7751/POS-sub001/api/routes"
	"github.com/Aniket-7751/POS-sub001/internal/catalogue"
	"github.com/Aniket-7751/POS-sub001/internal/invoices"
	"github.com/Aniket-7751/POS-sub001/internal/orders"
	"github.com/Aniket-7751/POS-sub001/internal/pricing"
	"github.com/Aniket-7751/POS-sub001/pkg/config"
	"github.com/Aniket-7751/POS-sub001/pkg/db"
	"github.com/Aniket-7751/POS-sub001/pkg/env"
	"github.com/Aniket-7751/POS-sub001/pkg/logger"
	"github.com/Aniket-7751/POS-sub001/pkg/metrics"
	"github.com/Aniket-7751/POS-sub001/pkg/migrate"
	"github.com/Aniket-7751/POS-sub001/pkg/outbox"
	"github.com/Aniket-7751/POS-sub001/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gormDB := dbClient.DB()

	catalogueRepo := catalogue.NewRepository(gormDB)
	pricingSvc, err := pricing.NewService(catalogueRepo, pricing.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing service", err)
		os.Exit(1)
	}

	invoicesSvc, err := invoices.NewService(invoices.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create invoices service", err)
		os.Exit(1)
	}

	outboxSvc := outbox.NewService(outbox.NewRepository(), logg)

	ordersSvc, err := orders.NewService(orders.NewRepository(gormDB), dbClient, pricingSvc, invoicesSvc, outboxSvc)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	router := routes.NewRouter(routes.Dependencies{
		Config:      cfg,
		Logger:      logg,
		Orders:      ordersSvc,
		Pricing:     pricingSvc,
		Invoices:    invoicesSvc,
		Idempotency: redisClient,
		HTTPMetrics: httpMetrics,
		Readiness: map[string]controllers.Pinger{
			"postgres": dbClient,
			"redis":    redisClient,
		},
		MetricsH: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	addr := ":" + env.Get("PORT", cfg.App.Port)
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
