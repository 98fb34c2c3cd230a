package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/solsticegems/solstice-backend/api/controllers"
	"github.com/solsticegems/solstice-backend/api/routes"
	"github.com/solsticegems/solstice-backend/internal/auth"
	"github.com/solsticegems/solstice-backend/internal/cart"
	"github.com/solsticegems/solstice-backend/internal/catalog"
	"github.com/solsticegems/solstice-backend/internal/customize"
	"github.com/solsticegems/solstice-backend/internal/inventory"
	"github.com/solsticegems/solstice-backend/internal/media"
	"github.com/solsticegems/solstice-backend/pkg/config"
	"github.com/solsticegems/solstice-backend/pkg/db"
	"github.com/solsticegems/solstice-backend/pkg/logger"
	"github.com/solsticegems/solstice-backend/pkg/metrics"
	"github.com/solsticegems/solstice-backend/pkg/migrate"
	"github.com/solsticegems/solstice-backend/pkg/pubsub"
	"github.com/solsticegems/solstice-backend/pkg/redis"
	"github.com/solsticegems/solstice-backend/pkg/storage/gcs"
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

	pingers := map[string]controllers.Pinger{
		"database": dbClient,
		"redis":    redisClient,
	}

	var gcsClient *gcs.Client
	if cfg.GCS.BucketName != "" {
		gcsClient, err = gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap gcs", err)
			os.Exit(1)
		}
		defer func() {
			if err := gcsClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing gcs", err)
			}
		}()
		pingers["gcs"] = gcsClient
	} else {
		logg.Warn(context.Background(), "gcs bucket not configured, media uploads disabled")
	}

	var pubsubClient *pubsub.Client
	if cfg.GCP.ProjectID != "" {
		pubsubClient, err = pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer func() {
			if err := pubsubClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "gcp project not configured, catalog events disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	var imageURL func(string) string
	if gcsClient != nil {
		imageURL = gcsClient.ObjectURL
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())
	catalogService, err := catalog.NewService(catalogRepo, logg, imageURL)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(redisClient, catalogRepo, imageURL, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	customizeService, err := customize.NewService(catalogRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create customize service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.NewRepository(dbClient.DB()), cfg.JWT, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	mediaRepo := media.NewRepository(dbClient.DB())
	var mediaService media.Service
	if gcsClient != nil {
		mediaService, err = media.NewService(mediaRepo, gcsClient, cfg.Media, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create media service", err)
			os.Exit(1)
		}
	}

	catalogEvents := inventory.NewNotifier(nil, logg)
	if pubsubClient != nil {
		catalogEvents = inventory.NewNotifier(pubsubClient.CatalogPublisher(), logg)
	}

	inventoryService, err := inventory.NewService(
		inventory.NewRepository(dbClient.DB()),
		mediaRepo,
		catalogEvents,
		imageURL,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			Catalog:     catalogService,
			Cart:        cartService,
			Customize:   customizeService,
			Inventory:   inventoryService,
			Media:       mediaService,
			Auth:        authService,
			Idempotency: redisClient,
			RateLimit:   redisClient,
			HTTPMetrics: httpMetrics,
			Registry:    registry,
			Pingers:     pingers,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
