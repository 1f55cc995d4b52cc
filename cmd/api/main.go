package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/amara-cosmetics/amara-backend/api/routes"
	"github.com/amara-cosmetics/amara-backend/internal/addresses"
	"github.com/amara-cosmetics/amara-backend/internal/auth"
	"github.com/amara-cosmetics/amara-backend/internal/cart"
	"github.com/amara-cosmetics/amara-backend/internal/catalog"
	"github.com/amara-cosmetics/amara-backend/internal/content"
	"github.com/amara-cosmetics/amara-backend/internal/orders"
	"github.com/amara-cosmetics/amara-backend/internal/profiles"
	"github.com/amara-cosmetics/amara-backend/internal/reviews"
	"github.com/amara-cosmetics/amara-backend/internal/stats"
	"github.com/amara-cosmetics/amara-backend/internal/wishlist"
	"github.com/amara-cosmetics/amara-backend/pkg/auth/session"
	"github.com/amara-cosmetics/amara-backend/pkg/config"
	"github.com/amara-cosmetics/amara-backend/pkg/db"
	"github.com/amara-cosmetics/amara-backend/pkg/logger"
	"github.com/amara-cosmetics/amara-backend/pkg/metrics"
	"github.com/amara-cosmetics/amara-backend/pkg/migrate"
	"github.com/amara-cosmetics/amara-backend/pkg/redis"
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

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := profiles.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())
	cartRepo := cart.NewRepository(dbClient.DB())
	orderRepo := orders.NewRepository(dbClient.DB())
	addressRepo := addresses.NewRepository(dbClient.DB())
	reviewRepo := reviews.NewRepository(dbClient.DB())
	wishlistRepo := wishlist.NewRepository(dbClient.DB())
	contentRepo := content.NewRepository(dbClient.DB())
	statsRepo := stats.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.ServiceParams{
		CatalogRepo: catalogRepo,
		Ratings:     reviewRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.ServiceParams{
		CartRepo:    cartRepo,
		CatalogRepo: catalogRepo,
		Checkout:    cfg.Checkout,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.ServiceParams{
		OrderRepo: orderRepo,
		CartRepo:  cartRepo,
		DB:        dbClient,
		Checkout:  cfg.Checkout,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	addressesService, err := addresses.NewService(addresses.ServiceParams{
		AddressRepo: addressRepo,
		DB:          dbClient,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create addresses service", err)
		os.Exit(1)
	}

	reviewsService, err := reviews.NewService(reviews.ServiceParams{
		ReviewRepo:  reviewRepo,
		CatalogRepo: catalogRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reviews service", err)
		os.Exit(1)
	}

	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{
		WishlistRepo: wishlistRepo,
		CatalogRepo:  catalogRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
		os.Exit(1)
	}

	profilesService, err := profiles.NewService(profiles.ServiceParams{
		UserRepo: userRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create profiles service", err)
		os.Exit(1)
	}

	contentService, err := content.NewService(content.ServiceParams{
		ContentRepo: contentRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create content service", err)
		os.Exit(1)
	}

	statsService, err := stats.NewService(stats.ServiceParams{
		StatsRepo: statsRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create stats service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics()

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
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			httpMetrics,
			authService,
			catalogService,
			cartService,
			ordersService,
			addressesService,
			reviewsService,
			wishlistService,
			profilesService,
			contentService,
			statsService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
