package main

import (
	"context"
	"net/http"
	"os"

	"github.com/Abhi-engg/farmstand-backend/api/routes"
	authsvc "github.com/Abhi-engg/farmstand-backend/internal/auth"
	"github.com/Abhi-engg/farmstand-backend/internal/banners"
	"github.com/Abhi-engg/farmstand-backend/internal/cart"
	"github.com/Abhi-engg/farmstand-backend/internal/catalog"
	"github.com/Abhi-engg/farmstand-backend/internal/extraction"
	"github.com/Abhi-engg/farmstand-backend/internal/favorites"
	"github.com/Abhi-engg/farmstand-backend/internal/reviews"
	"github.com/Abhi-engg/farmstand-backend/internal/users"
	"github.com/Abhi-engg/farmstand-backend/pkg/auth/session"
	"github.com/Abhi-engg/farmstand-backend/pkg/config"
	"github.com/Abhi-engg/farmstand-backend/pkg/db"
	"github.com/Abhi-engg/farmstand-backend/pkg/gemini"
	"github.com/Abhi-engg/farmstand-backend/pkg/logger"
	"github.com/Abhi-engg/farmstand-backend/pkg/media"
	"github.com/Abhi-engg/farmstand-backend/pkg/metrics"
	"github.com/Abhi-engg/farmstand-backend/pkg/migrate"
	"github.com/Abhi-engg/farmstand-backend/pkg/redis"
	"github.com/joho/godotenv"
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

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
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

	usersRepo := users.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())
	favoritesRepo := favorites.NewRepository(dbClient.DB())
	reviewsRepo := reviews.NewRepository(dbClient.DB())

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := authsvc.NewRegisterService(authsvc.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	favoritesService, err := favorites.NewService(favorites.ServiceParams{
		Repo:     favoritesRepo,
		Products: catalogRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create favorites service", err)
		os.Exit(1)
	}

	mediaResolver := media.NewResolver(cfg.Media.BaseURL)

	catalogService, err := catalog.NewService(catalog.ServiceParams{
		Repo:      catalogRepo,
		Favorites: favoritesService,
		Media:     mediaResolver,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	reviewsService, err := reviews.NewService(reviews.ServiceParams{
		Repo:     reviewsRepo,
		Products: catalogRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reviews service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.ServiceParams{DB: dbClient})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	bannersService, err := banners.NewService(banners.NewRepository(dbClient.DB()), mediaResolver)
	if err != nil {
		logg.Error(context.Background(), "failed to create banners service", err)
		os.Exit(1)
	}

	extractionService, err := extraction.NewService(extraction.ServiceParams{
		Extractor: gemini.New(cfg.Gemini),
		Config:    cfg.Gemini,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create extraction service", err)
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
			registerService,
			usersRepo,
			catalogService,
			reviewsService,
			favoritesService,
			cartService,
			bannersService,
			extractionService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
