package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/knagase/wardrobe-api/api/routes"
	authsvc "github.com/knagase/wardrobe-api/internal/auth"
	"github.com/knagase/wardrobe-api/internal/clothing"
	"github.com/knagase/wardrobe-api/internal/media"
	"github.com/knagase/wardrobe-api/internal/rooms"
	"github.com/knagase/wardrobe-api/internal/seasons"
	"github.com/knagase/wardrobe-api/internal/users"
	"github.com/knagase/wardrobe-api/pkg/config"
	"github.com/knagase/wardrobe-api/pkg/db"
	"github.com/knagase/wardrobe-api/pkg/logger"
	"github.com/knagase/wardrobe-api/pkg/migrate"
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

	storage, err := media.NewDiskStorage(cfg.Media.Dir)
	if err != nil {
		logg.Error(context.Background(), "failed to prepare upload storage", err)
		os.Exit(1)
	}
	mediaService, err := media.NewService(storage, cfg.Media)
	if err != nil {
		logg.Error(context.Background(), "failed to create media service", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	roomRepo := rooms.NewRepository(dbClient.DB())
	seasonRepo := seasons.NewRepository(dbClient.DB())
	clothingRepo := clothing.NewRepository(dbClient.DB())

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo: userRepo,
		JWT:      cfg.JWT,
		Password: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(users.ServiceParams{UserRepo: userRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	roomService, err := rooms.NewService(rooms.ServiceParams{RoomRepo: roomRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create room service", err)
		os.Exit(1)
	}

	clothingService, err := clothing.NewService(clothing.ServiceParams{
		ClothingRepo: clothingRepo,
		RoomRepo:     roomRepo,
		SeasonRepo:   seasonRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create clothing service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

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
		Handler: routes.NewRouter(routes.RouterParams{
			Config:          cfg,
			Logger:          logg,
			DB:              dbClient,
			Registry:        registry,
			AuthService:     authService,
			UserService:     userService,
			RoomService:     roomService,
			ClothingService: clothingService,
			MediaService:    mediaService,
			SeasonRepo:      seasonRepo,
			UploadDir:       storage.Dir(),
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
