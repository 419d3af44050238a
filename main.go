// @title           Survey Profiling Tool API
// @version         1.0
// @description     Parish household survey ingestion and participant lookup service for the Archdiocese of Tuguegarao
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer: ` prefix
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/nathan-the-coder/survey-profiling-tool-backend/config"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/models"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/routes"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/services"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/store"
)

func main() {
	if err := config.SetupLogger(); err != nil {
		fmt.Printf("failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	// A missing .env file is fine, variables may come from the environment.
	if err := godotenv.Load(); err != nil {
		config.Warning("no .env file loaded: %v", err)
	} else {
		config.Info(".env file loaded")
	}

	cfg := config.GetConfig()

	st, err := store.New(cfg)
	if err != nil {
		log.Fatalf("failed to open storage backend: %v", err)
	}

	redisClient := newRedisClient(cfg)

	// Relational backends own their schema; the REST backend's tables
	// are managed by the hosting platform.
	if gs, ok := st.(*store.GormStore); ok {
		if err := autoMigrate(gs); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		if err := ensureSuperTenantExists(gs, cfg, redisClient); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
	}

	r := routes.SetupRouter(st, cfg, redisClient)

	port := cfg.ServerPort
	config.Info("server listening on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		config.Error("server exited: %v", err)
		os.Exit(1)
	}
}

// autoMigrate creates missing tables and columns, never drops
func autoMigrate(gs *store.GormStore) error {
	return gs.DB().AutoMigrate(
		&models.User{},
		&models.Household{},
		&models.FamilyMember{},
		&models.HealthConditions{},
		&models.SocioEconomic{},
	)
}

// ensureSuperTenantExists seeds the archdiocese account on first boot
func ensureSuperTenantExists(gs *store.GormStore, cfg *config.Config, redisClient *redis.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	existing, err := gs.GetUserByUsername(ctx, cfg.SuperTenantName)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	auth := services.NewAuthService(gs, cfg,
		services.NewJWTService(cfg), services.NewRedisService(cfg, redisClient))
	if _, err := auth.CreateParishAccount(ctx, cfg.SuperTenantName, cfg.DefaultAdminPassword); err != nil {
		return err
	}
	config.Info("seeded super tenant account %q", cfg.SuperTenantName)
	return nil
}

// newRedisClient opens the optional cache connection. The container
// probes it and falls back to uncached reads when unreachable.
func newRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: cfg.GetRedisAddr(),
		DB:   cfg.RedisDB,
	})
}
