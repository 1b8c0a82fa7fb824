// main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"movies-api/cmd"
	"movies-api/internal/data/repository"
	"movies-api/internal/usecase"
	"movies-api/internal/wire"
	"movies-api/pkg/database"
	"movies-api/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	seedAPIKeys := flag.Bool("seed-api-keys", false, "create an admin and a public API key, print their tokens and exit")
	flag.Parse()

	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	repos, closeDB := openRepository(config, logger)
	defer closeDB()

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	// In-memory keys only live as long as the process, so memory mode always seeds.
	if *seedAPIKeys || config.Database.Driver == "memory" {
		if err := seed(app.Service.Auth); err != nil {
			logger.Fatal("Failed to seed api keys", zap.Error(err))
		}
		if *seedAPIKeys {
			return
		}
	}

	if app.Limiter != nil {
		sweepCtx, stopSweep := context.WithCancel(context.Background())
		defer stopSweep()
		go app.Limiter.Sweep(sweepCtx, time.Minute, 3*time.Minute)
	}

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}

func seed(auth usecase.AuthService) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, key := range []struct {
		name   string
		scopes []string
	}{
		{"admin", usecase.AdminScopes},
		{"public", usecase.PublicScopes},
	} {
		tok, err := auth.CreateAPIKey(ctx, key.scopes)
		if err != nil {
			return err
		}
		fmt.Printf("%s api key: %s\n", key.name, tok)
	}
	return nil
}

// openRepository picks the storage backend from DB_DRIVER.
func openRepository(config *utils.Config, logger *zap.Logger) (*repository.Repository, func()) {
	if config.Database.Driver == "memory" {
		logger.Warn("Using in-memory storage, data is lost on restart")
		return repository.NewMemoryRepository(), func() {}
	}

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	logger.Info("Database connected successfully")

	return repository.NewRepository(db, logger), db.Close
}
