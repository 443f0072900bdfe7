package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-user-management/config"
	"github.com/oksasatya/go-user-management/internal/application"
	pginfra "github.com/oksasatya/go-user-management/internal/infrastructure/postgres"
	"github.com/oksasatya/go-user-management/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, helpers.WithLevel(cfg.LogLevel))
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	repo := pginfra.NewAccountRepository(pool)
	seeded, err := application.SeedSamples(ctx, repo, helpers.NewBcryptHasher(cfg.BcryptCost), logger)
	if err != nil {
		log.Fatalf("failed to seed accounts: %v", err)
	}
	if len(seeded) == 0 {
		fmt.Println("accounts table already has data, skipping seed")
		return
	}
	for _, sa := range seeded {
		fmt.Printf("seeded account: email=%s name=%s\n", sa.Email, sa.Name)
	}
}
