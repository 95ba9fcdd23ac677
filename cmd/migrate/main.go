package main

import (
	"go.uber.org/zap"

	"github.com/platewise/backend/config"
	"github.com/platewise/backend/internal/database"
	"github.com/platewise/backend/pkg/log"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.L.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg)
	if err != nil {
		log.L.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := database.Migrate(db); err != nil {
		log.L.Fatal("migration failed", zap.Error(err))
	}
	log.L.Info("migrations applied")
}
