package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/platewise/backend/config"
	"github.com/platewise/backend/internal/database"
	"github.com/platewise/backend/internal/models"
	"github.com/platewise/backend/internal/service"
	"github.com/platewise/backend/pkg/log"
)

// Loads the ingredient catalog from a JSON file of
// [{"name": "...", "measurement_unit": "..."}] entries. Rows already
// present are skipped, so the command is safe to rerun.
func main() {
	path := flag.String("file", "data/ingredients.json", "path to the ingredients JSON file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.L.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg)
	if err != nil {
		log.L.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.L.Fatal("failed to run migrations", zap.Error(err))
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		log.L.Fatal("failed to read ingredients file", zap.String("path", *path), zap.Error(err))
	}

	var ingredients []models.Ingredient
	if err := json.Unmarshal(data, &ingredients); err != nil {
		log.L.Fatal("failed to parse ingredients file", zap.Error(err))
	}

	created, err := service.NewIngredientService(db).Import(context.Background(), ingredients)
	if err != nil {
		log.L.Fatal("import failed", zap.Error(err))
	}
	log.L.Info("ingredients imported",
		zap.Int("created", created),
		zap.Int("total", len(ingredients)))
}
