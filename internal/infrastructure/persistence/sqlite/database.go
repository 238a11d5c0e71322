// Package sqlite provides SQLite database setup and configuration
package sqlite

import (
	"fmt"

	"gorm.io/driver/sqlite"
	gormlib "gorm.io/gorm"
	"gorm.io/gorm/logger"

	gormModels "github.com/receitario/v1/internal/infrastructure/persistence/gorm"
)

// SetupDatabase creates and configures the SQLite database
func SetupDatabase(dbPath string, logLevel logger.LogLevel) (*gormlib.DB, error) {
	// Use in-memory database if no path provided
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := gormlib.Open(sqlite.Open(dbPath), &gormlib.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(gormModels.AllModels()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// SeedDatabase populates an empty database with the default categories
// and diet plan so a fresh install renders a browsable site
func SeedDatabase(db *gormlib.DB) error {
	var categoryCount int64
	db.Model(&gormModels.CategoryModel{}).Count(&categoryCount)
	if categoryCount > 0 {
		return nil // Already seeded
	}

	categories := []gormModels.CategoryModel{
		{ID: "bolos", Name: "Bolos", SortOrder: 0},
		{ID: "pratos-principais", Name: "Pratos Principais", SortOrder: 1},
		{ID: "sobremesas", Name: "Sobremesas", SortOrder: 2},
		{ID: "lanches", Name: "Lanches", SortOrder: 3},
		{ID: "saladas", Name: "Saladas", SortOrder: 4},
		{ID: "sopas", Name: "Sopas", SortOrder: 5},
	}
	for _, c := range categories {
		if err := db.Create(&c).Error; err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.ID, err)
		}
	}

	plan := gormModels.DietPlanModel{
		ID:          "semana-leve",
		Title:       "Semana Leve",
		Description: "Uma semana de refeicoes leves e equilibradas",
		Duration:    "7 dias",
		Level:       "iniciante",
		Goal:        "alimentacao equilibrada",
		Structure: gormModels.JSONField(`{
			"mon": {"LunchQuery": "salada", "DinnerQuery": "sopa"},
			"tue": {"LunchQuery": "frango grelhado", "DinnerQuery": "omelete"},
			"wed": {"LunchQuery": "peixe", "DinnerQuery": "salada"},
			"thu": {"LunchQuery": "legumes assados", "DinnerQuery": "sopa"},
			"fri": {"LunchQuery": "frango", "DinnerQuery": "sanduiche natural"},
			"sat": {"LunchQuery": "massa integral", "DinnerQuery": "salada"},
			"sun": {"LunchQuery": "assado de domingo", "DinnerQuery": "sopa leve"}
		}`),
	}
	if err := db.Create(&plan).Error; err != nil {
		return fmt.Errorf("failed to seed diet plan: %w", err)
	}

	return nil
}
