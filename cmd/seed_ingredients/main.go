package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foodgram-project/backend/internal/models"
)

type ingredientData struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func main() {
	file := flag.String("file", "data/ingredients.json", "Path to the ingredients JSON file")
	flag.Parse()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	content, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read ingredients file: %v", err)
	}

	var entries []ingredientData
	if err := json.Unmarshal(content, &entries); err != nil {
		log.Fatalf("Failed to parse ingredients file: %v", err)
	}

	ingredients := make([]models.Ingredient, 0, len(entries))
	for _, entry := range entries {
		if entry.Name == "" || entry.MeasurementUnit == "" {
			log.Printf("Skipping incomplete entry: %+v", entry)
			continue
		}
		ingredients = append(ingredients, models.Ingredient{
			Name:            entry.Name,
			MeasurementUnit: entry.MeasurementUnit,
		})
	}

	// Re-running the seed must not duplicate rows.
	result := db.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(ingredients, 500)
	if result.Error != nil {
		log.Fatalf("Failed to seed ingredients: %v", result.Error)
	}

	log.Printf("Seeded %d ingredients (%d new)", len(ingredients), result.RowsAffected)
}
