package services

import (
	"context"
	"fmt"
	"log"
	"os"

	"triviaapi/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type SeedFile struct {
	Categories []SeedCategory `yaml:"categories"`
}

type SeedCategory struct {
	ID        uint           `yaml:"id"`
	Type      string         `yaml:"type"`
	Questions []SeedQuestion `yaml:"questions"`
}

type SeedQuestion struct {
	Question   string `yaml:"question"`
	Answer     string `yaml:"answer"`
	Difficulty int    `yaml:"difficulty"`
}

// LoadSeedFile parses a YAML seed document.
func LoadSeedFile(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	for i, c := range seed.Categories {
		if c.ID == 0 || c.Type == "" {
			return nil, fmt.Errorf("seed category %d needs a non-zero id and a type", i)
		}
	}
	return &seed, nil
}

// Seed inserts the seed data when the category table is empty. It reports
// whether anything was written.
func Seed(ctx context.Context, db *gorm.DB, seed *SeedFile) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Category{}).Count(&count).Error; err != nil {
		return false, ClassifyStoreError(err)
	}
	if count > 0 {
		log.Printf("Store already holds %d categories, skipping seed", count)
		return false, nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		questions := 0
		for _, c := range seed.Categories {
			category := models.Category{ID: c.ID, Type: c.Type}
			if err := tx.Create(&category).Error; err != nil {
				return err
			}
			for _, q := range c.Questions {
				question := models.Question{
					Question:   q.Question,
					Answer:     q.Answer,
					Category:   int(c.ID),
					Difficulty: q.Difficulty,
				}
				if err := tx.Create(&question).Error; err != nil {
					return err
				}
				questions++
			}
		}
		log.Printf("Seeded %d categories and %d questions", len(seed.Categories), questions)
		return nil
	})
	if err != nil {
		return false, ClassifyStoreError(err)
	}
	return true, nil
}
