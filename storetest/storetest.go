// Package storetest opens throwaway in-memory stores for tests.
package storetest

import (
	"testing"

	"triviaapi/config"
	"triviaapi/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory SQLite store that is closed when the
// test ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: config.NewGormLogger(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// Close closes the store early, to simulate an unavailable database.
func Close(t testing.TB, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.Close()
}

// SeedCategories inserts categories with ids 1..len(types).
func SeedCategories(t testing.TB, db *gorm.DB, types ...string) []models.Category {
	t.Helper()
	categories := make([]models.Category, len(types))
	for i, typ := range types {
		categories[i] = models.Category{ID: uint(i + 1), Type: typ}
		if err := db.Create(&categories[i]).Error; err != nil {
			t.Fatalf("failed to seed category %q: %v", typ, err)
		}
	}
	return categories
}

// SeedQuestions inserts questions in order and returns them with ids set.
func SeedQuestions(t testing.TB, db *gorm.DB, questions ...models.Question) []models.Question {
	t.Helper()
	for i := range questions {
		if err := db.Create(&questions[i]).Error; err != nil {
			t.Fatalf("failed to seed question %q: %v", questions[i].Question, err)
		}
	}
	return questions
}

// QuestionsInCategory builds n questions for category.
func QuestionsInCategory(category, n int) []models.Question {
	questions := make([]models.Question, n)
	for i := range questions {
		questions[i] = models.Question{
			Question:   "Question " + string(rune('A'+i%26)) + " about category",
			Answer:     "Answer",
			Category:   category,
			Difficulty: 1 + i%5,
		}
	}
	return questions
}
