package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"triviaapi/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const categoriesCacheKey = "trivia:categories"

type CategoryService struct {
	db       *gorm.DB
	redis    *redis.Client
	cacheTTL time.Duration
}

// NewCategoryService builds the service. A nil redis client or a zero TTL
// turns the category cache off.
func NewCategoryService(db *gorm.DB, redis *redis.Client, cacheTTL time.Duration) *CategoryService {
	return &CategoryService{
		db:       db,
		redis:    redis,
		cacheTTL: cacheTTL,
	}
}

// List returns every category ordered by id.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	if categories := s.getCachedCategories(ctx); categories != nil {
		return categories, nil
	}

	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, ClassifyStoreError(err)
	}

	if len(categories) > 0 {
		if err := s.storeCachedCategories(ctx, categories); err != nil {
			log.Printf("Failed to cache categories: %v", err)
		}
	}

	return categories, nil
}

// Get looks up a single category.
func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, ClassifyStoreError(err)
	}
	return &category, nil
}

// TypeMap maps category id to its type name, the shape the listing endpoints return.
func TypeMap(categories []models.Category) map[uint]string {
	types := make(map[uint]string, len(categories))
	for _, c := range categories {
		types[c.ID] = c.Type
	}
	return types
}

// InvalidateCache drops the cached listing, used after seeding.
func (s *CategoryService) InvalidateCache(ctx context.Context) error {
	if !s.cacheEnabled() {
		return nil
	}
	return s.redis.Del(ctx, categoriesCacheKey).Err()
}

func (s *CategoryService) cacheEnabled() bool {
	return s.redis != nil && s.cacheTTL > 0
}

func (s *CategoryService) storeCachedCategories(ctx context.Context, categories []models.Category) error {
	if !s.cacheEnabled() {
		return nil
	}

	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}

	if err := s.redis.Set(ctx, categoriesCacheKey, data, s.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to store in Redis: %w", err)
	}
	return nil
}

func (s *CategoryService) getCachedCategories(ctx context.Context) []models.Category {
	if !s.cacheEnabled() {
		return nil
	}

	data, err := s.redis.Get(ctx, categoriesCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Redis error getting categories: %v", err)
		}
		return nil
	}

	var categories []models.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		log.Printf("Failed to unmarshal cached categories: %v", err)
		return nil
	}
	if len(categories) == 0 {
		return nil
	}
	return categories
}
