package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"triviaapi/models"

	"gorm.io/gorm"
)

type QuestionService struct {
	db  *gorm.DB
	hub *Hub
}

// NewQuestionService builds the service. hub may be nil, in which case no
// change events are published.
func NewQuestionService(db *gorm.DB, hub *Hub) *QuestionService {
	return &QuestionService{db: db, hub: hub}
}

// CreateQuestionRequest keeps question as a pointer so an absent key can be
// told apart from an empty string. The remaining fields are taken as sent:
// category and difficulty accept numeric strings and answer any scalar.
type CreateQuestionRequest struct {
	Question   *string   `json:"question"`
	Answer     LaxString `json:"answer"`
	Category   LaxInt    `json:"category"`
	Difficulty LaxInt    `json:"difficulty"`
}

type SearchRequest struct {
	SearchTerm *string `json:"search_term"`
}

func (s *QuestionService) List(ctx context.Context) ([]models.Question, error) {
	var questions []models.Question
	if err := s.db.WithContext(ctx).Order("id").Find(&questions).Error; err != nil {
		return nil, ClassifyStoreError(err)
	}
	return questions, nil
}

func (s *QuestionService) ListByCategory(ctx context.Context, categoryID int) ([]models.Question, error) {
	var questions []models.Question
	if err := s.db.WithContext(ctx).
		Where("category = ?", categoryID).
		Order("id").
		Find(&questions).Error; err != nil {
		return nil, ClassifyStoreError(err)
	}
	return questions, nil
}

func (s *QuestionService) Get(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	if err := s.db.WithContext(ctx).First(&question, id).Error; err != nil {
		return nil, ClassifyStoreError(err)
	}
	return &question, nil
}

func (s *QuestionService) Create(ctx context.Context, req *CreateQuestionRequest) (*models.Question, error) {
	if req == nil || req.Question == nil {
		return nil, fmt.Errorf("%w: question is required", ErrUnprocessable)
	}

	question := models.Question{
		Question:   *req.Question,
		Answer:     string(req.Answer),
		Category:   int(req.Category),
		Difficulty: int(req.Difficulty),
	}

	if err := s.db.WithContext(ctx).Create(&question).Error; err != nil {
		return nil, ClassifyStoreError(err)
	}

	if s.hub != nil {
		s.hub.BroadcastQuestionEvent(EventQuestionCreated, question.Format())
	}

	return &question, nil
}

// Delete removes the question with the given id. A missing row is reported as
// ErrNotFound; the caller decides how that surfaces.
func (s *QuestionService) Delete(ctx context.Context, id uint) error {
	question, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).Delete(&models.Question{}, question.ID)
	if result.Error != nil {
		return ClassifyStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		// Removed by a concurrent request between lookup and delete.
		return fmt.Errorf("%w: question %d", ErrNotFound, id)
	}

	if s.hub != nil {
		s.hub.BroadcastQuestionEvent(EventQuestionDeleted, question.Format())
	}

	return nil
}

// Search matches term case-insensitively as a substring of the question
// text. An empty term matches every row.
func (s *QuestionService) Search(ctx context.Context, req *SearchRequest) ([]models.Question, error) {
	if req == nil || req.SearchTerm == nil {
		return nil, fmt.Errorf("%w: search_term is required", ErrUnprocessable)
	}

	var questions []models.Question
	err := s.db.WithContext(ctx).
		Where(searchCondition(s.db.Dialector.Name()), searchPattern(*req.SearchTerm)).
		Order("id").
		Find(&questions).Error
	if err != nil {
		return nil, ClassifyStoreError(err)
	}

	log.Printf("Search %q matched %d questions", *req.SearchTerm, len(questions))
	return questions, nil
}

// searchCondition picks a Unicode-aware case-insensitive match per dialect.
// SQLite's LOWER only folds ASCII, so it goes through unicode_lower.
func searchCondition(dialect string) string {
	switch dialect {
	case "postgres":
		return "question ILIKE ? ESCAPE '\\'"
	case "sqlite":
		return "unicode_lower(question) LIKE ? ESCAPE '\\'"
	default:
		return "LOWER(question) LIKE ? ESCAPE '\\'"
	}
}

func searchPattern(term string) string {
	return "%" + escapeLike(strings.ToLower(term)) + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// IsNotFound reports whether err means a missing row.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
