package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"triviaapi/models"

	"gorm.io/gorm"
)

// AllCategoriesID selects questions from every category.
const AllCategoriesID = 0

const allCategoriesLabel = "All Categories"

type QuizService struct {
	db         *gorm.DB
	categories *CategoryService

	mu  sync.Mutex
	rng *rand.Rand
}

// NewQuizService builds the service. A zero seed seeds the generator from the clock.
func NewQuizService(db *gorm.DB, categories *CategoryService, seed uint64) *QuizService {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &QuizService{
		db:         db,
		categories: categories,
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

type QuizCategory struct {
	ID   *int   `json:"id" binding:"required"`
	Type string `json:"type"`
}

type PlayQuizRequest struct {
	QuizCategory      *QuizCategory `json:"quiz_category" binding:"required"`
	PreviousQuestions []int         `json:"previous_questions"`
}

type PlayQuizResult struct {
	PreviousQuestions []int
	// Question is nil once every candidate has been asked.
	Question        *models.Question
	Questions       []models.Question
	CurrentCategory string
}

// Play picks the next quiz question for the requested category, skipping
// the ids the player has already seen.
func (s *QuizService) Play(ctx context.Context, req *PlayQuizRequest) (*PlayQuizResult, error) {
	if req == nil || req.QuizCategory == nil || req.QuizCategory.ID == nil {
		return nil, fmt.Errorf("%w: quiz_category.id is required", ErrUnprocessable)
	}
	categoryID := *req.QuizCategory.ID

	candidates, err := s.candidates(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no questions for category %d", ErrNotFound, categoryID)
	}

	label, err := s.categoryLabel(ctx, req.QuizCategory)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	previous := req.PreviousQuestions
	if previous == nil {
		previous = []int{}
	}

	s.mu.Lock()
	remaining, chosen := SelectQuizQuestion(s.rng, candidates, previous)
	s.mu.Unlock()

	return &PlayQuizResult{
		PreviousQuestions: previous,
		Question:          chosen,
		Questions:         remaining,
		CurrentCategory:   label,
	}, nil
}

// candidates loads the selection pool ordered by id. Only the all-categories
// pool drops questions with empty text; a single category keeps them.
func (s *QuizService) candidates(ctx context.Context, categoryID int) ([]models.Question, error) {
	query := s.db.WithContext(ctx).Order("id")
	if categoryID == AllCategoriesID {
		query = query.Where("question IS NOT NULL AND question <> ''")
	} else {
		query = query.Where("category = ?", categoryID)
	}

	var questions []models.Question
	if err := query.Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *QuizService) categoryLabel(ctx context.Context, qc *QuizCategory) (string, error) {
	if *qc.ID == AllCategoriesID {
		return allCategoriesLabel, nil
	}
	if *qc.ID < 0 {
		return qc.Type, nil
	}

	category, err := s.categories.Get(ctx, uint(*qc.ID))
	if errors.Is(err, ErrNotFound) {
		// Questions can reference a category id with no row behind it.
		return qc.Type, nil
	}
	if err != nil {
		return "", err
	}
	return category.Type, nil
}

// SelectQuizQuestion removes previously asked ids from candidates and picks
// one of the remaining questions.
//
// With total = len(candidates) and asked = len(previous), the index is drawn
// uniformly from [0, total-asked-1] when that bound is positive and is 0
// otherwise. When asked > 0 and asked == total the quiz is exhausted and the
// returned question is nil.
func SelectQuizQuestion(rng *rand.Rand, candidates []models.Question, previous []int) ([]models.Question, *models.Question) {
	seen := make(map[int]struct{}, len(previous))
	for _, id := range previous {
		seen[id] = struct{}{}
	}

	remaining := make([]models.Question, 0, len(candidates))
	for _, q := range candidates {
		if _, ok := seen[int(q.ID)]; !ok {
			remaining = append(remaining, q)
		}
	}

	total := len(candidates)
	asked := len(previous)

	if asked > 0 && asked == total {
		return remaining, nil
	}
	if len(remaining) == 0 {
		return remaining, nil
	}

	index := 0
	if bound := total - asked - 1; bound > 0 {
		index = rng.IntN(bound + 1)
	}

	chosen := remaining[index]
	return remaining, &chosen
}
