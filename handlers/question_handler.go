package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"triviaapi/models"
	"triviaapi/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionService *services.QuestionService
	categoryService *services.CategoryService
}

func NewQuestionHandler(questionService *services.QuestionService, categoryService *services.CategoryService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		categoryService: categoryService,
	}
}

// GetQuestions handles GET /api/questions.
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	ctx := c.Request.Context()
	page := pageFromQuery(c)

	questions, err := h.questionService.List(ctx)
	if err != nil {
		log.Printf("Error listing questions: %v", err)
		AbortWithStatus(c, storeErrorStatus(err, http.StatusInternalServerError))
		return
	}

	current := services.Paginate(page, models.FormatQuestions(questions))
	if len(current) == 0 {
		AbortWithStatus(c, http.StatusNotFound)
		return
	}

	categories, err := h.categoryService.List(ctx)
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		AbortWithStatus(c, storeErrorStatus(err, http.StatusInternalServerError))
		return
	}

	// The listing always reports the first category, whatever page is shown.
	var currentCategory *models.CategoryView
	if len(categories) > 0 {
		first := categories[0].Format()
		currentCategory = &first
	}

	var nextPage, previousPage *string
	if len(current) == services.QuestionsPerPage {
		link := pageLink(c, page+1)
		nextPage = &link
	}
	if page > 1 {
		link := pageLink(c, page-1)
		previousPage = &link
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"questions":        current,
		"total_questions":  len(questions),
		"categories":       services.TypeMap(categories),
		"current_category": currentCategory,
		"next_page":        nextPage,
		"previous":         previousPage,
	})
}

// CreateQuestion handles POST /api/questions.
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req services.CreateQuestionRequest
	if !bindJSON(c, &req) {
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), &req)
	if err != nil {
		log.Printf("Error creating question: %v", err)
		AbortWithStatus(c, http.StatusUnprocessableEntity)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"created": question.ID,
		"message": "Question created",
	})
}

// DeleteQuestion handles DELETE /api/questions/:id.
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	questionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		AbortWithStatus(c, http.StatusNotFound)
		return
	}

	err = h.questionService.Delete(c.Request.Context(), uint(questionID))
	if services.IsNotFound(err) {
		AbortWithStatus(c, http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		log.Printf("Error deleting question %d: %v", questionID, err)
		AbortWithStatus(c, http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Deleted",
	})
}

// SearchQuestions handles POST /api/questions/search.
func (h *QuestionHandler) SearchQuestions(c *gin.Context) {
	var req services.SearchRequest
	if !bindJSON(c, &req) {
		return
	}

	questions, err := h.questionService.Search(c.Request.Context(), &req)
	if err != nil {
		AbortWithStatus(c, storeErrorStatus(err, http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"questions":       models.FormatQuestions(questions),
		"total_questions": len(questions),
	})
}

func pageLink(c *gin.Context, page int) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	switch forwarded := strings.ToLower(c.GetHeader("X-Forwarded-Proto")); forwarded {
	case "http", "https":
		scheme = forwarded
	}
	return fmt.Sprintf("%s://%s/api/questions?page=%d", scheme, c.Request.Host, page)
}
