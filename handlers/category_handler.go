package handlers

import (
	"log"
	"net/http"
	"strconv"

	"triviaapi/models"
	"triviaapi/services"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
	questionService *services.QuestionService
}

func NewCategoryHandler(categoryService *services.CategoryService, questionService *services.QuestionService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		questionService: questionService,
	}
}

// GetCategories handles GET /api/categories.
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		AbortWithStatus(c, storeErrorStatus(err, http.StatusInternalServerError))
		return
	}
	if len(categories) == 0 {
		AbortWithStatus(c, http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"categories":       services.TypeMap(categories),
		"total_categories": len(categories),
	})
}

// GetQuestionsByCategory handles GET /api/categories/:id/questions.
func (h *CategoryHandler) GetQuestionsByCategory(c *gin.Context) {
	categoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil || categoryID < 1 {
		AbortWithStatus(c, http.StatusNotFound)
		return
	}

	ctx := c.Request.Context()

	questions, err := h.questionService.ListByCategory(ctx, categoryID)
	if err != nil {
		log.Printf("Error listing questions for category %d: %v", categoryID, err)
		AbortWithStatus(c, storeErrorStatus(err, http.StatusInternalServerError))
		return
	}

	current := services.Paginate(pageFromQuery(c), models.FormatQuestions(questions))
	if len(current) == 0 {
		AbortWithStatus(c, http.StatusNotFound)
		return
	}

	category, err := h.categoryService.Get(ctx, uint(categoryID))
	if err != nil {
		AbortWithStatus(c, storeErrorStatus(err, http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"questions":        current,
		"total_questions":  len(questions),
		"current_category": category.Format(),
	})
}

// pageFromQuery reads ?page=, falling back to 1 when absent or not a number.
func pageFromQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return page
}
