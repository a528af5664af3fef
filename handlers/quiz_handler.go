package handlers

import (
	"log"
	"net/http"

	"triviaapi/models"
	"triviaapi/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService *services.QuizService
}

func NewQuizHandler(quizService *services.QuizService) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
	}
}

// PlayQuiz handles POST /api/quizzes.
func (h *QuizHandler) PlayQuiz(c *gin.Context) {
	var req services.PlayQuizRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.quizService.Play(c.Request.Context(), &req)
	if err != nil {
		log.Printf("Error playing quiz: %v", err)
		AbortWithStatus(c, storeErrorStatus(err, http.StatusServiceUnavailable))
		return
	}

	// false marks an exhausted quiz.
	var question interface{} = false
	if result.Question != nil {
		question = result.Question.Format()
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"previousQuestions": result.PreviousQuestions,
		"question":          question,
		"questions":         models.FormatQuestions(result.Questions),
		"total_questions":   len(result.Questions),
		"current_category":  result.CurrentCategory,
	})
}
