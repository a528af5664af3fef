package routes

import (
	"net/http"

	"triviaapi/handlers"
	"triviaapi/middleware"
	"triviaapi/services"

	"github.com/gin-gonic/gin"
)

// NewEngine returns a gin engine with the shared middleware chain and the
// JSON handlers for unknown routes and wrong methods.
func NewEngine() *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	// /api/questions/ must 404 rather than redirect to the collection.
	router.RedirectTrailingSlash = false

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())

	router.NoRoute(func(c *gin.Context) {
		handlers.AbortWithStatus(c, http.StatusNotFound)
	})
	router.NoMethod(func(c *gin.Context) {
		handlers.AbortWithStatus(c, http.StatusMethodNotAllowed)
	})

	handlers.UseJSONFieldNames()

	return router
}

func SetupRoutes(
	router *gin.Engine,
	categoryHandler *handlers.CategoryHandler,
	questionHandler *handlers.QuestionHandler,
	quizHandler *handlers.QuizHandler,
	authHandler *handlers.AuthHandler,
	feedHandler *handlers.FeedHandler,
	authService *services.AuthService,
) {
	api := router.Group("/api")
	{
		api.POST("/auth/token", authHandler.IssueToken)

		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.GetCategories)
			categories.GET("/:id/questions", categoryHandler.GetQuestionsByCategory)
		}

		questions := api.Group("/questions")
		{
			questions.GET("", questionHandler.GetQuestions)
			questions.POST("/search", questionHandler.SearchQuestions)

			// Writes need an admin token when auth is configured.
			protected := questions.Group("")
			protected.Use(middleware.AuthMiddleware(authService))
			{
				protected.POST("", questionHandler.CreateQuestion)
				protected.DELETE("/:id", questionHandler.DeleteQuestion)
			}
		}

		api.POST("/quizzes", quizHandler.PlayQuiz)
	}

	// Live question changes
	router.GET("/ws/questions", feedHandler.Subscribe)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
