package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"triviaapi/config"
	"triviaapi/handlers"
	"triviaapi/models"
	"triviaapi/routes"
	"triviaapi/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis (optional)
	redisClient := config.InitRedis(cfg)
	if redisClient != nil {
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis unreachable, category cache will fall back to the database: %v", err)
		}
	}

	// Initialize services
	hub := services.NewHub()
	go hub.Run(ctx)

	categoryService := services.NewCategoryService(db, redisClient, cfg.CategoryCacheTTL)
	questionService := services.NewQuestionService(db, hub)
	quizService := services.NewQuizService(db, categoryService, cfg.QuizSeed)
	authService := services.NewAuthService(cfg.JWTSecret, cfg.AdminPasswordHash, cfg.TokenTTL)

	if cfg.SeedFile != "" {
		seed, err := services.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			log.Fatal("Failed to load seed file:", err)
		}
		seeded, err := services.Seed(ctx, db, seed)
		if err != nil {
			log.Fatal("Failed to seed database:", err)
		}
		if seeded {
			if err := categoryService.InvalidateCache(ctx); err != nil {
				log.Printf("Failed to invalidate category cache: %v", err)
			}
		}
	}

	if authService.Enabled() {
		log.Println("Admin authentication enabled for question writes")
	}

	// Initialize handlers
	categoryHandler := handlers.NewCategoryHandler(categoryService, questionService)
	questionHandler := handlers.NewQuestionHandler(questionService, categoryService)
	quizHandler := handlers.NewQuizHandler(quizService)
	authHandler := handlers.NewAuthHandler(authService)
	feedHandler := handlers.NewFeedHandler(hub)

	router := routes.NewEngine()
	routes.SetupRoutes(router, categoryHandler, questionHandler, quizHandler, authHandler, feedHandler, authService)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		log.Println("Shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
		}
	}()

	log.Printf("Server starting on %s", cfg.Addr())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Failed to start server:", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
