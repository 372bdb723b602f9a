package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hinagiku/taskboard-api/internal/auth"
	"github.com/hinagiku/taskboard-api/internal/config"
	"github.com/hinagiku/taskboard-api/internal/database"
	"github.com/hinagiku/taskboard-api/internal/handlers"
	"github.com/hinagiku/taskboard-api/internal/middleware"
	"github.com/hinagiku/taskboard-api/internal/repository"
	"github.com/hinagiku/taskboard-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Token service
	tokens := auth.NewTokenService(cfg.SecretKey, time.Duration(cfg.TokenExpireMinutes)*time.Minute)

	// Repositories
	userRepo := repository.NewUserRepository(database.GetDB())
	taskRepo := repository.NewTaskRepository(database.GetDB())
	commentRepo := repository.NewCommentRepository(database.GetDB())

	// Services
	authService := services.NewAuthService(userRepo, tokens)
	taskService := services.NewTaskService(taskRepo, userRepo)
	commentService := services.NewCommentService(commentRepo, taskRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	commentHandler := handlers.NewCommentHandler(commentService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Auth routes
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/me", middleware.RequireAuth(tokens), authHandler.GetCurrentUser)
	}

	// User routes (protected)
	users := r.Group("/users")
	users.Use(middleware.RequireAuth(tokens))
	{
		users.GET("", userHandler.ListUsers)
		users.GET("/me", userHandler.GetMe)
		users.PUT("/me", userHandler.UpdateMe)
		users.DELETE("/me", userHandler.DeleteMe)
	}

	// Task routes (protected)
	tasks := r.Group("/tasks")
	tasks.Use(middleware.RequireAuth(tokens))
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.PUT("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
		tasks.POST("/:id/assign", taskHandler.AssignTask)
		tasks.GET("/:id/assignments", taskHandler.ListAssignments)
		tasks.POST("/:id/complete", taskHandler.CompleteTask)
	}

	// Comment routes (protected)
	comments := r.Group("/comments")
	comments.Use(middleware.RequireAuth(tokens))
	{
		comments.GET("/task/:id", commentHandler.ListComments)
		comments.POST("/task/:id", commentHandler.AddComment)
		comments.PUT("/:id", commentHandler.UpdateComment)
		comments.DELETE("/:id", commentHandler.DeleteComment)
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
