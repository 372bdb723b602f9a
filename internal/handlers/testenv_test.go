package handlers

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hinagiku/taskboard-api/internal/auth"
	"github.com/hinagiku/taskboard-api/internal/database"
	"github.com/hinagiku/taskboard-api/internal/middleware"
	"github.com/hinagiku/taskboard-api/internal/models"
	"github.com/hinagiku/taskboard-api/internal/repository"
	"github.com/hinagiku/taskboard-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	tokens *auth.TokenService
}

// setupTestEnv builds an in-memory database and a router with the same
// routes the server registers.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskAssignment{},
		&models.Comment{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	tokens := auth.NewTokenService("test-secret", time.Hour)

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	authService := services.NewAuthService(userRepo, tokens)
	taskService := services.NewTaskService(taskRepo, userRepo)
	commentService := services.NewCommentService(commentRepo, taskRepo)

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(authService)
	taskHandler := NewTaskHandler(taskService)
	commentHandler := NewCommentHandler(commentService)

	r := gin.New()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/me", middleware.RequireAuth(tokens), authHandler.GetCurrentUser)
	}

	users := r.Group("/users")
	users.Use(middleware.RequireAuth(tokens))
	{
		users.GET("", userHandler.ListUsers)
		users.GET("/me", userHandler.GetMe)
		users.PUT("/me", userHandler.UpdateMe)
		users.DELETE("/me", userHandler.DeleteMe)
	}

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

	comments := r.Group("/comments")
	comments.Use(middleware.RequireAuth(tokens))
	{
		comments.GET("/task/:id", commentHandler.ListComments)
		comments.POST("/task/:id", commentHandler.AddComment)
		comments.PUT("/:id", commentHandler.UpdateComment)
		comments.DELETE("/:id", commentHandler.DeleteComment)
	}

	return &testEnv{
		db:     db,
		router: r,
		tokens: tokens,
	}
}

func (env *testEnv) createUser(t *testing.T, email, username string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: "not-a-real-hash",
		IsActive:     true,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env *testEnv) createAdmin(t *testing.T, email, username string) *models.User {
	t.Helper()

	user := env.createUser(t, email, username)
	require.NoError(t, env.db.Model(user).Update("is_admin", true).Error)
	user.IsAdmin = true
	return user
}

func (env *testEnv) createTask(t *testing.T, title string, creatorID uint64) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:     title,
		Status:    models.TaskStatusPending,
		Priority:  models.TaskPriorityMedium,
		CreatorID: creatorID,
	}
	require.NoError(t, env.db.Create(task).Error)
	return task
}

func (env *testEnv) assign(t *testing.T, taskID, userID, byID uint64) *models.TaskAssignment {
	t.Helper()

	assignment := &models.TaskAssignment{
		TaskID:         taskID,
		AssignedUserID: userID,
		AssignedByID:   byID,
	}
	require.NoError(t, env.db.Create(assignment).Error)
	return assignment
}

func (env *testEnv) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := env.tokens.Issue(user.Email)
	require.NoError(t, err)
	return token
}

// do performs a JSON request against the test router. An empty token leaves
// the Authorization header unset.
func (env *testEnv) do(method, url, token string, body []byte) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}
