package repository

import (
	"github.com/hinagiku/taskboard-api/internal/models"
	"github.com/hinagiku/taskboard-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List retrieves users with pagination
	List(params utils.PaginationParams) ([]models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// DeleteCascade removes a user together with the tasks they created,
	// the comments they authored, and every assignment referencing them,
	// within a single transaction.
	DeleteCascade(id uint64) error
}

// TaskRepository defines the interface for task and assignment data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks matching the filter
	List(filter TaskFilter) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete removes a task and cascades to its assignments and comments
	Delete(id uint64) error

	// CreateAssignment creates a task assignment
	CreateAssignment(assignment *models.TaskAssignment) error

	// FindAssignment finds the assignment for a (task, user) pair
	FindAssignment(taskID, userID uint64) (*models.TaskAssignment, error)

	// ListAssignments lists all assignments for a task
	ListAssignments(taskID uint64) ([]models.TaskAssignment, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Status         *models.TaskStatus
	CreatorID      *uint64
	AssignedUserID *uint64
	Page           int
	PageSize       int
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.Comment) error

	// FindByID finds a comment by ID
	FindByID(id uint64) (*models.Comment, error)

	// ListByTask lists all comments on a task
	ListByTask(taskID uint64) ([]models.Comment, error)

	// Update updates a comment
	Update(comment *models.Comment) error

	// Delete removes a comment
	Delete(id uint64) error
}
