package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/hinagiku/taskboard-api/internal/models"
	"github.com/hinagiku/taskboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrNotTaskCreator       = errors.New("only the task creator can perform this action")
	ErrTaskPermissionDenied = errors.New("user does not have permission for this task")
	ErrTaskAlreadyCompleted = errors.New("task is already completed")
	ErrAlreadyAssigned      = errors.New("user already assigned to this task")
	ErrAssigneeNotFound     = errors.New("assigned user not found")
	ErrTitleEmpty           = errors.New("title cannot be empty")
)

// TaskService handles task lifecycle and assignment business logic.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	CreatorID   uint64
}

// CreateTask creates a new task. Status always starts at pending regardless
// of input; priority defaults to medium.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      models.TaskStatusPending,
		Priority:    input.Priority,
		CreatorID:   input.CreatorID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListTasksInput represents filters for listing tasks.
type ListTasksInput struct {
	UserID   uint64
	Status   *models.TaskStatus
	Assigned *bool
	Page     int
	PageSize int
}

// ListTasks returns tasks matching the filters. Without the assigned filter
// the listing is workspace-global: every authenticated user sees every task.
// assigned=true restricts to tasks the user holds an assignment on,
// assigned=false to tasks the user created.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, error) {
	filter := repository.TaskFilter{
		Status:   input.Status,
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	if input.Assigned != nil {
		if *input.Assigned {
			filter.AssignedUserID = &input.UserID
		} else {
			filter.CreatorID = &input.UserID
		}
	}

	tasks, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// GetTask returns a task by ID.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// UpdateTaskInput represents a partial task update. Nil fields are left
// untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
}

// UpdateTask applies the provided fields to a task. Only the creator may
// update.
func (s *TaskService) UpdateTask(taskID, actorID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.CreatorID != actorID {
		return nil, ErrNotTaskCreator
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask deletes a task if the actor is the creator. Assignments and
// comments go with it.
func (s *TaskService) DeleteTask(taskID, actorID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if task.CreatorID != actorID {
		return ErrNotTaskCreator
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// CompleteTask transitions a task to completed and stamps the completion
// time. The creator or any assigned user may complete; completing an already
// completed task fails and leaves the original completion time intact.
func (s *TaskService) CompleteTask(taskID, actorID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.ensureCreatorOrAssignee(task, actorID); err != nil {
		return nil, err
	}

	if task.Status == models.TaskStatusCompleted {
		return nil, ErrTaskAlreadyCompleted
	}

	now := time.Now()
	task.Status = models.TaskStatusCompleted
	task.CompletedAt = &now

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	return task, nil
}

// AssignTaskInput represents input for assigning a user to a task.
type AssignTaskInput struct {
	TaskID         uint64
	ActorID        uint64
	AssignedUserID uint64
}

// AssignTask assigns a user to a task. Only the creator may assign, and a
// (task, user) pair can hold at most one assignment. The unique index on the
// assignment table backs this check against concurrent assigns.
func (s *TaskService) AssignTask(input AssignTaskInput) (*models.TaskAssignment, error) {
	task, err := s.taskRepo.FindByID(input.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.CreatorID != input.ActorID {
		return nil, ErrNotTaskCreator
	}

	if _, err := s.userRepo.FindByID(input.AssignedUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssigneeNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.taskRepo.FindAssignment(input.TaskID, input.AssignedUserID); err == nil {
		return nil, ErrAlreadyAssigned
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check assignment: %w", err)
	}

	assignment := &models.TaskAssignment{
		TaskID:         input.TaskID,
		AssignedUserID: input.AssignedUserID,
		AssignedByID:   input.ActorID,
	}

	if err := s.taskRepo.CreateAssignment(assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	return assignment, nil
}

// ListAssignments lists a task's assignments. Visible to the creator and to
// users already assigned to the task.
func (s *TaskService) ListAssignments(taskID, actorID uint64) ([]models.TaskAssignment, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.ensureCreatorOrAssignee(task, actorID); err != nil {
		return nil, err
	}

	assignments, err := s.taskRepo.ListAssignments(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	return assignments, nil
}

func (s *TaskService) ensureCreatorOrAssignee(task *models.Task, actorID uint64) error {
	if task.CreatorID == actorID {
		return nil
	}

	if _, err := s.taskRepo.FindAssignment(task.ID, actorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskPermissionDenied
		}
		return fmt.Errorf("failed to check assignment: %w", err)
	}

	return nil
}
