package dto

import (
	"time"

	"github.com/hinagiku/taskboard-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	CreatorID   uint64              `json:"creator_id"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	CompletedAt *time.Time          `json:"completed_at"`
}

// TaskAssignmentDTO represents a task assignment in API responses
type TaskAssignmentDTO struct {
	ID             uint64    `json:"id"`
	TaskID         uint64    `json:"task_id"`
	AssignedUserID uint64    `json:"assigned_user_id"`
	AssignedByID   uint64    `json:"assigned_by_id"`
	AssignedAt     time.Time `json:"assigned_at"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		CreatorID:   task.CreatorID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		CompletedAt: task.CompletedAt,
	}
}

// ToTaskDTOs converts a slice of Task models to DTOs
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ToTaskAssignmentDTO converts a TaskAssignment model to DTO
func ToTaskAssignmentDTO(assignment models.TaskAssignment) TaskAssignmentDTO {
	return TaskAssignmentDTO{
		ID:             assignment.ID,
		TaskID:         assignment.TaskID,
		AssignedUserID: assignment.AssignedUserID,
		AssignedByID:   assignment.AssignedByID,
		AssignedAt:     assignment.AssignedAt,
	}
}

// ToTaskAssignmentDTOs converts a slice of TaskAssignment models to DTOs
func ToTaskAssignmentDTOs(assignments []models.TaskAssignment) []TaskAssignmentDTO {
	dtos := make([]TaskAssignmentDTO, len(assignments))
	for i, assignment := range assignments {
		dtos[i] = ToTaskAssignmentDTO(assignment)
	}
	return dtos
}
