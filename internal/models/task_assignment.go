package models

import "time"

// TaskAssignment links a task to a user responsible for it. The composite
// unique index is the source of truth for duplicate-assignment prevention;
// the service-level check only exists to produce a friendlier error.
type TaskAssignment struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	TaskID         uint64    `gorm:"not null;uniqueIndex:idx_task_assignee" json:"task_id"`
	AssignedUserID uint64    `gorm:"not null;uniqueIndex:idx_task_assignee" json:"assigned_user_id"`
	AssignedByID   uint64    `gorm:"not null" json:"assigned_by_id"`
	AssignedAt     time.Time `gorm:"autoCreateTime" json:"assigned_at"`

	// Relations
	Task         Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	AssignedUser User `gorm:"foreignKey:AssignedUserID" json:"assigned_user,omitempty"`
	AssignedBy   User `gorm:"foreignKey:AssignedByID" json:"assigned_by,omitempty"`
}
