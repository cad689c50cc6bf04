package models

import (
	"time"

	"github.com/google/uuid"
)

// Task statuses are stored as free-form strings; these are the values the
// dashboard groups by.
const (
	TaskStatusTodo       = "TODO"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusCompleted  = "COMPLETED"
)

const TaskPriorityMedium = "MEDIUM"

type Task struct {
	TaskID          uuid.UUID  `json:"taskId" db:"task_id"`
	TaskName        string     `json:"taskName" db:"task_name"`
	TaskDescription string     `json:"taskDescription" db:"task_description"`
	TaskStatus      string     `json:"taskStatus" db:"task_status"`
	TaskPriority    string     `json:"taskPriority" db:"task_priority"`
	DueDate         *time.Time `json:"dueDate,omitempty" db:"due_date"`
	ProjectID       uuid.UUID  `json:"projectId" db:"project_id"`
	AssignedTo      *uuid.UUID `json:"assignedTo,omitempty" db:"assigned_to"`
	CreatedBy       uuid.UUID  `json:"createdBy" db:"created_by"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
}
