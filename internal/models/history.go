package models

import (
	"time"

	"github.com/google/uuid"
)

// HistoryFieldCreated marks the synthetic history row written at task creation.
const HistoryFieldCreated = "CREATED"

// TaskHistory is one append-only audit record of a single field change.
// Old/new values are kept as strings regardless of the source field's type.
type TaskHistory struct {
	HistoryID    uuid.UUID `json:"historyId" db:"history_id"`
	TaskID       uuid.UUID `json:"taskId" db:"task_id"`
	FieldChanged string    `json:"fieldChanged" db:"field_changed"`
	OldValue     *string   `json:"oldValue,omitempty" db:"old_value"`
	NewValue     string    `json:"newValue" db:"new_value"`
	ChangedBy    uuid.UUID `json:"changedBy" db:"changed_by"`
	ChangedAt    time.Time `json:"changedAt" db:"changed_at"`
}
