package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Mateodiet/Project-Tool-Management/internal/logger"
	"github.com/Mateodiet/Project-Tool-Management/internal/models"
)

func (r *HistoryStorage) Create(ctx context.Context, entry *models.TaskHistory) error {
	start := time.Now()
	defer warnSlow(start, "history.create")

	query := `INSERT INTO task_history
				(history_id, task_id, field_changed, old_value, new_value, changed_by, changed_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.s.pool.Exec(ctx, query,
		entry.HistoryID,
		entry.TaskID,
		entry.FieldChanged,
		entry.OldValue,
		entry.NewValue,
		entry.ChangedBy,
		entry.ChangedAt,
	)
	if err != nil {
		logger.Error("Repository: inserting history entry", err)
		return fmt.Errorf("inserting history: %w", err)
	}
	return nil
}

func (r *HistoryStorage) GetByTask(ctx context.Context, taskID uuid.UUID) ([]*models.TaskHistory, error) {
	start := time.Now()
	defer warnSlow(start, "history.get_by_task")

	query := `SELECT history_id, task_id, field_changed, old_value, new_value, changed_by, changed_at
				FROM task_history
				WHERE task_id = $1
				ORDER BY changed_at DESC`

	rows, err := r.s.pool.Query(ctx, query, taskID)
	if err != nil {
		logger.Error("Repository: fetching task history", err)
		return nil, fmt.Errorf("fetching history: %w", err)
	}
	defer rows.Close()

	entries := []*models.TaskHistory{}
	for rows.Next() {
		entry := &models.TaskHistory{}
		err := rows.Scan(
			&entry.HistoryID,
			&entry.TaskID,
			&entry.FieldChanged,
			&entry.OldValue,
			&entry.NewValue,
			&entry.ChangedBy,
			&entry.ChangedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: iterating history", err)
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return entries, nil
}
