package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Mateodiet/Project-Tool-Management/internal/logger"
	"github.com/Mateodiet/Project-Tool-Management/internal/models"
	"github.com/Mateodiet/Project-Tool-Management/internal/repository"
)

const taskColumns = `task_id, task_name, task_description, task_status, task_priority,
			due_date, project_id, assigned_to, created_by, created_at, updated_at`

func scanTask(row pgx.Row) (*models.Task, error) {
	task := &models.Task{}
	err := row.Scan(
		&task.TaskID,
		&task.TaskName,
		&task.TaskDescription,
		&task.TaskStatus,
		&task.TaskPriority,
		&task.DueDate,
		&task.ProjectID,
		&task.AssignedTo,
		&task.CreatedBy,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *TaskStorage) Create(ctx context.Context, task *models.Task) error {
	start := time.Now()
	defer warnSlow(start, "tasks.create")

	query := `INSERT INTO tasks (` + taskColumns + `)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.s.pool.Exec(ctx, query,
		task.TaskID,
		task.TaskName,
		task.TaskDescription,
		task.TaskStatus,
		task.TaskPriority,
		task.DueDate,
		task.ProjectID,
		task.AssignedTo,
		task.CreatedBy,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		logger.Error("Repository: inserting task", err)
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *TaskStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	start := time.Now()
	defer warnSlow(start, "tasks.get_by_id")

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE task_id = $1`

	task, err := scanTask(r.s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		logger.Error("Repository: fetching task", err)
		return nil, fmt.Errorf("fetching task: %w", err)
	}
	return task, nil
}

func (r *TaskStorage) GetAll(ctx context.Context) ([]*models.Task, error) {
	start := time.Now()
	defer warnSlow(start, "tasks.get_all")

	rows, err := r.s.pool.Query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at`)
	if err != nil {
		logger.Error("Repository: fetching tasks", err)
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

func (r *TaskStorage) GetByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error) {
	start := time.Now()
	defer warnSlow(start, "tasks.get_by_project")

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = $1 ORDER BY created_at`

	rows, err := r.s.pool.Query(ctx, query, projectID)
	if err != nil {
		logger.Error("Repository: fetching project tasks", err)
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

func (r *TaskStorage) GetByAssignee(ctx context.Context, userID uuid.UUID) ([]*models.Task, error) {
	start := time.Now()
	defer warnSlow(start, "tasks.get_by_assignee")

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE assigned_to = $1 ORDER BY created_at`

	rows, err := r.s.pool.Query(ctx, query, userID)
	if err != nil {
		logger.Error("Repository: fetching assigned tasks", err)
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

func (r *TaskStorage) GetByStatus(ctx context.Context, status string) ([]*models.Task, error) {
	start := time.Now()
	defer warnSlow(start, "tasks.get_by_status")

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE task_status = $1 ORDER BY created_at`

	rows, err := r.s.pool.Query(ctx, query, status)
	if err != nil {
		logger.Error("Repository: fetching tasks by status", err)
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

func (r *TaskStorage) Update(ctx context.Context, task *models.Task) error {
	start := time.Now()
	defer warnSlow(start, "tasks.update")

	query := `UPDATE tasks
				SET task_name = $1,
					task_description = $2,
					task_status = $3,
					task_priority = $4,
					due_date = $5,
					assigned_to = $6,
					updated_at = $7
				WHERE task_id = $8`

	tag, err := r.s.pool.Exec(ctx, query,
		task.TaskName,
		task.TaskDescription,
		task.TaskStatus,
		task.TaskPriority,
		task.DueDate,
		task.AssignedTo,
		task.UpdatedAt,
		task.TaskID,
	)
	if err != nil {
		logger.Error("Repository: updating task", err)
		return fmt.Errorf("updating task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TaskStorage) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	defer warnSlow(start, "tasks.delete")

	tag, err := r.s.pool.Exec(ctx, `DELETE FROM tasks WHERE task_id = $1`, id)
	if err != nil {
		logger.Error("Repository: deleting task", err)
		return fmt.Errorf("deleting task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func collectTasks(rows pgx.Rows) ([]*models.Task, error) {
	tasks := []*models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: iterating tasks", err)
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return tasks, nil
}
