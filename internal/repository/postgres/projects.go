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

const projectColumns = `project_id, project_name, project_description, project_start_date,
			project_status, project_status_updated_date, created_by`

func scanProject(row pgx.Row) (*models.Project, error) {
	project := &models.Project{}
	err := row.Scan(
		&project.ProjectID,
		&project.ProjectName,
		&project.ProjectDescription,
		&project.ProjectStartDate,
		&project.ProjectStatus,
		&project.StatusUpdatedAt,
		&project.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return project, nil
}

// CreateWithAdmin inserts the project and the creator's membership inside one
// transaction.
func (r *ProjectStorage) CreateWithAdmin(ctx context.Context, project *models.Project, admin *models.ProjectMember) error {
	start := time.Now()
	defer warnSlow(start, "projects.create_with_admin")

	tx, err := r.s.pool.Begin(ctx)
	if err != nil {
		logger.Error("Repository: starting transaction", err)
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO projects (`+projectColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		project.ProjectID,
		project.ProjectName,
		project.ProjectDescription,
		project.ProjectStartDate,
		project.ProjectStatus,
		project.StatusUpdatedAt,
		project.CreatedBy,
	)
	if err != nil {
		logger.Error("Repository: inserting project", err)
		return fmt.Errorf("inserting project: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO project_members (id, user_id, project_id, role, status, joined_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
		admin.ID,
		admin.UserID,
		admin.ProjectID,
		admin.Role,
		admin.Status,
		admin.JoinedAt,
	)
	if err != nil {
		logger.Error("Repository: inserting admin membership", err)
		return fmt.Errorf("inserting membership: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("Repository: committing project creation", err)
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

func (r *ProjectStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	start := time.Now()
	defer warnSlow(start, "projects.get_by_id")

	query := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = $1`

	project, err := scanProject(r.s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		logger.Error("Repository: fetching project", err)
		return nil, fmt.Errorf("fetching project: %w", err)
	}
	return project, nil
}

func (r *ProjectStorage) GetByName(ctx context.Context, name string) (*models.Project, error) {
	start := time.Now()
	defer warnSlow(start, "projects.get_by_name")

	query := `SELECT ` + projectColumns + ` FROM projects WHERE project_name = $1`

	project, err := scanProject(r.s.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		logger.Error("Repository: fetching project by name", err)
		return nil, fmt.Errorf("fetching project: %w", err)
	}
	return project, nil
}

func (r *ProjectStorage) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Project, error) {
	start := time.Now()
	defer warnSlow(start, "projects.get_by_ids")

	if len(ids) == 0 {
		return []*models.Project{}, nil
	}

	query := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = ANY($1)`

	rows, err := r.s.pool.Query(ctx, query, ids)
	if err != nil {
		logger.Error("Repository: fetching projects by ids", err)
		return nil, fmt.Errorf("fetching projects: %w", err)
	}
	defer rows.Close()

	return collectProjects(rows)
}

func (r *ProjectStorage) GetAll(ctx context.Context) ([]*models.Project, error) {
	start := time.Now()
	defer warnSlow(start, "projects.get_all")

	rows, err := r.s.pool.Query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY project_name`)
	if err != nil {
		logger.Error("Repository: fetching projects", err)
		return nil, fmt.Errorf("fetching projects: %w", err)
	}
	defer rows.Close()

	return collectProjects(rows)
}

func (r *ProjectStorage) Update(ctx context.Context, project *models.Project) error {
	start := time.Now()
	defer warnSlow(start, "projects.update")

	query := `UPDATE projects
				SET project_name = $1,
					project_description = $2,
					project_start_date = $3,
					project_status = $4,
					project_status_updated_date = $5
				WHERE project_id = $6`

	tag, err := r.s.pool.Exec(ctx, query,
		project.ProjectName,
		project.ProjectDescription,
		project.ProjectStartDate,
		project.ProjectStatus,
		project.StatusUpdatedAt,
		project.ProjectID,
	)
	if err != nil {
		logger.Error("Repository: updating project", err)
		return fmt.Errorf("updating project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteCascade removes the project's tasks, then its memberships, then the
// project row, all in one transaction. task_history rows stay behind.
func (r *ProjectStorage) DeleteCascade(ctx context.Context, projectID uuid.UUID) error {
	start := time.Now()
	defer warnSlow(start, "projects.delete_cascade")

	tx, err := r.s.pool.Begin(ctx)
	if err != nil {
		logger.Error("Repository: starting transaction", err)
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM tasks WHERE project_id = $1`, projectID); err != nil {
		logger.Error("Repository: deleting project tasks", err)
		return fmt.Errorf("deleting tasks: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM project_members WHERE project_id = $1`, projectID); err != nil {
		logger.Error("Repository: deleting project members", err)
		return fmt.Errorf("deleting members: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM projects WHERE project_id = $1`, projectID)
	if err != nil {
		logger.Error("Repository: deleting project", err)
		return fmt.Errorf("deleting project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("Repository: committing project deletion", err)
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

func (r *ProjectStorage) ExistsByName(ctx context.Context, name string) (bool, error) {
	start := time.Now()
	defer warnSlow(start, "projects.exists_by_name")

	var exists bool
	err := r.s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM projects WHERE project_name = $1)`, name).Scan(&exists)
	if err != nil {
		logger.Error("Repository: checking project name", err)
		return false, fmt.Errorf("checking project name: %w", err)
	}
	return exists, nil
}

func (r *ProjectStorage) Count(ctx context.Context) (int, error) {
	start := time.Now()
	defer warnSlow(start, "projects.count")

	var count int
	if err := r.s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count); err != nil {
		logger.Error("Repository: counting projects", err)
		return 0, fmt.Errorf("counting projects: %w", err)
	}
	return count, nil
}

func collectProjects(rows pgx.Rows) ([]*models.Project, error) {
	projects := []*models.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: iterating projects", err)
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return projects, nil
}
