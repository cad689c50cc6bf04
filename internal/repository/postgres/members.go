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

const memberColumns = `id, user_id, project_id, role, status, joined_at`

func scanMember(row pgx.Row) (*models.ProjectMember, error) {
	member := &models.ProjectMember{}
	err := row.Scan(
		&member.ID,
		&member.UserID,
		&member.ProjectID,
		&member.Role,
		&member.Status,
		&member.JoinedAt,
	)
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (r *MemberStorage) Create(ctx context.Context, member *models.ProjectMember) error {
	start := time.Now()
	defer warnSlow(start, "members.create")

	query := `INSERT INTO project_members (` + memberColumns + `)
				VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.s.pool.Exec(ctx, query,
		member.ID,
		member.UserID,
		member.ProjectID,
		member.Role,
		member.Status,
		member.JoinedAt,
	)
	if err != nil {
		logger.Error("Repository: inserting membership", err)
		return fmt.Errorf("inserting membership: %w", err)
	}
	return nil
}

func (r *MemberStorage) GetByUserAndProject(ctx context.Context, userID, projectID uuid.UUID) (*models.ProjectMember, error) {
	start := time.Now()
	defer warnSlow(start, "members.get_by_user_and_project")

	query := `SELECT ` + memberColumns + ` FROM project_members
				WHERE user_id = $1 AND project_id = $2`

	member, err := scanMember(r.s.pool.QueryRow(ctx, query, userID, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		logger.Error("Repository: fetching membership", err)
		return nil, fmt.Errorf("fetching membership: %w", err)
	}
	return member, nil
}

func (r *MemberStorage) GetByProject(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectMember, error) {
	start := time.Now()
	defer warnSlow(start, "members.get_by_project")

	query := `SELECT ` + memberColumns + ` FROM project_members
				WHERE project_id = $1 ORDER BY joined_at`

	rows, err := r.s.pool.Query(ctx, query, projectID)
	if err != nil {
		logger.Error("Repository: fetching project members", err)
		return nil, fmt.Errorf("fetching members: %w", err)
	}
	defer rows.Close()

	return collectMembers(rows)
}

func (r *MemberStorage) GetByUser(ctx context.Context, userID uuid.UUID) ([]*models.ProjectMember, error) {
	start := time.Now()
	defer warnSlow(start, "members.get_by_user")

	query := `SELECT ` + memberColumns + ` FROM project_members
				WHERE user_id = $1 ORDER BY joined_at`

	rows, err := r.s.pool.Query(ctx, query, userID)
	if err != nil {
		logger.Error("Repository: fetching user memberships", err)
		return nil, fmt.Errorf("fetching memberships: %w", err)
	}
	defer rows.Close()

	return collectMembers(rows)
}

func (r *MemberStorage) Update(ctx context.Context, member *models.ProjectMember) error {
	start := time.Now()
	defer warnSlow(start, "members.update")

	query := `UPDATE project_members
				SET role = $1,
					status = $2,
					joined_at = $3
				WHERE id = $4`

	tag, err := r.s.pool.Exec(ctx, query,
		member.Role,
		member.Status,
		member.JoinedAt,
		member.ID,
	)
	if err != nil {
		logger.Error("Repository: updating membership", err)
		return fmt.Errorf("updating membership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MemberStorage) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	defer warnSlow(start, "members.delete")

	tag, err := r.s.pool.Exec(ctx, `DELETE FROM project_members WHERE id = $1`, id)
	if err != nil {
		logger.Error("Repository: deleting membership", err)
		return fmt.Errorf("deleting membership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func collectMembers(rows pgx.Rows) ([]*models.ProjectMember, error) {
	members := []*models.ProjectMember{}
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning membership: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: iterating memberships", err)
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return members, nil
}
