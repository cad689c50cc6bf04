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

const userColumns = `user_id, name, email, password, contact_number, created_at, is_active`

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.UserID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.ContactNumber,
		&user.CreatedAt,
		&user.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserStorage) Create(ctx context.Context, user *models.User) error {
	start := time.Now()
	defer warnSlow(start, "users.create")

	query := `INSERT INTO users (` + userColumns + `)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.s.pool.Exec(ctx, query,
		user.UserID,
		user.Name,
		user.Email,
		user.Password,
		user.ContactNumber,
		user.CreatedAt,
		user.IsActive,
	)
	if err != nil {
		logger.Error("Repository: inserting user", err)
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *UserStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	start := time.Now()
	defer warnSlow(start, "users.get_by_id")

	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	user, err := scanUser(r.s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		logger.Error("Repository: fetching user", err)
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return user, nil
}

func (r *UserStorage) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	start := time.Now()
	defer warnSlow(start, "users.get_by_email")

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.s.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		logger.Error("Repository: fetching user by email", err)
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return user, nil
}

func (r *UserStorage) GetAll(ctx context.Context) ([]*models.User, error) {
	start := time.Now()
	defer warnSlow(start, "users.get_all")

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`

	rows, err := r.s.pool.Query(ctx, query)
	if err != nil {
		logger.Error("Repository: fetching users", err)
		return nil, fmt.Errorf("fetching users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: iterating users", err)
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return users, nil
}

func (r *UserStorage) Update(ctx context.Context, user *models.User) error {
	start := time.Now()
	defer warnSlow(start, "users.update")

	query := `UPDATE users
				SET name = $1,
					email = $2,
					password = $3,
					contact_number = $4,
					is_active = $5
				WHERE user_id = $6`

	tag, err := r.s.pool.Exec(ctx, query,
		user.Name,
		user.Email,
		user.Password,
		user.ContactNumber,
		user.IsActive,
		user.UserID,
	)
	if err != nil {
		logger.Error("Repository: updating user", err)
		return fmt.Errorf("updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserStorage) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	defer warnSlow(start, "users.delete")

	tag, err := r.s.pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		logger.Error("Repository: deleting user", err)
		return fmt.Errorf("deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserStorage) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	start := time.Now()
	defer warnSlow(start, "users.exists_by_email")

	var exists bool
	err := r.s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		logger.Error("Repository: checking email", err)
		return false, fmt.Errorf("checking email: %w", err)
	}
	return exists, nil
}
