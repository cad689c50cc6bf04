package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Mateodiet/Project-Tool-Management/internal/logger"
	"github.com/Mateodiet/Project-Tool-Management/internal/migrations"
)

type Storage struct {
	pool       *pgxpool.Pool
	connString string
}

func New(ctx context.Context, connString string, maxConns, minConns int, idleTimeout time.Duration) (*Storage, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		logger.Error("Repository: parsing connection config", err)
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if maxConns > 0 {
		config.MaxConns = int32(maxConns)
	}
	if minConns > 0 {
		config.MinConns = int32(minConns)
	}
	if idleTimeout > 0 {
		config.MaxConnIdleTime = idleTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		logger.Error("Repository: creating connection pool", err)
		return nil, fmt.Errorf("creating pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Error("Repository: ping failed", err)
		return nil, fmt.Errorf("ping: %w", err)
	}

	logger.Info("Repository: connected to PostgreSQL")
	return &Storage{pool: pool, connString: connString}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: PostgreSQL connections closed")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		logger.Error("Repository: ping failed", err)
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Migrate applies the embedded schema migrations.
func (s *Storage) Migrate() error {
	m, err := s.migrator()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("Repository: applying migrations", err)
		return fmt.Errorf("applying migrations: %w", err)
	}

	logger.Info("Repository: migrations applied")
	return nil
}

// Down rolls every migration back. Used by integration tests.
func (s *Storage) Down() error {
	m, err := s.migrator()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("Repository: rolling back migrations", err)
		return fmt.Errorf("rolling back migrations: %w", err)
	}

	logger.Info("Repository: migrations rolled back")
	return nil
}

func (s *Storage) migrator() (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("opening migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, s.connString)
	if err != nil {
		return nil, fmt.Errorf("creating migrator: %w", err)
	}
	return m, nil
}

func warnSlow(start time.Time, op string) {
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		logger.Warn("Repository: slow query",
			zap.String("op", op),
			zap.Duration("ms", elapsed))
	}
}

// Per-entity gateway views over the shared pool.

type UserStorage struct{ s *Storage }

func (s *Storage) Users() *UserStorage { return &UserStorage{s} }

type ProjectStorage struct{ s *Storage }

func (s *Storage) Projects() *ProjectStorage { return &ProjectStorage{s} }

type MemberStorage struct{ s *Storage }

func (s *Storage) Members() *MemberStorage { return &MemberStorage{s} }

type TaskStorage struct{ s *Storage }

func (s *Storage) Tasks() *TaskStorage { return &TaskStorage{s} }

type HistoryStorage struct{ s *Storage }

func (s *Storage) History() *HistoryStorage { return &HistoryStorage{s} }
