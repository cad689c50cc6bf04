package inmemory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Mateodiet/Project-Tool-Management/internal/logger"
	"github.com/Mateodiet/Project-Tool-Management/internal/models"
)

// Storage keeps every entity behind a single RWMutex so that multi-step
// operations (project+admin creation, cascade delete) are atomic, matching
// the transaction boundary of the postgres backend.
type Storage struct {
	mtx sync.RWMutex

	users    map[uuid.UUID]*models.User
	projects map[uuid.UUID]*models.Project
	members  map[uuid.UUID]*models.ProjectMember
	tasks    map[uuid.UUID]*models.Task
	history  map[uuid.UUID]*models.TaskHistory

	// insertion order, so listings stay stable
	userIDs    []uuid.UUID
	projectIDs []uuid.UUID
	memberIDs  []uuid.UUID
	taskIDs    []uuid.UUID
	historyIDs []uuid.UUID
}

func NewStorage() *Storage {
	return &Storage{
		users:    make(map[uuid.UUID]*models.User),
		projects: make(map[uuid.UUID]*models.Project),
		members:  make(map[uuid.UUID]*models.ProjectMember),
		tasks:    make(map[uuid.UUID]*models.Task),
		history:  make(map[uuid.UUID]*models.TaskHistory),
	}
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	return nil
}

// Per-entity gateway views over the shared state.

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

func (s *Storage) Close() {
	logger.Info("Repository: in-memory storage closed")
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
