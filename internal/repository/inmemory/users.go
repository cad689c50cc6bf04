package inmemory

import (
	"context"

	"github.com/google/uuid"

	"github.com/Mateodiet/Project-Tool-Management/internal/models"
	"github.com/Mateodiet/Project-Tool-Management/internal/repository"
)

func (r *UserStorage) Create(ctx context.Context, user *models.User) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	r.s.users[user.UserID] = user
	r.s.userIDs = append(r.s.userIDs, user.UserID)
	return nil
}

func (r *UserStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (r *UserStorage) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	for _, id := range r.s.userIDs {
		if r.s.users[id].Email == email {
			return r.s.users[id], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserStorage) GetAll(ctx context.Context) ([]*models.User, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	users := make([]*models.User, 0, len(r.s.userIDs))
	for _, id := range r.s.userIDs {
		users = append(users, r.s.users[id])
	}
	return users, nil
}

func (r *UserStorage) Update(ctx context.Context, user *models.User) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.users[user.UserID]; !ok {
		return repository.ErrNotFound
	}
	r.s.users[user.UserID] = user
	return nil
}

func (r *UserStorage) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.users, id)
	r.s.userIDs = removeID(r.s.userIDs, id)
	return nil
}

func (r *UserStorage) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	for _, id := range r.s.userIDs {
		if r.s.users[id].Email == email {
			return true, nil
		}
	}
	return false, nil
}
