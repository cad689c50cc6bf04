package inmemory

import (
	"context"

	"github.com/google/uuid"

	"github.com/Mateodiet/Project-Tool-Management/internal/models"
	"github.com/Mateodiet/Project-Tool-Management/internal/repository"
)

func (r *TaskStorage) Create(ctx context.Context, task *models.Task) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	r.s.tasks[task.TaskID] = task
	r.s.taskIDs = append(r.s.taskIDs, task.TaskID)
	return nil
}

func (r *TaskStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	task, ok := r.s.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return task, nil
}

func (r *TaskStorage) GetAll(ctx context.Context) ([]*models.Task, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	tasks := make([]*models.Task, 0, len(r.s.taskIDs))
	for _, id := range r.s.taskIDs {
		tasks = append(tasks, r.s.tasks[id])
	}
	return tasks, nil
}

func (r *TaskStorage) GetByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	tasks := []*models.Task{}
	for _, id := range r.s.taskIDs {
		if r.s.tasks[id].ProjectID == projectID {
			tasks = append(tasks, r.s.tasks[id])
		}
	}
	return tasks, nil
}

func (r *TaskStorage) GetByAssignee(ctx context.Context, userID uuid.UUID) ([]*models.Task, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	tasks := []*models.Task{}
	for _, id := range r.s.taskIDs {
		t := r.s.tasks[id]
		if t.AssignedTo != nil && *t.AssignedTo == userID {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (r *TaskStorage) GetByStatus(ctx context.Context, status string) ([]*models.Task, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	tasks := []*models.Task{}
	for _, id := range r.s.taskIDs {
		if r.s.tasks[id].TaskStatus == status {
			tasks = append(tasks, r.s.tasks[id])
		}
	}
	return tasks, nil
}

func (r *TaskStorage) Update(ctx context.Context, task *models.Task) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.tasks[task.TaskID]; !ok {
		return repository.ErrNotFound
	}
	r.s.tasks[task.TaskID] = task
	return nil
}

func (r *TaskStorage) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.tasks, id)
	r.s.taskIDs = removeID(r.s.taskIDs, id)
	return nil
}
