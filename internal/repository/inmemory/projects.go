package inmemory

import (
	"context"

	"github.com/google/uuid"

	"github.com/Mateodiet/Project-Tool-Management/internal/models"
	"github.com/Mateodiet/Project-Tool-Management/internal/repository"
)

// CreateWithAdmin stores the project and the creator's membership under one
// lock: either both are visible or neither.
func (r *ProjectStorage) CreateWithAdmin(ctx context.Context, project *models.Project, admin *models.ProjectMember) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	r.s.projects[project.ProjectID] = project
	r.s.projectIDs = append(r.s.projectIDs, project.ProjectID)
	r.s.members[admin.ID] = admin
	r.s.memberIDs = append(r.s.memberIDs, admin.ID)
	return nil
}

func (r *ProjectStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	project, ok := r.s.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return project, nil
}

func (r *ProjectStorage) GetByName(ctx context.Context, name string) (*models.Project, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	for _, id := range r.s.projectIDs {
		if r.s.projects[id].ProjectName == name {
			return r.s.projects[id], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *ProjectStorage) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Project, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	projects := []*models.Project{}
	for _, id := range ids {
		if p, ok := r.s.projects[id]; ok {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

func (r *ProjectStorage) GetAll(ctx context.Context) ([]*models.Project, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	projects := make([]*models.Project, 0, len(r.s.projectIDs))
	for _, id := range r.s.projectIDs {
		projects = append(projects, r.s.projects[id])
	}
	return projects, nil
}

func (r *ProjectStorage) Update(ctx context.Context, project *models.Project) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.projects[project.ProjectID]; !ok {
		return repository.ErrNotFound
	}
	r.s.projects[project.ProjectID] = project
	return nil
}

// DeleteCascade drops tasks, then memberships, then the project, all under
// one lock. History rows of the dropped tasks are left in place.
func (r *ProjectStorage) DeleteCascade(ctx context.Context, projectID uuid.UUID) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.projects[projectID]; !ok {
		return repository.ErrNotFound
	}

	for _, id := range append([]uuid.UUID{}, r.s.taskIDs...) {
		if r.s.tasks[id].ProjectID == projectID {
			delete(r.s.tasks, id)
			r.s.taskIDs = removeID(r.s.taskIDs, id)
		}
	}

	for _, id := range append([]uuid.UUID{}, r.s.memberIDs...) {
		if r.s.members[id].ProjectID == projectID {
			delete(r.s.members, id)
			r.s.memberIDs = removeID(r.s.memberIDs, id)
		}
	}

	delete(r.s.projects, projectID)
	r.s.projectIDs = removeID(r.s.projectIDs, projectID)
	return nil
}

func (r *ProjectStorage) ExistsByName(ctx context.Context, name string) (bool, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	for _, id := range r.s.projectIDs {
		if r.s.projects[id].ProjectName == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *ProjectStorage) Count(ctx context.Context) (int, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	return len(r.s.projectIDs), nil
}
