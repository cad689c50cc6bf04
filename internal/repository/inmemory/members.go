package inmemory

import (
	"context"

	"github.com/google/uuid"

	"github.com/Mateodiet/Project-Tool-Management/internal/models"
	"github.com/Mateodiet/Project-Tool-Management/internal/repository"
)

func (r *MemberStorage) Create(ctx context.Context, member *models.ProjectMember) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	r.s.members[member.ID] = member
	r.s.memberIDs = append(r.s.memberIDs, member.ID)
	return nil
}

func (r *MemberStorage) GetByUserAndProject(ctx context.Context, userID, projectID uuid.UUID) (*models.ProjectMember, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	for _, id := range r.s.memberIDs {
		m := r.s.members[id]
		if m.UserID == userID && m.ProjectID == projectID {
			return m, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *MemberStorage) GetByProject(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectMember, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	members := []*models.ProjectMember{}
	for _, id := range r.s.memberIDs {
		if r.s.members[id].ProjectID == projectID {
			members = append(members, r.s.members[id])
		}
	}
	return members, nil
}

func (r *MemberStorage) GetByUser(ctx context.Context, userID uuid.UUID) ([]*models.ProjectMember, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	members := []*models.ProjectMember{}
	for _, id := range r.s.memberIDs {
		if r.s.members[id].UserID == userID {
			members = append(members, r.s.members[id])
		}
	}
	return members, nil
}

func (r *MemberStorage) Update(ctx context.Context, member *models.ProjectMember) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.members[member.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.members[member.ID] = member
	return nil
}

func (r *MemberStorage) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.members[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.members, id)
	r.s.memberIDs = removeID(r.s.memberIDs, id)
	return nil
}
