package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Mateodiet/Project-Tool-Management/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type ProjectRepository interface {
	// CreateWithAdmin writes the project and the creator's ADMIN membership as
	// one transaction: a project must never exist without its admin member.
	CreateWithAdmin(ctx context.Context, project *models.Project, admin *models.ProjectMember) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	GetByName(ctx context.Context, name string) (*models.Project, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Project, error)
	GetAll(ctx context.Context) ([]*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	// DeleteCascade removes the project's tasks, then its memberships, then the
	// project row, all inside one transaction. Task history is left in place.
	DeleteCascade(ctx context.Context, projectID uuid.UUID) error
	ExistsByName(ctx context.Context, name string) (bool, error)
	Count(ctx context.Context) (int, error)
}

type MemberRepository interface {
	Create(ctx context.Context, member *models.ProjectMember) error
	GetByUserAndProject(ctx context.Context, userID, projectID uuid.UUID) (*models.ProjectMember, error)
	GetByProject(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectMember, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*models.ProjectMember, error)
	Update(ctx context.Context, member *models.ProjectMember) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	GetAll(ctx context.Context) ([]*models.Task, error)
	GetByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error)
	GetByAssignee(ctx context.Context, userID uuid.UUID) ([]*models.Task, error)
	GetByStatus(ctx context.Context, status string) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type HistoryRepository interface {
	Create(ctx context.Context, entry *models.TaskHistory) error
	// GetByTask returns entries newest first.
	GetByTask(ctx context.Context, taskID uuid.UUID) ([]*models.TaskHistory, error)
}

// Notifier is fire-and-forget: implementations log their own failures and
// never surface them to the caller.
type Notifier interface {
	SendInvitation(ctx context.Context, toEmail, projectName, invitedBy, inviteLink string)
	SendTaskAssignment(ctx context.Context, toEmail, taskName, projectName string)
}
