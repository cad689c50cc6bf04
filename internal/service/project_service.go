package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mateodiet/Project-Tool-Management/internal/logger"
	"github.com/Mateodiet/Project-Tool-Management/internal/models"
	"github.com/Mateodiet/Project-Tool-Management/internal/repository"
)

type ProjectService struct {
	projects ProjectRepository
	members  MemberRepository
	users    UserRepository
	notifier Notifier
}

func NewProjectService(projects ProjectRepository, members MemberRepository, users UserRepository, notifier Notifier) *ProjectService {
	return &ProjectService{
		projects: projects,
		members:  members,
		users:    users,
		notifier: notifier,
	}
}

// CreateProject writes the project and the creator's ADMIN/ACCEPTED
// membership atomically. A project without its admin member must never be
// observable.
func (s *ProjectService) CreateProject(ctx context.Context, req ProjectRequest, creatorEmail string) (*ProjectDTO, error) {
	if req.ProjectName == nil || *req.ProjectName == "" {
		return nil, NewValidationError("projectName", "must not be empty")
	}

	exists, err := s.projects.ExistsByName(ctx, *req.ProjectName)
	if err != nil {
		return nil, fmt.Errorf("checking project name: %w", err)
	}
	if exists {
		logger.Warn("Service: project name taken", zap.String("project", *req.ProjectName))
		return nil, NewConflict("Project name already exists")
	}

	creator, err := s.users.GetByEmail(ctx, creatorEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("Creator user not found")
		}
		return nil, fmt.Errorf("fetching creator: %w", err)
	}

	status := models.ProjectStatusActive
	if req.ProjectStatus != nil {
		status = *req.ProjectStatus
	}

	project := &models.Project{
		ProjectID:        uuid.New(),
		ProjectName:      *req.ProjectName,
		ProjectStartDate: req.ProjectStartDate,
		ProjectStatus:    status,
		CreatedBy:        creator.UserID,
	}
	if req.ProjectDescription != nil {
		project.ProjectDescription = *req.ProjectDescription
	}

	admin := &models.ProjectMember{
		ID:        uuid.New(),
		UserID:    creator.UserID,
		ProjectID: project.ProjectID,
		Role:      models.RoleAdmin,
		Status:    models.MemberAccepted,
		JoinedAt:  time.Now(),
	}

	if err := s.projects.CreateWithAdmin(ctx, project, admin); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	logger.Info("Service: project created",
		zap.String("project", project.ProjectName),
		zap.String("creator", creatorEmail))
	return projectToDTO(project, creator), nil
}

func (s *ProjectService) GetAllProjects(ctx context.Context) ([]ProjectDTO, error) {
	projects, err := s.projects.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching projects: %w", err)
	}

	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = *projectToDTO(p, nil)
	}
	return dtos, nil
}

func (s *ProjectService) GetProjectByName(ctx context.Context, projectName string) (*ProjectDTO, error) {
	project, err := s.projects.GetByName(ctx, projectName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("Project not found")
		}
		return nil, fmt.Errorf("fetching project: %w", err)
	}
	return projectToDTO(project, nil), nil
}

func (s *ProjectService) GetProjectByID(ctx context.Context, projectID uuid.UUID) (*ProjectDTO, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("Project not found")
		}
		return nil, fmt.Errorf("fetching project: %w", err)
	}
	return projectToDTO(project, nil), nil
}

// GetUserProjects returns only projects where the user's membership is
// ACCEPTED. Pending invitations are a separate concern and excluded here.
func (s *ProjectService) GetUserProjects(ctx context.Context, email string) ([]ProjectDTO, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("User not found")
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	memberships, err := s.members.GetByUser(ctx, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetching memberships: %w", err)
	}

	projectIDs := []uuid.UUID{}
	for _, m := range memberships {
		if m.Status == models.MemberAccepted {
			projectIDs = append(projectIDs, m.ProjectID)
		}
	}

	projects, err := s.projects.GetByIDs(ctx, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching projects: %w", err)
	}

	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = *projectToDTO(p, nil)
	}
	return dtos, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, projectName string, req ProjectRequest) (*ProjectDTO, error) {
	project, err := s.projects.GetByName(ctx, projectName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("Project not found")
		}
		return nil, fmt.Errorf("fetching project: %w", err)
	}

	if req.ProjectName != nil && *req.ProjectName != "" {
		project.ProjectName = *req.ProjectName
	}
	if req.ProjectDescription != nil {
		project.ProjectDescription = *req.ProjectDescription
	}
	if req.ProjectStartDate != nil {
		project.ProjectStartDate = req.ProjectStartDate
	}
	if req.ProjectStatus != nil {
		project.ProjectStatus = *req.ProjectStatus
		now := time.Now()
		project.StatusUpdatedAt = &now
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}

	logger.Info("Service: project updated", zap.String("project", projectName))
	return projectToDTO(project, nil), nil
}

// DeleteProject cascades: tasks first, then memberships, then the project
// row. History rows of the deleted tasks stay behind.
func (s *ProjectService) DeleteProject(ctx context.Context, projectName string) error {
	project, err := s.projects.GetByName(ctx, projectName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewNotFound("Project not found")
		}
		return fmt.Errorf("fetching project: %w", err)
	}

	if err := s.projects.DeleteCascade(ctx, project.ProjectID); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	logger.Info("Service: project deleted", zap.String("project", projectName))
	return nil
}

// InviteMember creates a PENDING membership. Any existing row for the pair,
// whatever its status, is a conflict; re-inviting requires the old row to be
// removed first.
func (s *ProjectService) InviteMember(ctx context.Context, req InviteRequest) (map[string]any, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("User not found. They must register first.")
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	project, err := s.projects.GetByName(ctx, req.ProjectName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("Project not found")
		}
		return nil, fmt.Errorf("fetching project: %w", err)
	}

	if _, err := s.members.GetByUserAndProject(ctx, user.UserID, project.ProjectID); err == nil {
		logger.Warn("Service: duplicate invitation",
			zap.String("email", req.Email),
			zap.String("project", req.ProjectName))
		return nil, NewConflict("User is already a member or has a pending invitation")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking membership: %w", err)
	}

	role := models.NormalizeRole(req.Role)

	member := &models.ProjectMember{
		ID:        uuid.New(),
		UserID:    user.UserID,
		ProjectID: project.ProjectID,
		Role:      role,
		Status:    models.MemberPending,
		JoinedAt:  time.Now(),
	}

	if err := s.members.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("creating membership: %w", err)
	}

	inviteLink := "/api/project/accept-invite/" + req.Email + "/" + req.ProjectName
	s.notifier.SendInvitation(ctx, req.Email, req.ProjectName, req.InvitedBy, inviteLink)

	logger.Info("Service: invitation sent",
		zap.String("email", req.Email),
		zap.String("project", req.ProjectName),
		zap.String("role", string(role)))

	return map[string]any{
		"email":  req.Email,
		"role":   role,
		"status": models.MemberPending,
	}, nil
}

// AcceptInvitation flips a PENDING membership to ACCEPTED exactly once.
func (s *ProjectService) AcceptInvitation(ctx context.Context, email, projectName string) error {
	member, err := s.findMembership(ctx, email, projectName, "No invitation found")
	if err != nil {
		return err
	}

	if member.Status == models.MemberAccepted {
		return NewConflict("Invitation already accepted")
	}

	member.Status = models.MemberAccepted
	member.JoinedAt = time.Now()
	if err := s.members.Update(ctx, member); err != nil {
		return fmt.Errorf("updating membership: %w", err)
	}

	logger.Info("Service: invitation accepted",
		zap.String("email", email),
		zap.String("project", projectName))
	return nil
}

// GetProjectMembers lists every membership row regardless of status. Rows
// whose user cannot be resolved keep nil identity fields instead of being
// dropped.
func (s *ProjectService) GetProjectMembers(ctx context.Context, projectName string) ([]ProjectMemberDTO, error) {
	project, err := s.projects.GetByName(ctx, projectName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("Project not found")
		}
		return nil, fmt.Errorf("fetching project: %w", err)
	}

	members, err := s.members.GetByProject(ctx, project.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("fetching members: %w", err)
	}

	dtos := make([]ProjectMemberDTO, len(members))
	for i, m := range members {
		dto := ProjectMemberDTO{
			UserID:   m.UserID,
			Role:     m.Role,
			Status:   m.Status,
			JoinedAt: m.JoinedAt,
		}
		if user, err := s.users.GetByID(ctx, m.UserID); err == nil {
			dto.Email = &user.Email
			dto.Name = &user.Name
		}
		dtos[i] = dto
	}
	return dtos, nil
}

// GetMemberRole treats a PENDING membership as no membership at all: only
// ACCEPTED members have a role to report.
func (s *ProjectService) GetMemberRole(ctx context.Context, email, projectName string) (map[string]string, error) {
	member, err := s.findMembership(ctx, email, projectName, "User is not a member of this project")
	if err != nil {
		return nil, err
	}

	if member.Status != models.MemberAccepted {
		return nil, NewNotFound("User is not a member of this project")
	}

	return map[string]string{
		"role":        string(member.Role),
		"email":       email,
		"projectName": projectName,
	}, nil
}

// UpdateMemberRole normalizes and overwrites the role regardless of the
// membership status; a pending invitee's target role can be changed.
func (s *ProjectService) UpdateMemberRole(ctx context.Context, email, projectName, newRole string) error {
	member, err := s.findMembership(ctx, email, projectName, "User is not a member of this project")
	if err != nil {
		return err
	}

	member.Role = models.NormalizeRole(newRole)
	if err := s.members.Update(ctx, member); err != nil {
		return fmt.Errorf("updating membership: %w", err)
	}

	logger.Info("Service: member role updated",
		zap.String("email", email),
		zap.String("project", projectName),
		zap.String("role", string(member.Role)))
	return nil
}

// RemoveMember hard-deletes the membership row unconditionally, even if it is
// the project's last admin.
func (s *ProjectService) RemoveMember(ctx context.Context, email, projectName string) error {
	member, err := s.findMembership(ctx, email, projectName, "User is not a member of this project")
	if err != nil {
		return err
	}

	if err := s.members.Delete(ctx, member.ID); err != nil {
		return fmt.Errorf("deleting membership: %w", err)
	}

	logger.Info("Service: member removed",
		zap.String("email", email),
		zap.String("project", projectName))
	return nil
}

func (s *ProjectService) findMembership(ctx context.Context, email, projectName, missingMsg string) (*models.ProjectMember, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("User not found")
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	project, err := s.projects.GetByName(ctx, projectName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("Project not found")
		}
		return nil, fmt.Errorf("fetching project: %w", err)
	}

	member, err := s.members.GetByUserAndProject(ctx, user.UserID, project.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound(missingMsg)
		}
		return nil, fmt.Errorf("fetching membership: %w", err)
	}
	return member, nil
}
