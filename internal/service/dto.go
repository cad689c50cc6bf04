package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/Mateodiet/Project-Tool-Management/internal/models"
)

// Request payloads decoded by the HTTP layer.

type RegisterRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	ContactNumber string `json:"contactNumber"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest carries only the fields to change; nil means keep.
type UpdateUserRequest struct {
	Name          *string `json:"name"`
	ContactNumber *string `json:"contactNumber"`
	Password      *string `json:"password"`
}

type ProjectRequest struct {
	ProjectName        *string    `json:"projectName"`
	ProjectDescription *string    `json:"projectDescription"`
	ProjectStartDate   *time.Time `json:"projectStartDate"`
	ProjectStatus      *string    `json:"projectStatus"`
}

type InviteRequest struct {
	Email       string `json:"email"`
	ProjectName string `json:"projectName"`
	Role        string `json:"role"`
	InvitedBy   string `json:"invitedBy"`
}

// TaskRequest doubles as create and update payload, as the original API does.
type TaskRequest struct {
	TaskName        *string    `json:"taskName"`
	TaskDescription *string    `json:"taskDescription"`
	TaskStatus      *string    `json:"taskStatus"`
	TaskPriority    *string    `json:"taskPriority"`
	DueDate         *time.Time `json:"dueDate"`
	ProjectID       uuid.UUID  `json:"projectId"`
	AssignedTo      *uuid.UUID `json:"assignedTo"`
	CreatedBy       uuid.UUID  `json:"createdBy"`
}

// Transfer objects returned to the HTTP layer. Passwords never leave the
// service.

type UserDTO struct {
	UserID        uuid.UUID `json:"userId"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	ContactNumber string    `json:"contactNumber"`
	IsActive      bool      `json:"isActive"`
}

func userToDTO(u *models.User) *UserDTO {
	return &UserDTO{
		UserID:        u.UserID,
		Name:          u.Name,
		Email:         u.Email,
		ContactNumber: u.ContactNumber,
		IsActive:      u.IsActive,
	}
}

type ProjectDTO struct {
	ProjectID          uuid.UUID  `json:"projectId"`
	ProjectName        string     `json:"projectName"`
	ProjectDescription string     `json:"projectDescription"`
	ProjectStartDate   *time.Time `json:"projectStartDate,omitempty"`
	ProjectStatus      string     `json:"projectStatus"`
	StatusUpdatedAt    *time.Time `json:"statusUpdatedAt,omitempty"`
	CreatedBy          uuid.UUID  `json:"createdBy"`
	CreatorEmail       *string    `json:"creatorEmail,omitempty"`
}

func projectToDTO(p *models.Project, creator *models.User) *ProjectDTO {
	dto := &ProjectDTO{
		ProjectID:          p.ProjectID,
		ProjectName:        p.ProjectName,
		ProjectDescription: p.ProjectDescription,
		ProjectStartDate:   p.ProjectStartDate,
		ProjectStatus:      p.ProjectStatus,
		StatusUpdatedAt:    p.StatusUpdatedAt,
		CreatedBy:          p.CreatedBy,
	}
	if creator != nil {
		dto.CreatorEmail = &creator.Email
	}
	return dto
}

// ProjectMemberDTO joins a membership row with the user's identity. Email and
// name stay nil when the user row cannot be resolved; the membership is still
// listed.
type ProjectMemberDTO struct {
	UserID   uuid.UUID           `json:"userId"`
	Email    *string             `json:"email"`
	Name     *string             `json:"name"`
	Role     models.Role         `json:"role"`
	Status   models.MemberStatus `json:"status"`
	JoinedAt time.Time           `json:"joinedAt"`
}

type TaskDTO struct {
	TaskID          uuid.UUID  `json:"taskId"`
	TaskName        string     `json:"taskName"`
	TaskDescription string     `json:"taskDescription"`
	TaskStatus      string     `json:"taskStatus"`
	TaskPriority    string     `json:"taskPriority"`
	DueDate         *time.Time `json:"dueDate,omitempty"`
	ProjectID       uuid.UUID  `json:"projectId"`
	ProjectName     *string    `json:"projectName"`
	AssignedTo      *uuid.UUID `json:"assignedTo,omitempty"`
	AssignedToName  *string    `json:"assignedToName"`
	CreatedBy       uuid.UUID  `json:"createdBy"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type DashboardStats struct {
	TotalProjects   int                  `json:"totalProjects"`
	TodoTasks       int                  `json:"todoTasks"`
	InProgressTasks int                  `json:"inProgressTasks"`
	CompletedTasks  int                  `json:"completedTasks"`
	TotalTasks      int                  `json:"totalTasks"`
	TasksByStatus   map[string][]TaskDTO `json:"tasksByStatus"`
}
