package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleMembre      Role = "MEMBRE"
	RoleObservateur Role = "OBSERVATEUR"
)

type MemberStatus string

const (
	MemberPending  MemberStatus = "PENDING"
	MemberAccepted MemberStatus = "ACCEPTED"
)

// ProjectMember links a user to a project with a role and an invitation status.
// At most one row per (user, project) pair.
type ProjectMember struct {
	ID        uuid.UUID    `json:"id" db:"id"`
	UserID    uuid.UUID    `json:"userId" db:"user_id"`
	ProjectID uuid.UUID    `json:"projectId" db:"project_id"`
	Role      Role         `json:"role" db:"role"`
	Status    MemberStatus `json:"status" db:"status"`
	JoinedAt  time.Time    `json:"joinedAt" db:"joined_at"`
}

// NormalizeRole folds free-form role input to one of the three known roles.
// Unknown or empty input falls back to MEMBRE rather than failing.
func NormalizeRole(role string) Role {
	switch strings.ToUpper(role) {
	case "ADMIN", "ADMINISTRATEUR":
		return RoleAdmin
	case "MEMBRE", "MEMBER":
		return RoleMembre
	case "OBSERVATEUR", "OBSERVER":
		return RoleObservateur
	default:
		return RoleMembre
	}
}
