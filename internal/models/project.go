package models

import (
	"time"

	"github.com/google/uuid"
)

const ProjectStatusActive = "ACTIVE"

type Project struct {
	ProjectID          uuid.UUID  `json:"projectId" db:"project_id"`
	ProjectName        string     `json:"projectName" db:"project_name"`
	ProjectDescription string     `json:"projectDescription" db:"project_description"`
	ProjectStartDate   *time.Time `json:"projectStartDate,omitempty" db:"project_start_date"`
	ProjectStatus      string     `json:"projectStatus" db:"project_status"`
	// set only when the status itself changes, not on every update
	StatusUpdatedAt *time.Time `json:"projectStatusUpdatedDate,omitempty" db:"project_status_updated_date"`
	CreatedBy       uuid.UUID  `json:"createdBy" db:"created_by"`
}
