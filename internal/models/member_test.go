package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mateodiet/Project-Tool-Management/internal/models"
)

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected models.Role
	}{
		{name: "admin", input: "ADMIN", expected: models.RoleAdmin},
		{name: "admin french", input: "ADMINISTRATEUR", expected: models.RoleAdmin},
		{name: "admin lowercase", input: "admin", expected: models.RoleAdmin},
		{name: "membre", input: "MEMBRE", expected: models.RoleMembre},
		{name: "member english", input: "MEMBER", expected: models.RoleMembre},
		{name: "member mixed case", input: "Member", expected: models.RoleMembre},
		{name: "observateur", input: "OBSERVATEUR", expected: models.RoleObservateur},
		{name: "observer english", input: "observer", expected: models.RoleObservateur},
		{name: "empty defaults to membre", input: "", expected: models.RoleMembre},
		{name: "unknown defaults to membre", input: "SUPERUSER", expected: models.RoleMembre},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, models.NormalizeRole(tt.input))
		})
	}
}
