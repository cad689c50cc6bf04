package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	UserID        uuid.UUID `json:"userId" db:"user_id"`
	Name          string    `json:"name" db:"name"`
	Email         string    `json:"email" db:"email"`
	Password      string    `json:"-" db:"password"`
	ContactNumber string    `json:"contactNumber" db:"contact_number"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	IsActive      bool      `json:"isActive" db:"is_active"`
}
