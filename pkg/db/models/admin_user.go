package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser can manage the restaurant through the admin API.
type AdminUser struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email          string     `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash   string     `gorm:"column:password_hash;not null"`
	LastLoggedInAt *time.Time `gorm:"column:last_logged_in_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
