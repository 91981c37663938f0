package models

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant holds the tenant profile the public menu and checkout read from.
type Restaurant struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	WhatsApp    string    `gorm:"column:whatsapp;not null"`
	Description *string   `gorm:"column:description"`
	LogoURL     *string   `gorm:"column:logo_url"`
	Address     *string   `gorm:"column:address"`
	IsOpen      bool      `gorm:"column:is_open;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
