package models

import (
	"time"

	"github.com/google/uuid"
)

// Store represents the retail tenant that places orders and owns overrides.
type Store struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID  `gorm:"column:organization_id;type:uuid;not null" json:"organization_id"`
	Name           string     `gorm:"column:name;not null" json:"name"`
	Location       *string    `gorm:"column:location" json:"location,omitempty"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
