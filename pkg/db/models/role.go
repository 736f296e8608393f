package models

import (
	"time"

	"github.com/google/uuid"
)

// Role names a staff entitlement level ("root", "analyst", "restocker").
// The permission matrix is keyed by Name; the row exists so users can
// reference it and admins can list the vocabulary.
type Role struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
