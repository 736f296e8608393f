package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a staff actor. Customers never get accounts; orders carry a
// free-text customer name instead.
type User struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string    `gorm:"column:username;not null;uniqueIndex"`
	Email        string    `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	RoleID       uuid.UUID `gorm:"column:role_id;type:uuid;not null"`
	Role         *Role     `gorm:"foreignKey:RoleID"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
