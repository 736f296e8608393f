package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is a label customers choose at checkout. There is no
// settlement behind it; the order engine only checks the row exists.
type PaymentMethod struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
