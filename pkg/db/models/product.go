package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product is a rental catalog listing. Products are unlimited rental
// items: there is no stock count to decrement. The order engine reads
// UnitPrice and IsActive and never writes this table.
type Product struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string          `gorm:"column:name;not null;uniqueIndex"`
	UnitPrice     decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	ImageURL      string          `gorm:"column:image_url;not null"`
	Description   *string         `gorm:"column:description"`
	IsActive      bool            `gorm:"column:is_active;not null;default:true"`
	SubcategoryID uuid.UUID       `gorm:"column:subcategory_id;type:uuid;not null;index"`
	Tags          pq.StringArray  `gorm:"column:tags;type:text[]"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
