package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is created exactly once by the order engine and never updated.
// Total is the sum of line subtotals at creation time; later catalog
// price edits must not change it.
type Order struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerName    string          `gorm:"column:customer_name;not null"`
	Total           decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null"`
	PaymentMethodID uuid.UUID       `gorm:"column:payment_method_id;type:uuid;not null"`
	Lines           []OrderLine     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}
