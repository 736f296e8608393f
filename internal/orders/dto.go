package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubmitOrderLine is one requested product/quantity pair. Repeating a
// product across lines is allowed; each line is priced independently.
type SubmitOrderLine struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// SubmitOrderInput is the customer checkout request.
type SubmitOrderInput struct {
	CustomerName    string            `json:"customer_name" validate:"required"`
	PaymentMethodID uuid.UUID         `json:"payment_method_id" validate:"required"`
	Lines           []SubmitOrderLine `json:"lines" validate:"required,min=1,dive"`
}

// ReceiptLine mirrors one persisted order line with its price snapshot.
type ReceiptLine struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderReceipt is returned to the customer after a successful submit.
type OrderReceipt struct {
	ID              uuid.UUID       `json:"id"`
	CustomerName    string          `json:"customer_name"`
	PaymentMethodID uuid.UUID       `json:"payment_method_id"`
	Total           decimal.Decimal `json:"total"`
	Lines           []ReceiptLine   `json:"lines"`
	CreatedAt       time.Time       `json:"created_at"`
}
