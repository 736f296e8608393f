package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductInput carries the validated fields for a new listing.
type CreateProductInput struct {
	Name          string
	UnitPrice     decimal.Decimal
	ImageURL      string
	Description   *string
	IsActive      *bool
	SubcategoryID uuid.UUID
	Tags          []string
}

// UpdateProductInput applies partial updates; nil fields are untouched.
type UpdateProductInput struct {
	Name          *string
	UnitPrice     *decimal.Decimal
	ImageURL      *string
	Description   *string
	IsActive      *bool
	SubcategoryID *uuid.UUID
	Tags          *[]string
}
