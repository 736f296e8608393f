package enums

import "fmt"

// EntityKind identifies the class of record an action targets.
type EntityKind string

const (
	EntityProduct       EntityKind = "product"
	EntityCategory      EntityKind = "category"
	EntitySubcategory   EntityKind = "subcategory"
	EntityUser          EntityKind = "user"
	EntityRole          EntityKind = "role"
	EntityOrder         EntityKind = "order"
	EntityPaymentMethod EntityKind = "payment-method"
	EntityAudit         EntityKind = "audit"
)

var validEntityKinds = []EntityKind{
	EntityProduct,
	EntityCategory,
	EntitySubcategory,
	EntityUser,
	EntityRole,
	EntityOrder,
	EntityPaymentMethod,
	EntityAudit,
}

// String implements fmt.Stringer.
func (e EntityKind) String() string {
	return string(e)
}

// IsValid reports whether the value is a known EntityKind.
func (e EntityKind) IsValid() bool {
	for _, candidate := range validEntityKinds {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEntityKind converts raw input into an EntityKind.
func ParseEntityKind(value string) (EntityKind, error) {
	for _, candidate := range validEntityKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid entity kind %q", value)
}
