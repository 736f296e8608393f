package rbac

import (
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/enums"
)

// Well-known role names. Roles live in the roles table, but the matrix
// is code-embedded: entitlements change with releases, not at runtime.
const (
	RoleRoot      = "root"
	RoleAnalyst   = "analyst"
	RoleRestocker = "restocker"
)

// Stable denial reasons callers can branch on. They identify the rule,
// never the target row, so a denied actor learns nothing about whether
// the entity exists.
const (
	ReasonOrderCreateReserved = "order creation is reserved for the customer checkout flow"
	ReasonRoleNotPermitted    = "role is not permitted to perform this operation"
	ReasonTopRoleRequired     = "operation requires the top role"
	ReasonUnknownRole         = "unknown role"
)

var readOnlyOps = []enums.Operation{
	enums.OperationList,
	enums.OperationRead,
	enums.OperationSearch,
}

// baseMatrix maps a role to the operations it may perform per entity
// kind, before override rules. Root is intentionally absent: it is
// granted everything after overrides run.
var baseMatrix = map[string]map[enums.EntityKind][]enums.Operation{
	RoleAnalyst: {
		enums.EntityProduct:       readOnlyOps,
		enums.EntityCategory:      readOnlyOps,
		enums.EntitySubcategory:   readOnlyOps,
		enums.EntityOrder:         readOnlyOps,
		enums.EntityPaymentMethod: readOnlyOps,
		enums.EntityAudit:         readOnlyOps,
	},
	RoleRestocker: {
		enums.EntityProduct: {
			enums.OperationList,
			enums.OperationRead,
			enums.OperationSearch,
			enums.OperationCreate,
			enums.OperationUpdate,
		},
		enums.EntityCategory:    readOnlyOps,
		enums.EntitySubcategory: readOnlyOps,
	},
}

// overrideRule is one special case checked before the base matrix.
// The first matching rule decides and short-circuits everything after
// it, including the root allow-all.
type overrideRule struct {
	name         string
	entity       enums.EntityKind
	operations   []enums.Operation
	allowedRoles []string
	denyReason   string
}

func (r overrideRule) matches(entity enums.EntityKind, op enums.Operation) bool {
	if r.entity != entity {
		return false
	}
	for _, candidate := range r.operations {
		if candidate == op {
			return true
		}
	}
	return false
}

func (r overrideRule) allows(role string) bool {
	for _, candidate := range r.allowedRoles {
		if candidate == role {
			return true
		}
	}
	return false
}

// overrideRules is evaluated in order. Precedence is the slice order;
// keep new special cases explicit here rather than branching inside
// Check.
var overrideRules = []overrideRule{
	{
		name:       "order-create-customer-only",
		entity:     enums.EntityOrder,
		operations: []enums.Operation{enums.OperationCreate},
		// no staff role may create orders, root included
		allowedRoles: nil,
		denyReason:   ReasonOrderCreateReserved,
	},
	{
		name:         "order-browse-restricted",
		entity:       enums.EntityOrder,
		operations:   []enums.Operation{enums.OperationList, enums.OperationSearch},
		allowedRoles: []string{RoleRoot, RoleAnalyst},
		denyReason:   ReasonRoleNotPermitted,
	},
	{
		name:         "user-delete-top-role",
		entity:       enums.EntityUser,
		operations:   []enums.Operation{enums.OperationDelete},
		allowedRoles: []string{RoleRoot},
		denyReason:   ReasonTopRoleRequired,
	},
	{
		name:         "category-create-top-role",
		entity:       enums.EntityCategory,
		operations:   []enums.Operation{enums.OperationCreate},
		allowedRoles: []string{RoleRoot},
		denyReason:   ReasonTopRoleRequired,
	},
	{
		name:         "subcategory-create-top-role",
		entity:       enums.EntitySubcategory,
		operations:   []enums.Operation{enums.OperationCreate},
		allowedRoles: []string{RoleRoot},
		denyReason:   ReasonTopRoleRequired,
	},
	{
		name:         "payment-method-mutation-top-role",
		entity:       enums.EntityPaymentMethod,
		operations:   []enums.Operation{enums.OperationCreate, enums.OperationDelete},
		allowedRoles: []string{RoleRoot},
		denyReason:   ReasonTopRoleRequired,
	},
}
