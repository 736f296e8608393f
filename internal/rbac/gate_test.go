package rbac

import (
	"testing"

	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/enums"
	"github.com/stretchr/testify/assert"
)

func TestCheckRootAllowedEverywhere(t *testing.T) {
	entities := []enums.EntityKind{
		enums.EntityProduct,
		enums.EntityCategory,
		enums.EntitySubcategory,
		enums.EntityUser,
		enums.EntityRole,
		enums.EntityPaymentMethod,
		enums.EntityAudit,
	}
	ops := []enums.Operation{
		enums.OperationList,
		enums.OperationRead,
		enums.OperationSearch,
		enums.OperationCreate,
		enums.OperationUpdate,
		enums.OperationDelete,
	}

	for _, entity := range entities {
		for _, op := range ops {
			decision := Check(RoleRoot, entity, op)
			assert.True(t, decision.Allowed, "root should be allowed %s on %s", op, entity)
		}
	}
}

func TestCheckOrderCreateOverrideWinsOverRoot(t *testing.T) {
	decision := Check(RoleRoot, enums.EntityOrder, enums.OperationCreate)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonOrderCreateReserved, decision.Reason)
}

func TestCheckOrderCreateDeniedForAllRoles(t *testing.T) {
	for _, role := range []string{RoleRoot, RoleAnalyst, RoleRestocker} {
		decision := Check(role, enums.EntityOrder, enums.OperationCreate)
		assert.False(t, decision.Allowed, "role %s must not create orders", role)
		assert.Equal(t, ReasonOrderCreateReserved, decision.Reason)
	}
}

func TestCheckOrderBrowseRestricted(t *testing.T) {
	assert.True(t, Check(RoleAnalyst, enums.EntityOrder, enums.OperationList).Allowed)
	assert.True(t, Check(RoleRoot, enums.EntityOrder, enums.OperationSearch).Allowed)

	decision := Check(RoleRestocker, enums.EntityOrder, enums.OperationList)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonRoleNotPermitted, decision.Reason)
}

func TestCheckAnalystBaseEntitlement(t *testing.T) {
	// read-only set allowed
	assert.True(t, Check(RoleAnalyst, enums.EntityProduct, enums.OperationList).Allowed)
	assert.True(t, Check(RoleAnalyst, enums.EntityProduct, enums.OperationSearch).Allowed)
	assert.True(t, Check(RoleAnalyst, enums.EntityProduct, enums.OperationRead).Allowed)

	// mutations denied
	decision := Check(RoleAnalyst, enums.EntityProduct, enums.OperationCreate)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonRoleNotPermitted, decision.Reason)
	assert.False(t, Check(RoleAnalyst, enums.EntityProduct, enums.OperationDelete).Allowed)
}

func TestCheckRestockerProductMutations(t *testing.T) {
	assert.True(t, Check(RoleRestocker, enums.EntityProduct, enums.OperationCreate).Allowed)
	assert.True(t, Check(RoleRestocker, enums.EntityProduct, enums.OperationUpdate).Allowed)
	assert.False(t, Check(RoleRestocker, enums.EntityProduct, enums.OperationDelete).Allowed)
}

func TestCheckTopRoleOverrides(t *testing.T) {
	t.Run("userDelete", func(t *testing.T) {
		assert.True(t, Check(RoleRoot, enums.EntityUser, enums.OperationDelete).Allowed)

		decision := Check(RoleAnalyst, enums.EntityUser, enums.OperationDelete)
		assert.False(t, decision.Allowed)
		assert.Equal(t, ReasonTopRoleRequired, decision.Reason)
	})

	t.Run("categoryCreate", func(t *testing.T) {
		assert.True(t, Check(RoleRoot, enums.EntityCategory, enums.OperationCreate).Allowed)
		assert.False(t, Check(RoleRestocker, enums.EntityCategory, enums.OperationCreate).Allowed)
	})

	t.Run("subcategoryCreate", func(t *testing.T) {
		assert.True(t, Check(RoleRoot, enums.EntitySubcategory, enums.OperationCreate).Allowed)
		assert.False(t, Check(RoleAnalyst, enums.EntitySubcategory, enums.OperationCreate).Allowed)
	})

	t.Run("paymentMethodMutations", func(t *testing.T) {
		assert.True(t, Check(RoleRoot, enums.EntityPaymentMethod, enums.OperationCreate).Allowed)
		assert.True(t, Check(RoleRoot, enums.EntityPaymentMethod, enums.OperationDelete).Allowed)
		assert.False(t, Check(RoleAnalyst, enums.EntityPaymentMethod, enums.OperationCreate).Allowed)
		assert.False(t, Check(RoleRestocker, enums.EntityPaymentMethod, enums.OperationDelete).Allowed)
	})
}

func TestCheckUnknownRole(t *testing.T) {
	decision := Check("janitor", enums.EntityProduct, enums.OperationList)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonUnknownRole, decision.Reason)

	decision = Check("", enums.EntityProduct, enums.OperationList)
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonUnknownRole, decision.Reason)
}

func TestCheckOverridePrecedenceBeforeBaseMatrix(t *testing.T) {
	// Analyst's base matrix includes list on payment methods, and the
	// override only restricts create/delete, so list must still pass
	// through to the matrix and succeed.
	assert.True(t, Check(RoleAnalyst, enums.EntityPaymentMethod, enums.OperationList).Allowed)
}
