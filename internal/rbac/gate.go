package rbac

import (
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/enums"
)

// Decision is the outcome of a permission check. Reason is set only
// when Allowed is false and is stable across releases.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Check decides whether role may perform op on entity. It is a pure
// function of its inputs and the static matrix; it never errors.
//
// Evaluation order:
//  1. override rules, in declaration order — first match decides
//  2. root allow-all
//  3. base matrix entitlement for the role
func Check(role string, entity enums.EntityKind, op enums.Operation) Decision {
	if role == "" {
		return deny(ReasonUnknownRole)
	}

	for _, rule := range overrideRules {
		if !rule.matches(entity, op) {
			continue
		}
		if rule.allows(role) {
			return allow()
		}
		return deny(rule.denyReason)
	}

	if role == RoleRoot {
		return allow()
	}

	entitlements, ok := baseMatrix[role]
	if !ok {
		return deny(ReasonUnknownRole)
	}
	for _, candidate := range entitlements[entity] {
		if candidate == op {
			return allow()
		}
	}
	return deny(ReasonRoleNotPermitted)
}
