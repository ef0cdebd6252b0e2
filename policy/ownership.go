// Package policy holds the ownership decision rule applied to every
// mutating operation: a caller may act on a resource only when they own it,
// or, for deletion, when they hold the admin role.
package policy

import (
	"github.com/goliatone/go-errors"

	"github.com/paperstack/blogd/model"
)

// Action is a mutating operation on an owned resource
type Action int

const (
	// ActionUpdate allows the owner only. Admin has no update override.
	ActionUpdate Action = iota
	// ActionDelete allows the owner or an admin.
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Decision is the outcome of the ownership check
type Decision int

const (
	Deny Decision = iota
	Allow
)

// TextCodeForbidden tags denials at the request boundary
const TextCodeForbidden = "FORBIDDEN"

// ErrForbidden is returned when a verified caller lacks rights on a
// resource. Distinct from not-found: callers must check existence first so
// a denial never doubles as an existence probe.
var ErrForbidden = errors.New("You do not have permission to perform this action", errors.CategoryAuthz).
	WithTextCode(TextCodeForbidden).
	WithCode(errors.CodeForbidden)

// Decide is a pure decision function over (owner, caller, role, action).
// No I/O, no clock, no store access.
func Decide(ownerID, callerID string, callerRole model.UserRole, action Action) Decision {
	if ownerID == "" || callerID == "" {
		return Deny
	}

	if callerID == ownerID {
		return Allow
	}

	if action == ActionDelete && callerRole == model.RoleAdmin {
		return Allow
	}

	return Deny
}

// Authorize wraps Decide, returning ErrForbidden with action metadata on
// denial.
func Authorize(ownerID, callerID string, callerRole model.UserRole, action Action) error {
	if Decide(ownerID, callerID, callerRole, action) == Allow {
		return nil
	}

	denial := ErrForbidden.Clone()
	return denial.WithMetadata(map[string]any{
		"action": action.String(),
	})
}
