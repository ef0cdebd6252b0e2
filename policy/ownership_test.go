package policy_test

import (
	"testing"

	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperstack/blogd/model"
	"github.com/paperstack/blogd/policy"
)

func TestDecide(t *testing.T) {
	owner := "owner-id"
	other := "other-id"

	tests := []struct {
		name   string
		caller string
		role   model.UserRole
		action policy.Action
		want   policy.Decision
	}{
		{"owner updates own resource", owner, model.RoleUser, policy.ActionUpdate, policy.Allow},
		{"owner deletes own resource", owner, model.RoleUser, policy.ActionDelete, policy.Allow},
		{"stranger cannot update", other, model.RoleUser, policy.ActionUpdate, policy.Deny},
		{"stranger cannot delete", other, model.RoleUser, policy.ActionDelete, policy.Deny},
		{"admin cannot update another user's resource", other, model.RoleAdmin, policy.ActionUpdate, policy.Deny},
		{"admin may delete another user's resource", other, model.RoleAdmin, policy.ActionDelete, policy.Allow},
		{"admin owner updates own resource", owner, model.RoleAdmin, policy.ActionUpdate, policy.Allow},
		{"empty caller is denied", "", model.RoleAdmin, policy.ActionDelete, policy.Deny},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := policy.Decide(owner, tc.caller, tc.role, tc.action)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("empty owner is denied", func(t *testing.T) {
		assert.Equal(t, policy.Deny, policy.Decide("", owner, model.RoleAdmin, policy.ActionDelete))
	})
}

func TestAuthorize(t *testing.T) {
	t.Run("allowed action returns nil", func(t *testing.T) {
		assert.NoError(t, policy.Authorize("owner-id", "owner-id", model.RoleUser, policy.ActionUpdate))
	})

	t.Run("denial carries the forbidden code and the action", func(t *testing.T) {
		err := policy.Authorize("owner-id", "other-id", model.RoleUser, policy.ActionDelete)
		require.Error(t, err)

		var richErr *errors.Error
		require.True(t, errors.As(err, &richErr))
		assert.Equal(t, errors.CategoryAuthz, richErr.Category)
		assert.Equal(t, policy.TextCodeForbidden, richErr.TextCode)
		assert.Equal(t, errors.CodeForbidden, richErr.Code)
		assert.Equal(t, "delete", richErr.Metadata["action"])
	})

	t.Run("denial does not mutate the sentinel", func(t *testing.T) {
		_ = policy.Authorize("owner-id", "other-id", model.RoleUser, policy.ActionUpdate)
		assert.Empty(t, policy.ErrForbidden.Metadata)
	})
}
