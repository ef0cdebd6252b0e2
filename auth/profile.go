package auth

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"

	"github.com/paperstack/blogd/model"
	"github.com/paperstack/blogd/policy"
)

// UpdateProfileMessage is the self-service profile update payload. Email and
// role are not mutable through this path.
type UpdateProfileMessage struct {
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	Username string `json:"username"`
}

// Validate will run validation rules
func (m UpdateProfileMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Username, validation.Length(3, 60)),
		validation.Field(&m.Name, validation.Length(1, 200)),
		validation.Field(&m.Bio, validation.Length(0, 500)),
	)
}

// Profile returns a user by id
func (s *Auther) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load profile")
	}
	return user, nil
}

// ProfileByUsername returns a user by username
func (s *Auther) ProfileByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load profile")
	}
	return user, nil
}

// UpdateProfile applies a partial profile update. A username change re-runs
// the uniqueness check and fails with ErrUsernameTaken on collision.
func (s *Auther) UpdateProfile(ctx context.Context, userID string, msg UpdateProfileMessage) (*model.User, error) {
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "invalid profile payload")
	}

	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load profile")
	}

	if msg.Username != "" && msg.Username != user.Username {
		taken, err := s.store.GetByUsername(ctx, msg.Username)
		if err != nil && !errors.IsNotFound(err) {
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check username uniqueness")
		}
		if taken != nil {
			return nil, ErrUsernameTaken
		}
		user.Username = msg.Username
	}

	if msg.Name != "" {
		user.Name = msg.Name
	}
	if msg.Bio != "" {
		user.Bio = msg.Bio
	}

	updated, err := s.store.Update(ctx, user)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update profile")
	}
	return updated, nil
}

// DeleteAccount removes an identity. Callers may delete their own account;
// admins may delete any. Deletion invalidates all future authorization for
// the id, though outstanding credentials verify until they expire.
func (s *Auther) DeleteAccount(ctx context.Context, callerID, callerRole, targetID string) error {
	target, err := s.store.GetByID(ctx, targetID)
	if err != nil {
		if errors.IsNotFound(err) {
			return ErrUserNotFound
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to load account")
	}

	if err := policy.Authorize(target.ID.String(), callerID, callerRole, policy.ActionDelete); err != nil {
		return err
	}

	return s.store.Delete(ctx, target.ID.String())
}
