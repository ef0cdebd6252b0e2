package engage

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/paperstack/blogd/model"
	"github.com/paperstack/blogd/notify"
	"github.com/paperstack/blogd/repository"
)

// FollowStore is the persistence the follow toggle needs
type FollowStore interface {
	Exists(ctx context.Context, followerID, followeeID string) (bool, error)
	Create(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	Delete(ctx context.Context, followerID, followeeID string) (bool, error)
	ListFollowers(ctx context.Context, userID string, opts repository.ListOptions) ([]*model.Follow, int, error)
	ListFollowing(ctx context.Context, userID string, opts repository.ListOptions) ([]*model.Follow, int, error)
	Stats(ctx context.Context, userID string) (int, int, error)
}

// UserExister is the existence probe the follow path needs
type UserExister interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// FollowStats carries follower/following counts
type FollowStats struct {
	Followers int `json:"followers"`
	Following int `json:"following"`
}

// FollowService toggles (follower, followee) edges between users
type FollowService struct {
	follows     FollowStore
	users       UserExister
	broadcaster notify.Broadcaster
	logger      Logger
}

// NewFollowService creates a new FollowService
func NewFollowService(follows FollowStore, users UserExister) *FollowService {
	return &FollowService{
		follows:     follows,
		users:       users,
		broadcaster: notify.Normalize(nil),
		logger:      defLogger{},
	}
}

func (s *FollowService) WithBroadcaster(b notify.Broadcaster) *FollowService {
	s.broadcaster = notify.Normalize(b)
	return s
}

func (s *FollowService) WithLogger(l Logger) *FollowService {
	if l != nil {
		s.logger = l
	}
	return s
}

// Toggle flips the follow edge. A self-follow is rejected before any store
// access; a lost insert race reads as "already following".
func (s *FollowService) Toggle(ctx context.Context, followerID, followeeID string) (*ToggleResult, error) {
	if followerID == followeeID {
		return nil, ErrSelfFollow
	}

	fid, err := uuid.Parse(followerID)
	if err != nil {
		return nil, ErrBadID
	}
	tid, err := uuid.Parse(followeeID)
	if err != nil {
		return nil, ErrBadID
	}

	following, err := s.follows.Exists(ctx, followerID, followeeID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to look up follow")
	}

	if following {
		if _, err := s.follows.Delete(ctx, followerID, followeeID); err != nil {
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to remove follow")
		}
		return &ToggleResult{State: false, Message: "Unfollowed successfully"}, nil
	}

	if _, err := s.users.GetByID(ctx, followeeID); err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrTargetUserNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check user")
	}

	if _, err := s.follows.Create(ctx, fid, tid); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create follow")
	}

	s.broadcast(ctx, followeeID, followerID)

	return &ToggleResult{State: true, Message: "Followed successfully"}, nil
}

// IsFollowing reports whether follower follows followee
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	following, err := s.follows.Exists(ctx, followerID, followeeID)
	if err != nil {
		return false, errors.Wrap(err, errors.CategoryInternal, "failed to look up follow")
	}
	return following, nil
}

// Followers returns the users following userID
func (s *FollowService) Followers(ctx context.Context, userID string, opts repository.ListOptions) ([]*model.Follow, int, error) {
	return s.follows.ListFollowers(ctx, userID, opts)
}

// Following returns the users userID follows
func (s *FollowService) Following(ctx context.Context, userID string, opts repository.ListOptions) ([]*model.Follow, int, error) {
	return s.follows.ListFollowing(ctx, userID, opts)
}

// Stats returns follower and following counts
func (s *FollowService) Stats(ctx context.Context, userID string) (*FollowStats, error) {
	followers, following, err := s.follows.Stats(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to count follows")
	}
	return &FollowStats{Followers: followers, Following: following}, nil
}

func (s *FollowService) broadcast(ctx context.Context, followeeID, followerID string) {
	err := s.broadcaster.Broadcast(ctx, notify.Message{
		Room:  notify.UserRoom(followeeID),
		Event: notify.EventNewFollow,
		Payload: map[string]any{
			"follower_id": followerID,
		},
	})
	if err != nil {
		s.logger.Warn("follow broadcast failed", "error", err)
	}
}
