// Package engage implements the toggle-relationship engine for likes and
// follows, and rating upserts. Toggles are read-then-write: the uniqueness
// constraint in the store is the correctness backstop under concurrency, and
// a lost duplicate-insert race folds into "edge already exists" instead of
// surfacing a storage error.
package engage

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/paperstack/blogd/model"
	"github.com/paperstack/blogd/notify"
	"github.com/paperstack/blogd/repository"
)

// ToggleResult reports the materialized state after a toggle
type ToggleResult struct {
	State   bool   `json:"state"`
	Message string `json:"message"`
}

// BlogExister is the existence probe the like and rating paths need
type BlogExister interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// LikeStore is the persistence the like toggle needs
type LikeStore interface {
	Exists(ctx context.Context, userID, blogID string) (bool, error)
	Create(ctx context.Context, userID, blogID uuid.UUID) (bool, error)
	Delete(ctx context.Context, userID, blogID string) (bool, error)
	ListByBlog(ctx context.Context, blogID string, opts repository.ListOptions) ([]*model.Like, int, error)
	ListByUser(ctx context.Context, userID string, opts repository.ListOptions) ([]*model.Like, int, error)
	CountByBlog(ctx context.Context, blogID string) (int, error)
}

// LikeService toggles (user, blog) like edges
type LikeService struct {
	likes       LikeStore
	blogs       BlogExister
	broadcaster notify.Broadcaster
	logger      Logger
}

// NewLikeService creates a new LikeService
func NewLikeService(likes LikeStore, blogs BlogExister) *LikeService {
	return &LikeService{
		likes:       likes,
		blogs:       blogs,
		broadcaster: notify.Normalize(nil),
		logger:      defLogger{},
	}
}

func (s *LikeService) WithBroadcaster(b notify.Broadcaster) *LikeService {
	s.broadcaster = notify.Normalize(b)
	return s
}

func (s *LikeService) WithLogger(l Logger) *LikeService {
	if l != nil {
		s.logger = l
	}
	return s
}

// Toggle flips the like edge for (userID, blogID). Two calls return to the
// starting state; a lost insert race reads as "already liked".
func (s *LikeService) Toggle(ctx context.Context, userID, blogID string) (*ToggleResult, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrBadID
	}
	bid, err := uuid.Parse(blogID)
	if err != nil {
		return nil, ErrBadID
	}

	liked, err := s.likes.Exists(ctx, userID, blogID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to look up like")
	}

	if liked {
		if _, err := s.likes.Delete(ctx, userID, blogID); err != nil {
			return nil, errors.Wrap(err, errors.CategoryInternal, "failed to remove like")
		}
		return &ToggleResult{State: false, Message: "Blog unliked successfully"}, nil
	}

	ok, err := s.blogs.Exists(ctx, blogID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check blog")
	}
	if !ok {
		return nil, ErrBlogNotFound
	}

	// inserted=false means a concurrent toggle won the insert; the edge
	// exists either way, so both paths report state=true
	if _, err := s.likes.Create(ctx, uid, bid); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create like")
	}

	s.broadcast(ctx, blogID, userID, true)

	return &ToggleResult{State: true, Message: "Blog liked successfully"}, nil
}

// HasLiked reports whether the user liked the blog
func (s *LikeService) HasLiked(ctx context.Context, userID, blogID string) (bool, error) {
	liked, err := s.likes.Exists(ctx, userID, blogID)
	if err != nil {
		return false, errors.Wrap(err, errors.CategoryInternal, "failed to look up like")
	}
	return liked, nil
}

// BlogLikes returns the users who liked a blog
func (s *LikeService) BlogLikes(ctx context.Context, blogID string, opts repository.ListOptions) ([]*model.Like, int, error) {
	ok, err := s.blogs.Exists(ctx, blogID)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.CategoryInternal, "failed to check blog")
	}
	if !ok {
		return nil, 0, ErrBlogNotFound
	}
	return s.likes.ListByBlog(ctx, blogID, opts)
}

// UserLikes returns a user's liked blogs
func (s *LikeService) UserLikes(ctx context.Context, userID string, opts repository.ListOptions) ([]*model.Like, int, error) {
	return s.likes.ListByUser(ctx, userID, opts)
}

func (s *LikeService) broadcast(ctx context.Context, blogID, userID string, state bool) {
	err := s.broadcaster.Broadcast(ctx, notify.Message{
		Room:  notify.BlogRoom(blogID),
		Event: notify.EventBlogLiked,
		Payload: map[string]any{
			"blog_id": blogID,
			"user_id": userID,
			"liked":   state,
		},
	})
	if err != nil {
		s.logger.Warn("like broadcast failed", "error", err)
	}
}
