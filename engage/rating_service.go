package engage

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/paperstack/blogd/model"
	"github.com/paperstack/blogd/repository"
)

// RatingStore is the persistence the rating path needs
type RatingStore interface {
	Get(ctx context.Context, userID, blogID string) (*model.BlogRating, error)
	Upsert(ctx context.Context, userID, blogID uuid.UUID, value int) (*model.BlogRating, error)
	Delete(ctx context.Context, userID, blogID string) (bool, error)
	ListByBlog(ctx context.Context, blogID string, opts repository.ListOptions) ([]*model.BlogRating, int, error)
	Stats(ctx context.Context, blogID string) (*repository.RatingStats, error)
}

// RatingService writes and aggregates blog ratings
type RatingService struct {
	ratings RatingStore
	blogs   BlogExister
}

// NewRatingService creates a new RatingService
func NewRatingService(ratings RatingStore, blogs BlogExister) *RatingService {
	return &RatingService{ratings: ratings, blogs: blogs}
}

// Rate writes the (userID, blogID) rating. Values outside [1,5] are
// rejected; a repeat rating overwrites the previous value.
func (s *RatingService) Rate(ctx context.Context, userID, blogID string, value int) (*model.BlogRating, error) {
	if value < 1 || value > 5 {
		return nil, ErrRatingRange
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrBadID
	}
	bid, err := uuid.Parse(blogID)
	if err != nil {
		return nil, ErrBadID
	}

	ok, err := s.blogs.Exists(ctx, blogID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check blog")
	}
	if !ok {
		return nil, ErrBlogNotFound
	}

	rating, err := s.ratings.Upsert(ctx, uid, bid, value)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to store rating")
	}
	return rating, nil
}

// UserRating returns a user's rating of a blog, nil when absent
func (s *RatingService) UserRating(ctx context.Context, userID, blogID string) (*model.BlogRating, error) {
	rating, err := s.ratings.Get(ctx, userID, blogID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load rating")
	}
	return rating, nil
}

// BlogRatings returns a blog's ratings with aggregate stats
func (s *RatingService) BlogRatings(ctx context.Context, blogID string, opts repository.ListOptions) ([]*model.BlogRating, *repository.RatingStats, error) {
	ok, err := s.blogs.Exists(ctx, blogID)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.CategoryInternal, "failed to check blog")
	}
	if !ok {
		return nil, nil, ErrBlogNotFound
	}

	ratings, _, err := s.ratings.ListByBlog(ctx, blogID, opts)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.CategoryInternal, "failed to list ratings")
	}

	stats, err := s.ratings.Stats(ctx, blogID)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.CategoryInternal, "failed to aggregate ratings")
	}

	return ratings, stats, nil
}

// DeleteRating removes the caller's rating; absent ratings are NOT_FOUND
func (s *RatingService) DeleteRating(ctx context.Context, userID, blogID string) error {
	deleted, err := s.ratings.Delete(ctx, userID, blogID)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete rating")
	}
	if !deleted {
		return ErrRatingNotFound
	}
	return nil
}
