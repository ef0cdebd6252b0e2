package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/paperstack/blogd/model"
)

// RatingStats aggregates a blog's ratings
type RatingStats struct {
	Total        int         `json:"total"`
	Average      float64     `json:"average"`
	Distribution map[int]int `json:"distribution"`
}

// RatingsRepository persists blog ratings with bun
type RatingsRepository struct {
	db *bun.DB
}

// NewRatingsRepository creates a new repository
func NewRatingsRepository(db *bun.DB) *RatingsRepository {
	return &RatingsRepository{db: db}
}

// Get returns the (userID, blogID) rating
func (r *RatingsRepository) Get(ctx context.Context, userID, blogID string) (*model.BlogRating, error) {
	var rating model.BlogRating
	err := r.db.NewSelect().
		Model(&rating).
		Where("rtg.user_id = ? AND rtg.blog_id = ?", userID, blogID).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "rating not found")
	}
	return &rating, nil
}

// Upsert writes the rating keyed by (user_id, blog_id): a second rating from
// the same user overwrites rather than duplicates.
func (r *RatingsRepository) Upsert(ctx context.Context, userID, blogID uuid.UUID, value int) (*model.BlogRating, error) {
	now := time.Now()
	rating := &model.BlogRating{
		ID:        uuid.New(),
		UserID:    userID,
		BlogID:    blogID,
		Value:     value,
		CreatedAt: &now,
		UpdatedAt: &now,
	}

	_, err := r.db.NewInsert().
		Model(rating).
		On("CONFLICT (user_id, blog_id) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, userID.String(), blogID.String())
}

// Delete removes a user's rating, reporting whether a row was deleted
func (r *RatingsRepository) Delete(ctx context.Context, userID, blogID string) (bool, error) {
	res, err := r.db.NewDelete().
		Model((*model.BlogRating)(nil)).
		Where("user_id = ? AND blog_id = ?", userID, blogID).
		Exec(ctx)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListByBlog returns a blog's ratings, newest first
func (r *RatingsRepository) ListByBlog(ctx context.Context, blogID string, opts ListOptions) ([]*model.BlogRating, int, error) {
	offset, limit := opts.normalize()

	var ratings []*model.BlogRating
	total, err := r.db.NewSelect().
		Model(&ratings).
		Relation("User").
		Where("rtg.blog_id = ?", blogID).
		Order("rtg.created_at DESC").
		Offset(offset).
		Limit(limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return ratings, total, nil
}

// Stats computes count, average and per-value distribution for a blog
func (r *RatingsRepository) Stats(ctx context.Context, blogID string) (*RatingStats, error) {
	var values []int
	err := r.db.NewSelect().
		Model((*model.BlogRating)(nil)).
		Column("value").
		Where("rtg.blog_id = ?", blogID).
		Scan(ctx, &values)
	if err != nil {
		return nil, err
	}

	stats := &RatingStats{
		Total:        len(values),
		Distribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}

	if len(values) == 0 {
		return stats, nil
	}

	sum := 0
	for _, v := range values {
		sum += v
		stats.Distribution[v]++
	}

	// round to one decimal, matching the public API contract
	stats.Average = float64(int(float64(sum)/float64(len(values))*10+0.5)) / 10
	return stats, nil
}
