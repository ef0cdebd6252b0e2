package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/paperstack/blogd/model"
)

// LikesRepository persists like edges with bun. The (user_id, blog_id)
// unique constraint is the authoritative guard against duplicate edges.
type LikesRepository struct {
	db *bun.DB
}

// NewLikesRepository creates a new repository
func NewLikesRepository(db *bun.DB) *LikesRepository {
	return &LikesRepository{db: db}
}

// Exists reports whether the (userID, blogID) edge is present
func (r *LikesRepository) Exists(ctx context.Context, userID, blogID string) (bool, error) {
	return r.db.NewSelect().
		Model((*model.Like)(nil)).
		Where("lke.user_id = ? AND lke.blog_id = ?", userID, blogID).
		Exists(ctx)
}

// Create inserts the edge. A concurrent duplicate insert loses the race
// silently: ON CONFLICT DO NOTHING means inserted=false instead of a raw
// constraint error.
func (r *LikesRepository) Create(ctx context.Context, userID, blogID uuid.UUID) (inserted bool, err error) {
	now := time.Now()
	like := &model.Like{
		ID:        uuid.New(),
		UserID:    userID,
		BlogID:    blogID,
		CreatedAt: &now,
	}

	res, err := r.db.NewInsert().
		Model(like).
		On("CONFLICT DO NOTHING").
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

// Delete removes the edge, reporting whether a row was deleted
func (r *LikesRepository) Delete(ctx context.Context, userID, blogID string) (bool, error) {
	res, err := r.db.NewDelete().
		Model((*model.Like)(nil)).
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

// ListByBlog returns the users who liked a blog, newest like first
func (r *LikesRepository) ListByBlog(ctx context.Context, blogID string, opts ListOptions) ([]*model.Like, int, error) {
	offset, limit := opts.normalize()

	var likes []*model.Like
	total, err := r.db.NewSelect().
		Model(&likes).
		Relation("User").
		Where("lke.blog_id = ?", blogID).
		Order("lke.created_at DESC").
		Offset(offset).
		Limit(limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return likes, total, nil
}

// ListByUser returns a user's likes, newest first
func (r *LikesRepository) ListByUser(ctx context.Context, userID string, opts ListOptions) ([]*model.Like, int, error) {
	offset, limit := opts.normalize()

	var likes []*model.Like
	total, err := r.db.NewSelect().
		Model(&likes).
		Where("lke.user_id = ?", userID).
		Order("lke.created_at DESC").
		Offset(offset).
		Limit(limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return likes, total, nil
}

// CountByBlog returns the number of likes on a blog
func (r *LikesRepository) CountByBlog(ctx context.Context, blogID string) (int, error) {
	return r.db.NewSelect().
		Model((*model.Like)(nil)).
		Where("lke.blog_id = ?", blogID).
		Count(ctx)
}
