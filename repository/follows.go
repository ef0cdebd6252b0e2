package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/paperstack/blogd/model"
)

// FollowsRepository persists follow edges with bun. Uniqueness of
// (follower_id, followee_id) is enforced by the store.
type FollowsRepository struct {
	db *bun.DB
}

// NewFollowsRepository creates a new repository
func NewFollowsRepository(db *bun.DB) *FollowsRepository {
	return &FollowsRepository{db: db}
}

// Exists reports whether follower already follows followee
func (r *FollowsRepository) Exists(ctx context.Context, followerID, followeeID string) (bool, error) {
	return r.db.NewSelect().
		Model((*model.Follow)(nil)).
		Where("flw.follower_id = ? AND flw.followee_id = ?", followerID, followeeID).
		Exists(ctx)
}

// Create inserts the edge idempotently; inserted=false signals the edge was
// already present (lost race), not a failure.
func (r *FollowsRepository) Create(ctx context.Context, followerID, followeeID uuid.UUID) (inserted bool, err error) {
	now := time.Now()
	follow := &model.Follow{
		ID:         uuid.New(),
		FollowerID: followerID,
		FolloweeID: followeeID,
		CreatedAt:  &now,
	}

	res, err := r.db.NewInsert().
		Model(follow).
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
func (r *FollowsRepository) Delete(ctx context.Context, followerID, followeeID string) (bool, error) {
	res, err := r.db.NewDelete().
		Model((*model.Follow)(nil)).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
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

// ListFollowers returns the users that follow userID
func (r *FollowsRepository) ListFollowers(ctx context.Context, userID string, opts ListOptions) ([]*model.Follow, int, error) {
	offset, limit := opts.normalize()

	var follows []*model.Follow
	total, err := r.db.NewSelect().
		Model(&follows).
		Relation("Follower").
		Where("flw.followee_id = ?", userID).
		Order("flw.created_at DESC").
		Offset(offset).
		Limit(limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return follows, total, nil
}

// ListFollowing returns the users that userID follows
func (r *FollowsRepository) ListFollowing(ctx context.Context, userID string, opts ListOptions) ([]*model.Follow, int, error) {
	offset, limit := opts.normalize()

	var follows []*model.Follow
	total, err := r.db.NewSelect().
		Model(&follows).
		Relation("Followee").
		Where("flw.follower_id = ?", userID).
		Order("flw.created_at DESC").
		Offset(offset).
		Limit(limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return follows, total, nil
}

// Stats returns follower and following counts for a user
func (r *FollowsRepository) Stats(ctx context.Context, userID string) (followers, following int, err error) {
	followers, err = r.db.NewSelect().
		Model((*model.Follow)(nil)).
		Where("flw.followee_id = ?", userID).
		Count(ctx)
	if err != nil {
		return 0, 0, err
	}

	following, err = r.db.NewSelect().
		Model((*model.Follow)(nil)).
		Where("flw.follower_id = ?", userID).
		Count(ctx)
	if err != nil {
		return 0, 0, err
	}

	return followers, following, nil
}
