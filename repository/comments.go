package repository

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/paperstack/blogd/model"
)

// CommentsRepository persists comments with bun
type CommentsRepository struct {
	db *bun.DB
}

// NewCommentsRepository creates a new repository
func NewCommentsRepository(db *bun.DB) *CommentsRepository {
	return &CommentsRepository{db: db}
}

func (r *CommentsRepository) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.NewSelect().
		Model(&comment).
		Relation("User").
		Where("cmt.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "comment not found")
	}
	return &comment, nil
}

func (r *CommentsRepository) ListByBlog(ctx context.Context, blogID string, opts ListOptions) ([]*model.Comment, int, error) {
	offset, limit := opts.normalize()

	var comments []*model.Comment
	total, err := r.db.NewSelect().
		Model(&comments).
		Relation("User").
		Where("cmt.blog_id = ?", blogID).
		Order("cmt.created_at DESC").
		Offset(offset).
		Limit(limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *CommentsRepository) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	now := time.Now()
	comment.CreatedAt = &now
	comment.UpdatedAt = &now
	if _, err := r.db.NewInsert().Model(comment).Exec(ctx); err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *CommentsRepository) Update(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	now := time.Now()
	comment.UpdatedAt = &now
	if _, err := r.db.NewUpdate().
		Model(comment).
		WherePK().
		Exec(ctx); err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *CommentsRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.NewDelete().
		Model((*model.Comment)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}
