package repository

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/paperstack/blogd/model"
)

// BlogsRepository persists blogs with bun
type BlogsRepository struct {
	db *bun.DB
}

// NewBlogsRepository creates a new repository
func NewBlogsRepository(db *bun.DB) *BlogsRepository {
	return &BlogsRepository{db: db}
}

func (r *BlogsRepository) GetByID(ctx context.Context, id string) (*model.Blog, error) {
	var blog model.Blog
	err := r.db.NewSelect().
		Model(&blog).
		Relation("User").
		Where("blg.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "blog not found")
	}
	return &blog, nil
}

// Exists is a cheap existence probe used by the toggle and rating paths
func (r *BlogsRepository) Exists(ctx context.Context, id string) (bool, error) {
	return r.db.NewSelect().
		Model((*model.Blog)(nil)).
		Where("blg.id = ?", id).
		Exists(ctx)
}

func (r *BlogsRepository) List(ctx context.Context, opts ListOptions) ([]*model.Blog, int, error) {
	offset, limit := opts.normalize()

	var blogs []*model.Blog
	total, err := r.db.NewSelect().
		Model(&blogs).
		Relation("User").
		Order("blg.created_at DESC").
		Offset(offset).
		Limit(limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

// ListByAuthor returns an author's blogs, newest first
func (r *BlogsRepository) ListByAuthor(ctx context.Context, userID string, opts ListOptions) ([]*model.Blog, int, error) {
	offset, limit := opts.normalize()

	var blogs []*model.Blog
	total, err := r.db.NewSelect().
		Model(&blogs).
		Where("blg.user_id = ?", userID).
		Order("blg.created_at DESC").
		Offset(offset).
		Limit(limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

// Search matches the query against title and content
func (r *BlogsRepository) Search(ctx context.Context, query string, opts ListOptions) ([]*model.Blog, int, error) {
	offset, limit := opts.normalize()
	pattern := "%" + query + "%"

	var blogs []*model.Blog
	total, err := r.db.NewSelect().
		Model(&blogs).
		Relation("User").
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("blg.title LIKE ?", pattern).
				WhereOr("blg.content LIKE ?", pattern)
		}).
		Order("blg.created_at DESC").
		Offset(offset).
		Limit(limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

func (r *BlogsRepository) Create(ctx context.Context, blog *model.Blog) (*model.Blog, error) {
	now := time.Now()
	blog.CreatedAt = &now
	blog.UpdatedAt = &now
	if _, err := r.db.NewInsert().Model(blog).Exec(ctx); err != nil {
		return nil, err
	}
	return blog, nil
}

func (r *BlogsRepository) Update(ctx context.Context, blog *model.Blog) (*model.Blog, error) {
	now := time.Now()
	blog.UpdatedAt = &now
	if _, err := r.db.NewUpdate().
		Model(blog).
		WherePK().
		Exec(ctx); err != nil {
		return nil, err
	}
	return blog, nil
}

func (r *BlogsRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.NewDelete().
		Model((*model.Blog)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}
