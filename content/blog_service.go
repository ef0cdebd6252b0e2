// Package content holds the blog and comment services. Every mutation runs
// the ownership policy, and existence is always checked before ownership:
// not-found wins over forbidden.
package content

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/paperstack/blogd/model"
	"github.com/paperstack/blogd/policy"
	"github.com/paperstack/blogd/repository"
)

// BlogStore is the persistence the blog service needs
type BlogStore interface {
	GetByID(ctx context.Context, id string) (*model.Blog, error)
	List(ctx context.Context, opts repository.ListOptions) ([]*model.Blog, int, error)
	ListByAuthor(ctx context.Context, userID string, opts repository.ListOptions) ([]*model.Blog, int, error)
	Search(ctx context.Context, query string, opts repository.ListOptions) ([]*model.Blog, int, error)
	Create(ctx context.Context, blog *model.Blog) (*model.Blog, error)
	Update(ctx context.Context, blog *model.Blog) (*model.Blog, error)
	Delete(ctx context.Context, id string) error
}

// CreateBlogMessage is the blog creation payload
type CreateBlogMessage struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Tag     string `json:"tag"`
}

// Validate will run validation rules
func (m CreateBlogMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Title, validation.Required, validation.Length(1, 300)),
		validation.Field(&m.Content, validation.Required),
		validation.Field(&m.Tag, validation.Length(0, 60)),
	)
}

// UpdateBlogMessage is the partial blog update payload
type UpdateBlogMessage struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Tag     string `json:"tag"`
}

// Validate will run validation rules
func (m UpdateBlogMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Title, validation.Length(1, 300)),
		validation.Field(&m.Tag, validation.Length(0, 60)),
	)
}

// BlogService runs blog CRUD guarded by the ownership policy
type BlogService struct {
	blogs BlogStore
}

// NewBlogService creates a new BlogService
func NewBlogService(blogs BlogStore) *BlogService {
	return &BlogService{blogs: blogs}
}

// Create persists a new blog owned by the caller
func (s *BlogService) Create(ctx context.Context, callerID string, msg CreateBlogMessage) (*model.Blog, error) {
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "invalid blog payload")
	}

	uid, err := uuid.Parse(callerID)
	if err != nil {
		return nil, errors.New("invalid caller identifier", errors.CategoryBadInput)
	}

	blog := &model.Blog{
		ID:      uuid.New(),
		UserID:  uid,
		Title:   msg.Title,
		Content: msg.Content,
		Tag:     msg.Tag,
	}

	created, err := s.blogs.Create(ctx, blog)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create blog")
	}
	return created, nil
}

// Get returns a blog by id
func (s *BlogService) Get(ctx context.Context, id string) (*model.Blog, error) {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrBlogNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load blog")
	}
	return blog, nil
}

// List returns blogs, newest first
func (s *BlogService) List(ctx context.Context, opts repository.ListOptions) ([]*model.Blog, int, error) {
	return s.blogs.List(ctx, opts)
}

// Search matches blogs against a free-text query
func (s *BlogService) Search(ctx context.Context, query string, opts repository.ListOptions) ([]*model.Blog, int, error) {
	if query == "" {
		return s.blogs.List(ctx, opts)
	}
	return s.blogs.Search(ctx, query, opts)
}

// Update applies a partial update. Strictly owner-only: admin role grants no
// update override.
func (s *BlogService) Update(ctx context.Context, callerID string, callerRole model.UserRole, blogID string, msg UpdateBlogMessage) (*model.Blog, error) {
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "invalid blog payload")
	}

	blog, err := s.Get(ctx, blogID)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(blog.UserID.String(), callerID, callerRole, policy.ActionUpdate); err != nil {
		return nil, err
	}

	if msg.Title != "" {
		blog.Title = msg.Title
	}
	if msg.Content != "" {
		blog.Content = msg.Content
	}
	if msg.Tag != "" {
		blog.Tag = msg.Tag
	}

	updated, err := s.blogs.Update(ctx, blog)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update blog")
	}
	return updated, nil
}

// Delete removes a blog. Owner or admin.
func (s *BlogService) Delete(ctx context.Context, callerID string, callerRole model.UserRole, blogID string) error {
	blog, err := s.Get(ctx, blogID)
	if err != nil {
		return err
	}

	if err := policy.Authorize(blog.UserID.String(), callerID, callerRole, policy.ActionDelete); err != nil {
		return err
	}

	if err := s.blogs.Delete(ctx, blog.ID.String()); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete blog")
	}
	return nil
}
