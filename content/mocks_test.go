package content_test

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/mock"

	"github.com/paperstack/blogd/model"
	"github.com/paperstack/blogd/repository"
)

var errStoreMiss = errors.New("record not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound)

// MockBlogStore implements content.BlogStore
type MockBlogStore struct {
	mock.Mock
}

func (m *MockBlogStore) GetByID(ctx context.Context, id string) (*model.Blog, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*model.Blog), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBlogStore) List(ctx context.Context, opts repository.ListOptions) ([]*model.Blog, int, error) {
	args := m.Called(ctx, opts)
	blogs, _ := args.Get(0).([]*model.Blog)
	return blogs, args.Int(1), args.Error(2)
}

func (m *MockBlogStore) ListByAuthor(ctx context.Context, userID string, opts repository.ListOptions) ([]*model.Blog, int, error) {
	args := m.Called(ctx, userID, opts)
	blogs, _ := args.Get(0).([]*model.Blog)
	return blogs, args.Int(1), args.Error(2)
}

func (m *MockBlogStore) Search(ctx context.Context, query string, opts repository.ListOptions) ([]*model.Blog, int, error) {
	args := m.Called(ctx, query, opts)
	blogs, _ := args.Get(0).([]*model.Blog)
	return blogs, args.Int(1), args.Error(2)
}

// Create echoes the input model when configured with a nil return.
func (m *MockBlogStore) Create(ctx context.Context, blog *model.Blog) (*model.Blog, error) {
	args := m.Called(ctx, blog)
	if b := args.Get(0); b != nil {
		return b.(*model.Blog), args.Error(1)
	}
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return blog, nil
}

func (m *MockBlogStore) Update(ctx context.Context, blog *model.Blog) (*model.Blog, error) {
	args := m.Called(ctx, blog)
	if b := args.Get(0); b != nil {
		return b.(*model.Blog), args.Error(1)
	}
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return blog, nil
}

func (m *MockBlogStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCommentStore implements content.CommentStore
type MockCommentStore struct {
	mock.Mock
}

func (m *MockCommentStore) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*model.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCommentStore) ListByBlog(ctx context.Context, blogID string, opts repository.ListOptions) ([]*model.Comment, int, error) {
	args := m.Called(ctx, blogID, opts)
	comments, _ := args.Get(0).([]*model.Comment)
	return comments, args.Int(1), args.Error(2)
}

func (m *MockCommentStore) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	args := m.Called(ctx, comment)
	if c := args.Get(0); c != nil {
		return c.(*model.Comment), args.Error(1)
	}
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return comment, nil
}

func (m *MockCommentStore) Update(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	args := m.Called(ctx, comment)
	if c := args.Get(0); c != nil {
		return c.(*model.Comment), args.Error(1)
	}
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return comment, nil
}

func (m *MockCommentStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
