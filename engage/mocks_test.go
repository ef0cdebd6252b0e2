package engage_test

import (
	"context"
	"sync"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/paperstack/blogd/model"
	"github.com/paperstack/blogd/notify"
	"github.com/paperstack/blogd/repository"
)

var errStoreMiss = errors.New("record not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound)

func listOpts() repository.ListOptions {
	return repository.ListOptions{Page: 1, Limit: 20}
}

// MockLikeStore implements engage.LikeStore
type MockLikeStore struct {
	mock.Mock
}

func (m *MockLikeStore) Exists(ctx context.Context, userID, blogID string) (bool, error) {
	args := m.Called(ctx, userID, blogID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeStore) Create(ctx context.Context, userID, blogID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, blogID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeStore) Delete(ctx context.Context, userID, blogID string) (bool, error) {
	args := m.Called(ctx, userID, blogID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeStore) ListByBlog(ctx context.Context, blogID string, opts repository.ListOptions) ([]*model.Like, int, error) {
	args := m.Called(ctx, blogID, opts)
	likes, _ := args.Get(0).([]*model.Like)
	return likes, args.Int(1), args.Error(2)
}

func (m *MockLikeStore) ListByUser(ctx context.Context, userID string, opts repository.ListOptions) ([]*model.Like, int, error) {
	args := m.Called(ctx, userID, opts)
	likes, _ := args.Get(0).([]*model.Like)
	return likes, args.Int(1), args.Error(2)
}

func (m *MockLikeStore) CountByBlog(ctx context.Context, blogID string) (int, error) {
	args := m.Called(ctx, blogID)
	return args.Int(0), args.Error(1)
}

// MockFollowStore implements engage.FollowStore
type MockFollowStore struct {
	mock.Mock
}

func (m *MockFollowStore) Exists(ctx context.Context, followerID, followeeID string) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowStore) Create(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowStore) Delete(ctx context.Context, followerID, followeeID string) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowStore) ListFollowers(ctx context.Context, userID string, opts repository.ListOptions) ([]*model.Follow, int, error) {
	args := m.Called(ctx, userID, opts)
	follows, _ := args.Get(0).([]*model.Follow)
	return follows, args.Int(1), args.Error(2)
}

func (m *MockFollowStore) ListFollowing(ctx context.Context, userID string, opts repository.ListOptions) ([]*model.Follow, int, error) {
	args := m.Called(ctx, userID, opts)
	follows, _ := args.Get(0).([]*model.Follow)
	return follows, args.Int(1), args.Error(2)
}

func (m *MockFollowStore) Stats(ctx context.Context, userID string) (int, int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Int(1), args.Error(2)
}

// MockBlogExister implements engage.BlogExister
type MockBlogExister struct {
	mock.Mock
}

func (m *MockBlogExister) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockUserExister implements engage.UserExister
type MockUserExister struct {
	mock.Mock
}

func (m *MockUserExister) GetByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockRatingStore implements engage.RatingStore
type MockRatingStore struct {
	mock.Mock
}

func (m *MockRatingStore) Get(ctx context.Context, userID, blogID string) (*model.BlogRating, error) {
	args := m.Called(ctx, userID, blogID)
	if r := args.Get(0); r != nil {
		return r.(*model.BlogRating), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRatingStore) Upsert(ctx context.Context, userID, blogID uuid.UUID, value int) (*model.BlogRating, error) {
	args := m.Called(ctx, userID, blogID, value)
	if r := args.Get(0); r != nil {
		return r.(*model.BlogRating), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRatingStore) Delete(ctx context.Context, userID, blogID string) (bool, error) {
	args := m.Called(ctx, userID, blogID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRatingStore) ListByBlog(ctx context.Context, blogID string, opts repository.ListOptions) ([]*model.BlogRating, int, error) {
	args := m.Called(ctx, blogID, opts)
	ratings, _ := args.Get(0).([]*model.BlogRating)
	return ratings, args.Int(1), args.Error(2)
}

func (m *MockRatingStore) Stats(ctx context.Context, blogID string) (*repository.RatingStats, error) {
	args := m.Called(ctx, blogID)
	if s := args.Get(0); s != nil {
		return s.(*repository.RatingStats), args.Error(1)
	}
	return nil, args.Error(1)
}

// recordingBroadcaster captures broadcast messages for assertions
type recordingBroadcaster struct {
	mu       sync.Mutex
	messages []notify.Message
}

func (r *recordingBroadcaster) Broadcast(_ context.Context, msg notify.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	return nil
}

func (r *recordingBroadcaster) Messages() []notify.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notify.Message, len(r.messages))
	copy(out, r.messages)
	return out
}
