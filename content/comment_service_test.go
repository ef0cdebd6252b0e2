package content_test

import (
	"context"
	"sync"
	"testing"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/paperstack/blogd/content"
	"github.com/paperstack/blogd/model"
	"github.com/paperstack/blogd/notify"
	"github.com/paperstack/blogd/repository"
)

func repositoryOpts() repository.ListOptions {
	return repository.ListOptions{Page: 1, Limit: 20}
}

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

func TestCommentCreate(t *testing.T) {
	ctx := context.Background()
	callerID := uuid.New()
	blogID := uuid.New()

	blog := &model.Blog{ID: blogID, UserID: uuid.New()}

	t.Run("creates and broadcasts to the blog room", func(t *testing.T) {
		blogs := new(MockBlogStore)
		comments := new(MockCommentStore)
		sink := &recordingBroadcaster{}

		blogs.On("GetByID", ctx, blogID.String()).Return(blog, nil).Once()
		comments.On("Create", ctx, mock.AnythingOfType("*model.Comment")).Return(nil, nil).Once()

		svc := content.NewCommentService(comments, blogs).WithBroadcaster(sink)

		comment, err := svc.Create(ctx, callerID.String(), blogID.String(),
			content.CommentMessage{Content: "Nice post"})
		require.NoError(t, err)

		assert.Equal(t, callerID, comment.UserID)
		assert.Equal(t, blogID, comment.BlogID)

		msgs := sink.Messages()
		require.Len(t, msgs, 1)
		assert.Equal(t, notify.BlogRoom(blogID.String()), msgs[0].Room)
		assert.Equal(t, notify.EventNewComment, msgs[0].Event)
		assert.Equal(t, comment.ID.String(), msgs[0].Payload["comment_id"])
	})

	t.Run("missing blog is not found and nothing is written", func(t *testing.T) {
		blogs := new(MockBlogStore)
		comments := new(MockCommentStore)

		blogs.On("GetByID", ctx, blogID.String()).Return(nil, errStoreMiss).Once()

		svc := content.NewCommentService(comments, blogs)

		_, err := svc.Create(ctx, callerID.String(), blogID.String(),
			content.CommentMessage{Content: "Nice post"})
		assert.Equal(t, content.ErrBlogNotFound, err)
		comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("empty content fails validation", func(t *testing.T) {
		svc := content.NewCommentService(new(MockCommentStore), new(MockBlogStore))

		_, err := svc.Create(ctx, callerID.String(), blogID.String(), content.CommentMessage{})
		require.Error(t, err)

		var richErr *errors.Error
		require.True(t, errors.As(err, &richErr))
		assert.Equal(t, errors.CategoryValidation, richErr.Category)
	})
}

func TestCommentUpdate(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	commentID := uuid.New()

	existing := func() *model.Comment {
		return &model.Comment{ID: commentID, UserID: ownerID, BlogID: uuid.New(), Content: "Old"}
	}

	t.Run("owner edits", func(t *testing.T) {
		comments := new(MockCommentStore)
		comments.On("GetByID", ctx, commentID.String()).Return(existing(), nil).Once()
		comments.On("Update", ctx, mock.AnythingOfType("*model.Comment")).Return(nil, nil).Once()

		svc := content.NewCommentService(comments, new(MockBlogStore))

		comment, err := svc.Update(ctx, ownerID.String(), model.RoleUser, commentID.String(),
			content.CommentMessage{Content: "New"})
		require.NoError(t, err)
		assert.Equal(t, "New", comment.Content)
	})

	t.Run("admin cannot edit another user's comment", func(t *testing.T) {
		comments := new(MockCommentStore)
		comments.On("GetByID", ctx, commentID.String()).Return(existing(), nil).Once()

		svc := content.NewCommentService(comments, new(MockBlogStore))

		_, err := svc.Update(ctx, uuid.New().String(), model.RoleAdmin, commentID.String(),
			content.CommentMessage{Content: "New"})
		require.Error(t, err)

		var richErr *errors.Error
		require.True(t, errors.As(err, &richErr))
		assert.Equal(t, errors.CategoryAuthz, richErr.Category)
	})

	t.Run("missing comment is not found before the ownership check", func(t *testing.T) {
		comments := new(MockCommentStore)
		comments.On("GetByID", ctx, commentID.String()).Return(nil, errStoreMiss).Once()

		svc := content.NewCommentService(comments, new(MockBlogStore))

		_, err := svc.Update(ctx, uuid.New().String(), model.RoleUser, commentID.String(),
			content.CommentMessage{Content: "New"})
		assert.Equal(t, content.ErrCommentNotFound, err)
	})
}

func TestCommentDelete(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	commentID := uuid.New()

	existing := func() *model.Comment {
		return &model.Comment{ID: commentID, UserID: ownerID}
	}

	t.Run("admin deletes another user's comment", func(t *testing.T) {
		comments := new(MockCommentStore)
		comments.On("GetByID", ctx, commentID.String()).Return(existing(), nil).Once()
		comments.On("Delete", ctx, commentID.String()).Return(nil).Once()

		svc := content.NewCommentService(comments, new(MockBlogStore))
		assert.NoError(t, svc.Delete(ctx, uuid.New().String(), model.RoleAdmin, commentID.String()))
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		comments := new(MockCommentStore)
		comments.On("GetByID", ctx, commentID.String()).Return(existing(), nil).Once()

		svc := content.NewCommentService(comments, new(MockBlogStore))

		err := svc.Delete(ctx, uuid.New().String(), model.RoleUser, commentID.String())
		require.Error(t, err)

		var richErr *errors.Error
		require.True(t, errors.As(err, &richErr))
		assert.Equal(t, errors.CategoryAuthz, richErr.Category)
	})
}
