package content

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/paperstack/blogd/model"
	"github.com/paperstack/blogd/notify"
	"github.com/paperstack/blogd/policy"
	"github.com/paperstack/blogd/repository"
)

// CommentStore is the persistence the comment service needs
type CommentStore interface {
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	ListByBlog(ctx context.Context, blogID string, opts repository.ListOptions) ([]*model.Comment, int, error)
	Create(ctx context.Context, comment *model.Comment) (*model.Comment, error)
	Update(ctx context.Context, comment *model.Comment) (*model.Comment, error)
	Delete(ctx context.Context, id string) error
}

// CommentMessage is the create/update payload
type CommentMessage struct {
	Content string `json:"content"`
}

// Validate will run validation rules
func (m CommentMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Content, validation.Required, validation.Length(1, 2000)),
	)
}

// CommentService runs comment CRUD guarded by the ownership policy
type CommentService struct {
	comments    CommentStore
	blogs       BlogStore
	broadcaster notify.Broadcaster
}

// NewCommentService creates a new CommentService
func NewCommentService(comments CommentStore, blogs BlogStore) *CommentService {
	return &CommentService{
		comments:    comments,
		blogs:       blogs,
		broadcaster: notify.Normalize(nil),
	}
}

func (s *CommentService) WithBroadcaster(b notify.Broadcaster) *CommentService {
	s.broadcaster = notify.Normalize(b)
	return s
}

// Create persists a comment on an existing blog and broadcasts it to the
// blog's room. A missing blog is NOT_FOUND before anything is written.
func (s *CommentService) Create(ctx context.Context, callerID, blogID string, msg CommentMessage) (*model.Comment, error) {
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "invalid comment payload")
	}

	uid, err := uuid.Parse(callerID)
	if err != nil {
		return nil, errors.New("invalid caller identifier", errors.CategoryBadInput)
	}

	blog, err := s.blogs.GetByID(ctx, blogID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrBlogNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load blog")
	}

	comment := &model.Comment{
		ID:      uuid.New(),
		UserID:  uid,
		BlogID:  blog.ID,
		Content: msg.Content,
	}

	created, err := s.comments.Create(ctx, comment)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create comment")
	}

	// best-effort push; delivery failures never fail the write
	s.broadcaster.Broadcast(ctx, notify.Message{
		Room:  notify.BlogRoom(blogID),
		Event: notify.EventNewComment,
		Payload: map[string]any{
			"blog_id":    blogID,
			"comment_id": created.ID.String(),
			"user_id":    callerID,
			"message":    fmt.Sprintf("New comment on blog %s", blogID),
		},
	})

	return created, nil
}

// ListByBlog returns a blog's comments, newest first
func (s *CommentService) ListByBlog(ctx context.Context, blogID string, opts repository.ListOptions) ([]*model.Comment, int, error) {
	if _, err := s.blogs.GetByID(ctx, blogID); err != nil {
		if errors.IsNotFound(err) {
			return nil, 0, ErrBlogNotFound
		}
		return nil, 0, errors.Wrap(err, errors.CategoryInternal, "failed to load blog")
	}
	return s.comments.ListByBlog(ctx, blogID, opts)
}

// Update edits a comment. Owner-only.
func (s *CommentService) Update(ctx context.Context, callerID string, callerRole model.UserRole, commentID string, msg CommentMessage) (*model.Comment, error) {
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "invalid comment payload")
	}

	comment, err := s.get(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if err := policy.Authorize(comment.UserID.String(), callerID, callerRole, policy.ActionUpdate); err != nil {
		return nil, err
	}

	comment.Content = msg.Content

	updated, err := s.comments.Update(ctx, comment)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update comment")
	}
	return updated, nil
}

// Delete removes a comment. Owner or admin.
func (s *CommentService) Delete(ctx context.Context, callerID string, callerRole model.UserRole, commentID string) error {
	comment, err := s.get(ctx, commentID)
	if err != nil {
		return err
	}

	if err := policy.Authorize(comment.UserID.String(), callerID, callerRole, policy.ActionDelete); err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, comment.ID.String()); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete comment")
	}
	return nil
}

func (s *CommentService) get(ctx context.Context, id string) (*model.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrCommentNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load comment")
	}
	return comment, nil
}
