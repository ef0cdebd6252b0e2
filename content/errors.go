package content

import "github.com/goliatone/go-errors"

const (
	TextCodeBlogNotFound    = "BLOG_NOT_FOUND"
	TextCodeCommentNotFound = "COMMENT_NOT_FOUND"
)

// ErrBlogNotFound is returned before any ownership check runs, so a denial
// never reveals whether the blog exists.
var ErrBlogNotFound = errors.New("Blog not found", errors.CategoryNotFound).
	WithTextCode(TextCodeBlogNotFound).
	WithCode(errors.CodeNotFound)

// ErrCommentNotFound mirrors ErrBlogNotFound for comments
var ErrCommentNotFound = errors.New("Comment not found", errors.CategoryNotFound).
	WithTextCode(TextCodeCommentNotFound).
	WithCode(errors.CodeNotFound)
