package engage

import "github.com/goliatone/go-errors"

const (
	TextCodeTargetNotFound = "TARGET_NOT_FOUND"
	TextCodeSelfTarget     = "SELF_TARGET"
	TextCodeRatingRange    = "RATING_RANGE"
	TextCodeRatingNotFound = "RATING_NOT_FOUND"
)

// ErrBlogNotFound is returned when a toggle or rating targets a missing blog
var ErrBlogNotFound = errors.New("Blog not found", errors.CategoryNotFound).
	WithTextCode(TextCodeTargetNotFound).
	WithCode(errors.CodeNotFound)

// ErrTargetUserNotFound is returned when a follow targets a missing user
var ErrTargetUserNotFound = errors.New("User not found", errors.CategoryNotFound).
	WithTextCode(TextCodeTargetNotFound).
	WithCode(errors.CodeNotFound)

// ErrSelfFollow rejects actor == target before anything touches the store
var ErrSelfFollow = errors.New("You cannot follow yourself", errors.CategoryValidation).
	WithTextCode(TextCodeSelfTarget).
	WithCode(errors.CodeBadRequest)

// ErrRatingRange rejects rating values outside [1,5]
var ErrRatingRange = errors.New("Rating must be between 1 and 5", errors.CategoryValidation).
	WithTextCode(TextCodeRatingRange).
	WithCode(errors.CodeBadRequest)

// ErrRatingNotFound is returned when deleting a rating that does not exist
var ErrRatingNotFound = errors.New("Rating not found", errors.CategoryNotFound).
	WithTextCode(TextCodeRatingNotFound).
	WithCode(errors.CodeNotFound)

// ErrBadID rejects identifiers that do not parse as UUIDs
var ErrBadID = errors.New("invalid identifier", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)
