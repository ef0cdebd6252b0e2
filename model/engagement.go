package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Like is a unique (user, blog) edge. Existence of the row is the state.
type Like struct {
	bun.BaseModel `bun:"table:likes,alias:lke"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid,unique:likes_user_blog" json:"user_id,omitempty"`
	BlogID        uuid.UUID  `bun:"blog_id,notnull,type:uuid,unique:likes_user_blog" json:"blog_id,omitempty"`
	User          *User      `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// Follow is a unique (follower, followee) edge between users.
type Follow struct {
	bun.BaseModel `bun:"table:follows,alias:flw"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	FollowerID    uuid.UUID  `bun:"follower_id,notnull,type:uuid,unique:follows_pair" json:"follower_id,omitempty"`
	FolloweeID    uuid.UUID  `bun:"followee_id,notnull,type:uuid,unique:follows_pair" json:"followee_id,omitempty"`
	Follower      *User      `bun:"rel:belongs-to,join:follower_id=id" json:"follower,omitempty"`
	Followee      *User      `bun:"rel:belongs-to,join:followee_id=id" json:"followee,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// BlogRating is keyed uniquely by (user, blog); a second rating from the
// same user overwrites rather than duplicates.
type BlogRating struct {
	bun.BaseModel `bun:"table:blog_ratings,alias:rtg"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID        uuid.UUID  `bun:"user_id,notnull,type:uuid,unique:ratings_user_blog" json:"user_id,omitempty"`
	BlogID        uuid.UUID  `bun:"blog_id,notnull,type:uuid,unique:ratings_user_blog" json:"blog_id,omitempty"`
	User          *User      `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Value         int        `bun:"value,notnull" json:"value,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}
