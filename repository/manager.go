package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/uptrace/bun"
)

// ListOptions carries pagination for list queries
type ListOptions struct {
	Page  int
	Limit int
}

const defaultLimit = 20

func (o ListOptions) normalize() (offset, limit int) {
	limit = o.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	page := o.Page
	if page <= 0 {
		page = 1
	}
	return (page - 1) * limit, limit
}

// Manager exposes all repositories
type Manager interface {
	Validate() error
	MustValidate()
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
	Users() *UsersRepository
	Blogs() *BlogsRepository
	Comments() *CommentsRepository
	Likes() *LikesRepository
	Follows() *FollowsRepository
	Ratings() *RatingsRepository
}

type mngr struct {
	db       *bun.DB
	users    *UsersRepository
	blogs    *BlogsRepository
	comments *CommentsRepository
	likes    *LikesRepository
	follows  *FollowsRepository
	ratings  *RatingsRepository
}

func NewManager(db *bun.DB) Manager {
	return &mngr{
		db:       db,
		users:    NewUsersRepository(db),
		blogs:    NewBlogsRepository(db),
		comments: NewCommentsRepository(db),
		likes:    NewLikesRepository(db),
		follows:  NewFollowsRepository(db),
		ratings:  NewRatingsRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}
	if m.blogs == nil {
		return errors.New("repository blogs should be initialized")
	}
	if m.comments == nil {
		return errors.New("repository comments should be initialized")
	}
	if m.likes == nil {
		return errors.New("repository likes should be initialized")
	}
	if m.follows == nil {
		return errors.New("repository follows should be initialized")
	}
	if m.ratings == nil {
		return errors.New("repository ratings should be initialized")
	}
	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() *UsersRepository       { return m.users }
func (m mngr) Blogs() *BlogsRepository       { return m.blogs }
func (m mngr) Comments() *CommentsRepository { return m.comments }
func (m mngr) Likes() *LikesRepository       { return m.likes }
func (m mngr) Follows() *FollowsRepository   { return m.follows }
func (m mngr) Ratings() *RatingsRepository   { return m.ratings }
