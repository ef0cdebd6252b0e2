package repository

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/paperstack/blogd/model"
)

// UsersRepository persists users with bun
type UsersRepository struct {
	db *bun.DB
}

// NewUsersRepository creates a new repository
func NewUsersRepository(db *bun.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

func (r *UsersRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.NewSelect().
		Model(&user).
		Where("usr.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	return &user, nil
}

func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.NewSelect().
		Model(&user).
		Where("usr.email = ?", email).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	return &user, nil
}

func (r *UsersRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.NewSelect().
		Model(&user).
		Where("usr.username = ?", username).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	return &user, nil
}

func (r *UsersRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	now := time.Now()
	user.CreatedAt = &now
	user.UpdatedAt = &now
	if _, err := r.db.NewInsert().Model(user).Exec(ctx); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UsersRepository) Update(ctx context.Context, user *model.User) (*model.User, error) {
	now := time.Now()
	user.UpdatedAt = &now
	if _, err := r.db.NewUpdate().
		Model(user).
		WherePK().
		Exec(ctx); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UsersRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.NewDelete().
		Model((*model.User)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}
