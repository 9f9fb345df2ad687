package repository

import (
	"context"

	"vionup/internal/model"

	"gorm.io/gorm"
)

// UserRepository defines the minimal auth lookups.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

type userRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("username = ? AND active", username).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}
