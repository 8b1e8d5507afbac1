package store

import (
	"context"

	"gorm.io/gorm"

	"travelbudget/internal/models"
)

// InsertUser inserts user; an existing email yields ErrDuplicate.
func (s *Store) InsertUser(ctx context.Context, user *models.User) error {
	return s.run(ctx, func(db *gorm.DB) error {
		return db.Create(user).Error
	})
}

// FindUserByEmail looks a user up by its stored (lower-case) email.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.run(ctx, func(db *gorm.DB) error {
		return db.Where("email = ?", email).First(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByID looks a user up by id.
func (s *Store) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.run(ctx, func(db *gorm.DB) error {
		return db.Where("id = ?", id).First(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
