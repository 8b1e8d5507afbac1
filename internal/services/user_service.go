package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "travelbudget/internal/errors"
	"travelbudget/internal/models"
	"travelbudget/internal/store"
)

// maxPasswordBytes is the longest password bcrypt accepts.
const maxPasswordBytes = 72

// userService handles signup, login and profile lookups.
type userService struct {
	store UserStore
	cost  int
}

// NewUserService creates a new UserServicer hashing passwords at bcrypt.DefaultCost.
func NewUserService(s UserStore) UserServicer {
	return NewUserServiceWithCost(s, bcrypt.DefaultCost)
}

// NewUserServiceWithCost creates a UserServicer with a custom bcrypt cost.
func NewUserServiceWithCost(s UserStore, cost int) UserServicer {
	return &userService{store: s, cost: cost}
}

// CreateUser registers a new user. The unique email index rejects duplicates.
func (s *userService) CreateUser(ctx context.Context, fullName, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperrors.Validation("email", "email is required")
	}
	if password == "" {
		return nil, apperrors.Validation("password", "password is required")
	}
	if len(password) > maxPasswordBytes {
		return nil, apperrors.Validation("password", "password must be at most 72 bytes")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		FullName: strings.TrimSpace(fullName),
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := s.store.InsertUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, mapStoreError(err, apperrors.ErrUserNotFound)
	}

	return user, nil
}

// AttemptLogin returns the user when email and password match. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *userService) AttemptLogin(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, mapStoreError(err, apperrors.ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if !validID(id) {
		return nil, apperrors.ErrUserNotFound
	}
	user, err := s.store.FindUserByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, apperrors.ErrUserNotFound)
	}
	return user, nil
}
