package services

import (
	"errors"
	"strings"

	apperrors "travelbudget/internal/errors"
	"travelbudget/internal/models"
	"travelbudget/internal/money"
	"travelbudget/internal/store"
	"travelbudget/internal/uuid"
)

func validateCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return apperrors.Validation("category", "category is required")
	}
	return nil
}

func validateAmount(amount money.Amount) error {
	if !amount.IsPositive() {
		return apperrors.Validation("amount", "amount must be greater than 0")
	}
	if !amount.InRange() {
		return apperrors.Validation("amount", "amount is too large")
	}
	return nil
}

func validateDate(date models.Date) error {
	if date.IsZero() {
		return apperrors.Validation("date", "date is required")
	}
	return nil
}

// mapStoreError converts a store failure into the AppError the caller sees.
// notFound is returned for a missing or foreign record.
func mapStoreError(err error, notFound *apperrors.AppError) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return notFound
	case errors.Is(err, store.ErrUnavailable):
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	default:
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}

// validID reports whether id can name a record at all. Malformed ids are
// answered as not found without touching the store.
func validID(id string) bool {
	return uuid.IsValid(id)
}
