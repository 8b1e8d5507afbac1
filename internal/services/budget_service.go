package services

import (
	"context"
	"errors"

	apperrors "travelbudget/internal/errors"
	"travelbudget/internal/models"
	"travelbudget/internal/money"
	"travelbudget/internal/store"
)

// budgetService is the budget ledger.
type budgetService struct {
	store BudgetStore
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(s BudgetStore) BudgetServicer {
	return &budgetService{store: s}
}

// ListBudgets returns all budgets owned by userID.
func (s *budgetService) ListBudgets(ctx context.Context, userID string) ([]models.Budget, error) {
	budgets, err := s.store.ListBudgets(ctx, userID)
	if err != nil {
		return nil, mapStoreError(err, apperrors.ErrBudgetNotFound)
	}
	if budgets == nil {
		budgets = []models.Budget{}
	}
	return budgets, nil
}

// CreateBudget creates a budget for category. A second budget for the same
// category is rejected by the store's unique index, not by a lookup here, so
// two racing creates cannot both succeed.
func (s *budgetService) CreateBudget(ctx context.Context, userID, category string, amount money.Amount) (*models.Budget, error) {
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	budget := &models.Budget{
		UserID:   userID,
		Category: category,
		Amount:   amount,
	}
	if err := s.store.InsertBudget(ctx, budget); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.ErrDuplicateCategory
		}
		return nil, mapStoreError(err, apperrors.ErrBudgetNotFound)
	}

	return budget, nil
}

// UpdateBudget overwrites the category and amount of an owned budget.
// Renaming onto a category that already has a budget is rejected with
// DUPLICATE_CATEGORY. renameExpenses moves the expenses recorded under the
// old category along with the budget.
func (s *budgetService) UpdateBudget(
	ctx context.Context,
	userID, budgetID, category string,
	amount money.Amount,
	renameExpenses bool,
) (*models.Budget, error) {
	if !validID(budgetID) {
		return nil, apperrors.ErrBudgetNotFound
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	budget, err := s.store.UpdateBudget(ctx, userID, budgetID, category, amount, renameExpenses)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.ErrDuplicateCategory
		}
		return nil, mapStoreError(err, apperrors.ErrBudgetNotFound)
	}
	return budget, nil
}

// DeleteBudget hard-deletes an owned budget. A second delete of the same id
// is BUDGET_NOT_FOUND.
func (s *budgetService) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	if !validID(budgetID) {
		return apperrors.ErrBudgetNotFound
	}
	if err := s.store.DeleteBudget(ctx, userID, budgetID); err != nil {
		return mapStoreError(err, apperrors.ErrBudgetNotFound)
	}
	return nil
}
