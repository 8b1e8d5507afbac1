package services

import (
	"context"

	apperrors "travelbudget/internal/errors"
	"travelbudget/internal/models"
	"travelbudget/internal/money"
)

// expenseService is the expense ledger.
type expenseService struct {
	store ExpenseStore
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(s ExpenseStore) ExpenseServicer {
	return &expenseService{store: s}
}

// ListExpenses returns the user's expenses and their total, summed at read
// time so it can never drift from the records.
func (s *expenseService) ListExpenses(ctx context.Context, userID string) (*ExpenseList, error) {
	expenses, err := s.store.ListExpenses(ctx, userID)
	if err != nil {
		return nil, mapStoreError(err, apperrors.ErrExpenseNotFound)
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}

	total := money.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}

	return &ExpenseList{Expenses: expenses, TotalExpenses: total}, nil
}

// CreateExpense records a new expense.
func (s *expenseService) CreateExpense(
	ctx context.Context,
	userID string,
	date models.Date,
	category string,
	amount money.Amount,
) (*models.Expense, error) {
	if err := validateExpense(date, category, amount); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:   userID,
		Date:     date,
		Category: category,
		Amount:   amount,
	}
	if err := s.store.InsertExpense(ctx, expense); err != nil {
		return nil, mapStoreError(err, apperrors.ErrExpenseNotFound)
	}
	return expense, nil
}

// UpdateExpense overwrites the date, category and amount of an owned expense.
func (s *expenseService) UpdateExpense(
	ctx context.Context,
	userID, expenseID string,
	date models.Date,
	category string,
	amount money.Amount,
) (*models.Expense, error) {
	if !validID(expenseID) {
		return nil, apperrors.ErrExpenseNotFound
	}
	if err := validateExpense(date, category, amount); err != nil {
		return nil, err
	}

	expense, err := s.store.UpdateExpense(ctx, userID, expenseID, date, category, amount)
	if err != nil {
		return nil, mapStoreError(err, apperrors.ErrExpenseNotFound)
	}
	return expense, nil
}

// DeleteExpense hard-deletes an owned expense.
func (s *expenseService) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	if !validID(expenseID) {
		return apperrors.ErrExpenseNotFound
	}
	if err := s.store.DeleteExpense(ctx, userID, expenseID); err != nil {
		return mapStoreError(err, apperrors.ErrExpenseNotFound)
	}
	return nil
}

func validateExpense(date models.Date, category string, amount money.Amount) error {
	if err := validateDate(date); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}
	return validateAmount(amount)
}
