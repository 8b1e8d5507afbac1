package store

import (
	"context"

	"gorm.io/gorm"

	"travelbudget/internal/models"
	"travelbudget/internal/money"
)

// ListExpenses returns every expense owned by userID, newest date first.
func (s *Store) ListExpenses(ctx context.Context, userID string) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.run(ctx, func(db *gorm.DB) error {
		return db.Where("user_id = ?", userID).
			Order("date DESC").
			Order("created_at DESC").
			Order("id DESC").
			Find(&expenses).Error
	})
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

// FindExpense returns the expense with the given id if userID owns it.
func (s *Store) FindExpense(ctx context.Context, userID, expenseID string) (*models.Expense, error) {
	var expense models.Expense
	err := s.run(ctx, func(db *gorm.DB) error {
		return db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error
	})
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// InsertExpense inserts expense.
func (s *Store) InsertExpense(ctx context.Context, expense *models.Expense) error {
	return s.run(ctx, func(db *gorm.DB) error {
		return db.Create(expense).Error
	})
}

// UpdateExpense overwrites the date, category and amount of an owned expense.
func (s *Store) UpdateExpense(
	ctx context.Context,
	userID, expenseID string,
	date models.Date,
	category string,
	amount money.Amount,
) (*models.Expense, error) {
	var expense models.Expense
	err := s.run(ctx, func(db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
				return err
			}
			expense.Date = date
			expense.Category = category
			expense.Amount = amount
			return tx.Save(&expense).Error
		})
	})
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// DeleteExpense hard-deletes an owned expense.
func (s *Store) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	return s.run(ctx, func(db *gorm.DB) error {
		res := db.Where("id = ? AND user_id = ?", expenseID, userID).Delete(&models.Expense{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
