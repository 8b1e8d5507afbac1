package store

import (
	"context"

	"gorm.io/gorm"

	"travelbudget/internal/models"
	"travelbudget/internal/money"
)

// ListBudgets returns every budget owned by userID, ordered by category.
func (s *Store) ListBudgets(ctx context.Context, userID string) ([]models.Budget, error) {
	var budgets []models.Budget
	err := s.run(ctx, func(db *gorm.DB) error {
		return db.Where("user_id = ?", userID).Order("category ASC").Find(&budgets).Error
	})
	if err != nil {
		return nil, err
	}
	return budgets, nil
}

// FindBudget returns the budget with the given id if userID owns it.
func (s *Store) FindBudget(ctx context.Context, userID, budgetID string) (*models.Budget, error) {
	var budget models.Budget
	err := s.run(ctx, func(db *gorm.DB) error {
		return db.Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error
	})
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

// InsertBudget inserts budget. The (user_id, category) unique index decides
// between concurrent inserts for the same category; the loser gets ErrDuplicate.
func (s *Store) InsertBudget(ctx context.Context, budget *models.Budget) error {
	return s.run(ctx, func(db *gorm.DB) error {
		return db.Create(budget).Error
	})
}

// UpdateBudget overwrites the category and amount of an owned budget. When
// cascade is set and the category changes, the owner's expenses recorded under
// the old category are moved to the new one in the same transaction.
func (s *Store) UpdateBudget(
	ctx context.Context,
	userID, budgetID, category string,
	amount money.Amount,
	cascade bool,
) (*models.Budget, error) {
	var budget models.Budget
	err := s.run(ctx, func(db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
				return err
			}

			previous := budget.Category
			budget.Category = category
			budget.Amount = amount
			if err := tx.Save(&budget).Error; err != nil {
				return err
			}

			if cascade && previous != category {
				return tx.Model(&models.Expense{}).
					Where("user_id = ? AND category = ?", userID, previous).
					Update("category", category).Error
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

// DeleteBudget hard-deletes an owned budget. Expenses are left untouched.
func (s *Store) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	return s.run(ctx, func(db *gorm.DB) error {
		res := db.Where("id = ? AND user_id = ?", budgetID, userID).Delete(&models.Budget{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
