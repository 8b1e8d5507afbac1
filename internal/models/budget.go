package models

import "travelbudget/internal/money"

// Budget is a user's spending cap for one category. A user holds at most one
// budget per category; the (user_id, category) unique index enforces it.
type Budget struct {
	Base
	UserID   string       `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_user_category" json:"user_id"`
	Category string       `gorm:"not null;uniqueIndex:idx_budgets_user_category" json:"category"`
	Amount   money.Amount `gorm:"type:numeric(14,2);not null" json:"amount"`
}
