package models

import "travelbudget/internal/money"

// Expense is a single spend event. It is linked to a Budget only through an
// equal (user_id, category) pair.
type Expense struct {
	Base
	UserID   string       `gorm:"type:uuid;not null;index:idx_expenses_user_category" json:"user_id"`
	Date     Date         `gorm:"type:date;not null" json:"date"`
	Category string       `gorm:"not null;index:idx_expenses_user_category" json:"category"`
	Amount   money.Amount `gorm:"type:numeric(14,2);not null" json:"amount"`
}
