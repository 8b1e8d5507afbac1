package models

// User represents an account holder. Budgets and expenses reference it by ID.
type User struct {
	Base
	FullName string    `gorm:"not null" json:"full_name"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Budgets  []Budget  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Expenses []Expense `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
