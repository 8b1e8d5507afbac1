package services

import (
	"context"

	"travelbudget/internal/models"
	"travelbudget/internal/money"
	"travelbudget/internal/reconcile"
)

// UserStore is the persistence the credential service needs.
type UserStore interface {
	InsertUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
}

// BudgetStore is the persistence the budget ledger needs. InsertBudget must
// be an atomic insert-if-absent on (user, category).
type BudgetStore interface {
	ListBudgets(ctx context.Context, userID string) ([]models.Budget, error)
	InsertBudget(ctx context.Context, budget *models.Budget) error
	UpdateBudget(ctx context.Context, userID, budgetID, category string, amount money.Amount, cascade bool) (*models.Budget, error)
	DeleteBudget(ctx context.Context, userID, budgetID string) error
}

// ExpenseStore is the persistence the expense ledger needs.
type ExpenseStore interface {
	ListExpenses(ctx context.Context, userID string) ([]models.Expense, error)
	InsertExpense(ctx context.Context, expense *models.Expense) error
	UpdateExpense(ctx context.Context, userID, expenseID string, date models.Date, category string, amount money.Amount) (*models.Expense, error)
	DeleteExpense(ctx context.Context, userID, expenseID string) error
}

// UserServicer defines the contract for signup, login and profile lookup.
type UserServicer interface {
	CreateUser(ctx context.Context, fullName, email, password string) (*models.User, error)
	AttemptLogin(ctx context.Context, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// BudgetServicer defines the contract of the budget ledger.
type BudgetServicer interface {
	ListBudgets(ctx context.Context, userID string) ([]models.Budget, error)
	CreateBudget(ctx context.Context, userID, category string, amount money.Amount) (*models.Budget, error)
	UpdateBudget(ctx context.Context, userID, budgetID, category string, amount money.Amount, renameExpenses bool) (*models.Budget, error)
	DeleteBudget(ctx context.Context, userID, budgetID string) error
}

// ExpenseList is the expense listing with its read-time total.
type ExpenseList struct {
	Expenses      []models.Expense `json:"expenses"`
	TotalExpenses money.Amount     `json:"total_expenses"`
}

// ExpenseServicer defines the contract of the expense ledger.
type ExpenseServicer interface {
	ListExpenses(ctx context.Context, userID string) (*ExpenseList, error)
	CreateExpense(ctx context.Context, userID string, date models.Date, category string, amount money.Amount) (*models.Expense, error)
	UpdateExpense(ctx context.Context, userID, expenseID string, date models.Date, category string, amount money.Amount) (*models.Expense, error)
	DeleteExpense(ctx context.Context, userID, expenseID string) error
}

// ReconciliationReport is the reconciliation of the caller's current budgets
// and expenses plus display strings in the configured currency.
type ReconciliationReport struct {
	reconcile.Report
	Currency string            `json:"currency"`
	Display  map[string]string `json:"display"`
}

// ReportServicer defines the contract for computing reconciliation reports.
type ReportServicer interface {
	GetReconciliation(ctx context.Context, userID string) (*ReconciliationReport, error)
}
