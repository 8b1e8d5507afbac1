package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	apperrors "travelbudget/internal/errors"
	"travelbudget/internal/models"
	"travelbudget/internal/reconcile"
)

// reportService loads a user's budgets and expenses and reconciles them.
type reportService struct {
	budgets  BudgetStore
	expenses ExpenseStore
	currency string
}

// NewReportService creates a new ReportServicer. currency is the ISO 4217
// code used for the display strings; amounts are never converted.
func NewReportService(budgets BudgetStore, expenses ExpenseStore, currency string) ReportServicer {
	return &reportService{budgets: budgets, expenses: expenses, currency: currency}
}

// GetReconciliation recomputes the report from the current records. Both sets
// are loaded concurrently; if either load fails the report is aborted rather
// than computed from a partial snapshot.
func (s *reportService) GetReconciliation(ctx context.Context, userID string) (*ReconciliationReport, error) {
	var (
		budgets  []models.Budget
		expenses []models.Expense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		budgets, err = s.budgets.ListBudgets(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.expenses.ListExpenses(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, mapStoreError(err, apperrors.ErrInternalServer)
	}

	report, err := reconcile.Compute(budgets, expenses)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &ReconciliationReport{
		Report:   report,
		Currency: s.currency,
		Display: map[string]string{
			"total_budget":    report.TotalBudget.Format(s.currency),
			"total_spent":     report.TotalSpent.Format(s.currency),
			"overall_balance": report.OverallBalance.Format(s.currency),
		},
	}, nil
}
