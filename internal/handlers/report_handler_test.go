package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "travelbudget/internal/errors"
	"travelbudget/internal/money"
	"travelbudget/internal/reconcile"
	"travelbudget/internal/services"
)

type mockReportService struct {
	getReconciliationFn func(ctx context.Context, userID string) (*services.ReconciliationReport, error)
}

func (m *mockReportService) GetReconciliation(ctx context.Context, userID string) (*services.ReconciliationReport, error) {
	if m.getReconciliationFn != nil {
		return m.getReconciliationFn(ctx, userID)
	}
	return &services.ReconciliationReport{}, nil
}

var _ services.ReportServicer = (*mockReportService)(nil)

func setupReportRouter(handler *ReportHandler) *gin.Engine {
	r := gin.New()
	r.GET("/reports/reconciliation", injectUserID(testUserID), handler.GetReconciliation)
	return r
}

func TestReportHandler_GetReconciliation(t *testing.T) {
	t.Run("returns 200 with report", func(t *testing.T) {
		var gotUser string
		svc := &mockReportService{
			getReconciliationFn: func(_ context.Context, userID string) (*services.ReconciliationReport, error) {
				gotUser = userID
				return &services.ReconciliationReport{
					Report: reconcile.Report{
						Budgets: []reconcile.BudgetLine{{
							BudgetID:  testBudgetID,
							Category:  "Food",
							Budgeted:  money.MustParse("100"),
							Spent:     money.MustParse("50"),
							Remaining: money.MustParse("50"),
						}},
						TotalBudget:    money.MustParse("100"),
						TotalSpent:     money.MustParse("50"),
						OverallBalance: money.MustParse("50"),
					},
					Currency: "USD",
					Display:  map[string]string{"overall_balance": "$50.00"},
				}, nil
			},
		}
		r := setupReportRouter(NewReportHandler(svc))

		rec := doRequest(r, "GET", "/reports/reconciliation", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotUser != testUserID {
			t.Errorf("expected user %s, got %s", testUserID, gotUser)
		}
		report := parseJSON(t, rec)["report"].(map[string]interface{})
		if report["overall_balance"] != 50.0 {
			t.Errorf("expected overall_balance 50, got %v", report["overall_balance"])
		}
		if report["currency"] != "USD" {
			t.Errorf("expected currency USD, got %v", report["currency"])
		}
		lines := report["budgets"].([]interface{})
		if line := lines[0].(map[string]interface{}); line["remaining"] != 50.0 {
			t.Errorf("expected remaining 50, got %v", line["remaining"])
		}
	})

	t.Run("returns 500 when store is unavailable", func(t *testing.T) {
		svc := &mockReportService{
			getReconciliationFn: func(context.Context, string) (*services.ReconciliationReport, error) {
				return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, context.DeadlineExceeded)
			},
		}
		r := setupReportRouter(NewReportHandler(svc))

		rec := doRequest(r, "GET", "/reports/reconciliation", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "STORE_UNAVAILABLE")
	})
}
