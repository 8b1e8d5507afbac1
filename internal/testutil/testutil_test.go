package testutil_test

import (
	"testing"

	"travelbudget/internal/errors"
	"travelbudget/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "budgets", "expenses"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDB_Isolated(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	testutil.CreateTestUser(t, first)

	var count int64
	if err := second.Table("users").Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 0 {
		t.Errorf("expected an empty second database, got %d users", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have an ID")
	}

	budget := testutil.CreateTestBudget(t, db, user.ID, "Food", "100")
	if budget.Amount.String() != "100.00" {
		t.Errorf("expected budget amount 100.00, got %s", budget.Amount)
	}

	expense := testutil.CreateTestExpense(t, db, user.ID, "2025-04-01", "Food", "12.5")
	if expense.Date.String() != "2025-04-01" {
		t.Errorf("expected date 2025-04-01, got %s", expense.Date)
	}
	if expense.Amount.String() != "12.50" {
		t.Errorf("expected amount 12.50, got %s", expense.Amount)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrBudgetNotFound, "custom message")
	testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
}

func TestAssertValidationField(t *testing.T) {
	testutil.AssertValidationField(t, errors.Validation("amount", "must be positive"), "amount")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
