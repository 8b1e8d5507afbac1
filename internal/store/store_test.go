package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"travelbudget/internal/models"
	"travelbudget/internal/money"
	"travelbudget/internal/testutil"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"record_not_found", gorm.ErrRecordNotFound, ErrNotFound},
		{"wrapped_record_not_found", fmt.Errorf("find: %w", gorm.ErrRecordNotFound), ErrNotFound},
		{"duplicated_key", gorm.ErrDuplicatedKey, ErrDuplicate},
		{"sqlite_unique", errors.New("UNIQUE constraint failed: budgets.user_id, budgets.category"), ErrDuplicate},
		{"postgres_unique", errors.New(`ERROR: duplicate key value violates unique constraint "idx_budgets_user_category"`), ErrDuplicate},
		{"deadline", context.DeadlineExceeded, ErrUnavailable},
		{"canceled", context.Canceled, ErrUnavailable},
		{"bad_conn", driver.ErrBadConn, ErrUnavailable},
		{"already_classified", ErrNotFound, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.in)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	t.Run("other_errors_pass_through", func(t *testing.T) {
		boom := errors.New("syntax error")
		if got := classify(boom); got != boom {
			t.Errorf("expected error to pass through, got %v", got)
		}
	})
}

func TestStoreCanceledContext(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	s := New(db, time.Second)
	user := testutil.CreateTestUser(t, db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ListBudgets(ctx, user.ID)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestInsertBudgetUniqueIndex(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	s := New(db, 0)
	ctx := context.Background()
	user := testutil.CreateTestUser(t, db)

	first := &models.Budget{UserID: user.ID, Category: "Food", Amount: money.MustParse("10")}
	if err := s.InsertBudget(ctx, first); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	second := &models.Budget{UserID: user.ID, Category: "Food", Amount: money.MustParse("20")}
	if err := s.InsertBudget(ctx, second); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

// openFileDB opens a file-backed sqlite database with a pool of several
// connections, so concurrent writes really do run on different connections.
func openFileDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "store.db") +
		"?_journal_mode=WAL&_busy_timeout=10000&_txlock=immediate&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Budget{}, &models.Expense{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get underlying DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(8)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestInsertBudgetRaceAcrossConnections(t *testing.T) {
	db := openFileDB(t)
	s := New(db, 30*time.Second)
	ctx := context.Background()
	user := testutil.CreateTestUser(t, db)

	const workers = 8
	start := make(chan struct{})
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs[i] = s.InsertBudget(ctx, &models.Budget{
				UserID:   user.ID,
				Category: "Flights",
				Amount:   money.MustParse("900"),
			})
		}(i)
	}
	close(start)
	wg.Wait()

	inserted := 0
	for _, err := range errs {
		switch {
		case err == nil:
			inserted++
		case !errors.Is(err, ErrDuplicate):
			t.Errorf("expected ErrDuplicate, got %v", err)
		}
	}
	if inserted != 1 {
		t.Errorf("expected exactly one insert, got %d", inserted)
	}

	budgets, err := s.ListBudgets(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(budgets) != 1 {
		t.Errorf("expected 1 stored budget, got %d", len(budgets))
	}
}

func TestInsertUserUniqueEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	s := New(db, 0)
	ctx := context.Background()

	if err := s.InsertUser(ctx, &models.User{Email: "a@example.com", Password: "x"}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := s.InsertUser(ctx, &models.User{Email: "a@example.com", Password: "y"})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestFindBudgetOwnership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	s := New(db, 0)
	ctx := context.Background()
	owner := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	budget := testutil.CreateTestBudget(t, db, owner.ID, "Food", "100")

	found, err := s.FindBudget(ctx, owner.ID, budget.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found.Amount.Equal(money.MustParse("100")) {
		t.Errorf("expected amount 100.00, got %s", found.Amount)
	}

	if _, err := s.FindBudget(ctx, other.ID, budget.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign budget, got %v", err)
	}
}

func TestUpdateBudgetCascade(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	s := New(db, 0)
	ctx := context.Background()
	user := testutil.CreateTestUser(t, db)
	budget := testutil.CreateTestBudget(t, db, user.ID, "Food", "100")
	expense := testutil.CreateTestExpense(t, db, user.ID, "2025-05-01", "Food", "30")

	updated, err := s.UpdateBudget(ctx, user.ID, budget.ID, "Meals", money.MustParse("120"), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Category != "Meals" {
		t.Errorf("expected Meals, got %s", updated.Category)
	}

	moved, err := s.FindExpense(ctx, user.ID, expense.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if moved.Category != "Meals" {
		t.Errorf("expected expense moved to Meals, got %s", moved.Category)
	}
}

func TestUpdateBudgetDuplicateRollsBack(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	s := New(db, 0)
	ctx := context.Background()
	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestBudget(t, db, user.ID, "Food", "100")
	hotel := testutil.CreateTestBudget(t, db, user.ID, "Hotel", "300")
	expense := testutil.CreateTestExpense(t, db, user.ID, "2025-05-01", "Hotel", "90")

	_, err := s.UpdateBudget(ctx, user.ID, hotel.ID, "Food", money.MustParse("300"), true)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	unchanged, err := s.FindExpense(ctx, user.ID, expense.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if unchanged.Category != "Hotel" {
		t.Errorf("expected expense to stay Hotel, got %s", unchanged.Category)
	}
}

func TestDeleteExpenseNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	s := New(db, 0)
	user := testutil.CreateTestUser(t, db)

	err := s.DeleteExpense(context.Background(), user.ID, "0190a5c4-0000-7000-8000-000000000000")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	if err := New(db, 0).Ping(context.Background()); err != nil {
		t.Errorf("expected ping to succeed, got %v", err)
	}
}
