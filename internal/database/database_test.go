package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"travelbudget/internal/config"
	"travelbudget/internal/logger"
	"travelbudget/internal/models"
	"travelbudget/internal/money"
	"travelbudget/internal/store"
)

func init() {
	logger.Init("test", "")
}

func newSQLiteManager(t *testing.T) *Manager {
	t.Helper()

	cfg, err := NewConfig(&config.Config{
		DBDriver: DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "travelbudget.db"),
	})
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })

	if err := m.RunMigrations(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return m
}

func TestNewConfig(t *testing.T) {
	t.Run("postgres", func(t *testing.T) {
		cfg, err := NewConfig(&config.Config{
			DBDriver: DriverPostgres, DBHost: "db", DBPort: "5432",
			DBUser: "app", DBPassword: "p@ss", DBName: "travel", DBSSLMode: "disable",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := cfg.DSN(); got != "host=db port=5432 user=app password=p@ss dbname=travel sslmode=disable" {
			t.Errorf("unexpected DSN %q", got)
		}
		if got := cfg.MigrateURL(); got != "postgres://app:p%40ss@db:5432/travel?sslmode=disable" {
			t.Errorf("unexpected migrate URL %q", got)
		}
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg, err := NewConfig(&config.Config{DBDriver: DriverSQLite, DBPath: "/tmp/tb.db"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := cfg.MigrateURL(); got != "sqlite3:///tmp/tb.db" {
			t.Errorf("unexpected migrate URL %q", got)
		}
	})

	t.Run("unknown_driver", func(t *testing.T) {
		if _, err := NewConfig(&config.Config{DBDriver: "mysql"}); err == nil {
			t.Error("expected error for unsupported driver")
		}
	})
}

func TestMigrationsMatchStore(t *testing.T) {
	m := newSQLiteManager(t)
	s := store.New(m.DB(), 0)
	ctx := context.Background()

	user := &models.User{FullName: "Migrated", Email: "m@example.com", Password: "x"}
	if err := s.InsertUser(ctx, user); err != nil {
		t.Fatalf("insert user: %v", err)
	}

	budget := &models.Budget{UserID: user.ID, Category: "Food", Amount: money.MustParse("100")}
	if err := s.InsertBudget(ctx, budget); err != nil {
		t.Fatalf("insert budget: %v", err)
	}
	dup := &models.Budget{UserID: user.ID, Category: "Food", Amount: money.MustParse("5")}
	if err := s.InsertBudget(ctx, dup); !errors.Is(err, store.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate from unique index, got %v", err)
	}

	date, _ := models.ParseDate("2025-05-01")
	expense := &models.Expense{UserID: user.ID, Date: date, Category: "Food", Amount: money.MustParse("12.34")}
	if err := s.InsertExpense(ctx, expense); err != nil {
		t.Fatalf("insert expense: %v", err)
	}

	expenses, err := s.ListExpenses(ctx, user.ID)
	if err != nil {
		t.Fatalf("list expenses: %v", err)
	}
	if len(expenses) != 1 || expenses[0].Date.String() != "2025-05-01" || expenses[0].Amount.String() != "12.34" {
		t.Errorf("unexpected expenses: %+v", expenses)
	}
}

func TestMigrationsRejectNonPositiveAmount(t *testing.T) {
	m := newSQLiteManager(t)
	db := m.DB()

	user := &models.User{Email: "z@example.com", Password: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("insert user: %v", err)
	}

	err := db.Create(&models.Budget{UserID: user.ID, Category: "Food", Amount: money.Zero}).Error
	if err == nil {
		t.Error("expected CHECK constraint to reject a zero budget")
	}
}

func TestMigrateDownAndVersion(t *testing.T) {
	m := newSQLiteManager(t)

	mig, err := NewMigrate(m.config)
	if err != nil {
		t.Fatalf("failed to create migrate: %v", err)
	}
	defer mig.Close()

	version, dirty, err := mig.Version()
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if version != 3 || dirty {
		t.Errorf("expected clean version 3, got %d dirty=%v", version, dirty)
	}

	if err := mig.Steps(-1); err != nil {
		t.Fatalf("down: %v", err)
	}
	if version, _, _ := mig.Version(); version != 2 {
		t.Errorf("expected version 2 after one step down, got %d", version)
	}
}
