// Package reconcile derives spending-versus-budget figures from a user's
// budgets and expenses.
//
// Compute is a pure function: it performs no I/O, reads no clock and holds no
// state, so identical inputs always produce identical reports. Budgets and
// expenses are joined by exact, case-sensitive category equality. Spending in
// a category without a budget still counts toward TotalSpent and
// OverallBalance but gets no budget line.
package reconcile

import (
	"errors"
	"sort"

	"travelbudget/internal/models"
	"travelbudget/internal/money"
)

// ErrOverflow is returned when an aggregate leaves the representable range.
var ErrOverflow = errors.New("reconcile: aggregate out of range")

// BudgetLine is the spent and remaining figure for one budget.
type BudgetLine struct {
	BudgetID   string       `json:"budget_id"`
	Category   string       `json:"category"`
	Budgeted   money.Amount `json:"budgeted"`
	Spent      money.Amount `json:"spent"`
	Remaining  money.Amount `json:"remaining"`
	OverBudget bool         `json:"over_budget"`
}

// CategorySpend is the total spent in one category.
type CategorySpend struct {
	Category string       `json:"category"`
	Spent    money.Amount `json:"spent"`
}

// DaySpend is the total spent on one calendar date.
type DaySpend struct {
	Date  models.Date  `json:"date"`
	Spent money.Amount `json:"spent"`
}

// Report is the reconciliation of one budget set against one expense set.
type Report struct {
	Budgets         []BudgetLine    `json:"budgets"`
	SpentByCategory []CategorySpend `json:"spent_by_category"`
	Unbudgeted      []CategorySpend `json:"unbudgeted"`
	DailyTotals     []DaySpend      `json:"daily_totals"`
	TotalBudget     money.Amount    `json:"total_budget"`
	TotalSpent      money.Amount    `json:"total_spent"`
	OverallBalance  money.Amount    `json:"overall_balance"`
}

// Compute builds the report for budgets and expenses.
func Compute(budgets []models.Budget, expenses []models.Expense) (Report, error) {
	spent := make(map[string]money.Amount)
	daily := make(map[string]DaySpend)
	totalSpent := money.Zero
	for _, e := range expenses {
		spent[e.Category] = spent[e.Category].Add(e.Amount)
		totalSpent = totalSpent.Add(e.Amount)

		key := e.Date.String()
		day := daily[key]
		day.Date = e.Date
		day.Spent = day.Spent.Add(e.Amount)
		daily[key] = day
	}

	budgeted := make(map[string]bool, len(budgets))
	lines := make([]BudgetLine, 0, len(budgets))
	totalBudget := money.Zero
	for _, b := range budgets {
		budgeted[b.Category] = true
		totalBudget = totalBudget.Add(b.Amount)

		s := spent[b.Category]
		remaining := b.Amount.Sub(s)
		lines = append(lines, BudgetLine{
			BudgetID:   b.ID,
			Category:   b.Category,
			Budgeted:   b.Amount,
			Spent:      s,
			Remaining:  remaining,
			OverBudget: remaining.IsNegative(),
		})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Category != lines[j].Category {
			return lines[i].Category < lines[j].Category
		}
		return lines[i].BudgetID < lines[j].BudgetID
	})

	categories := make([]string, 0, len(spent))
	for c := range spent {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	byCategory := make([]CategorySpend, 0, len(categories))
	unbudgeted := make([]CategorySpend, 0)
	for _, c := range categories {
		cs := CategorySpend{Category: c, Spent: spent[c]}
		byCategory = append(byCategory, cs)
		if !budgeted[c] {
			unbudgeted = append(unbudgeted, cs)
		}
	}

	days := make([]DaySpend, 0, len(daily))
	for _, d := range daily {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date.Time) })

	balance := totalBudget.Sub(totalSpent)
	for _, a := range []money.Amount{totalBudget, totalSpent, balance} {
		if !a.InRange() {
			return Report{}, ErrOverflow
		}
	}

	return Report{
		Budgets:         lines,
		SpentByCategory: byCategory,
		Unbudgeted:      unbudgeted,
		DailyTotals:     days,
		TotalBudget:     totalBudget,
		TotalSpent:      totalSpent,
		OverallBalance:  balance,
	}, nil
}

// SpentIn returns the total spent in category, zero when there is none.
func (r Report) SpentIn(category string) money.Amount {
	for _, cs := range r.SpentByCategory {
		if cs.Category == category {
			return cs.Spent
		}
	}
	return money.Zero
}

// Line returns the budget line for budgetID.
func (r Report) Line(budgetID string) (BudgetLine, bool) {
	for _, l := range r.Budgets {
		if l.BudgetID == budgetID {
			return l, true
		}
	}
	return BudgetLine{}, false
}
