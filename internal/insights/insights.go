// Package insights derives financial observations from a user's
// transaction history.
//
// All observations are produced by an ordered list of deterministic
// rules over a precomputed set of figures. The same figures always
// produce the same observations, there is no hidden state and no
// randomness involved.
package insights

import (
	"sort"
	"strings"
	"time"

	"github.com/pocketledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Insight is a single human-readable observation.
type Insight struct {
	Title   string `json:"title" example:"Excellent Financial Health"`
	Message string `json:"message" example:"You saved 30.0% of your income in the last 30 days."`
}

// CategorySpend is the expense total for a single category.
type CategorySpend struct {
	Category string          `json:"category" example:"Groceries"`
	Amount   decimal.Decimal `json:"amount" example:"184.25"`
}

// Figures holds every aggregate the rules operate on. It is computed
// once per generation from the raw transaction windows.
type Figures struct {
	// Current window, the trailing 30 days
	Income    decimal.Decimal
	Expenses  decimal.Decimal
	Transfers decimal.Decimal

	// Previous window, days 31 to 60 back
	PreviousIncome    decimal.Decimal
	PreviousExpenses  decimal.Decimal
	PreviousTransfers decimal.Decimal

	// Income minus expenses minus transfers per window
	Balance         decimal.Decimal
	PreviousBalance decimal.Decimal

	// Up to five expense categories by total, descending. Ties are
	// broken by category name for a stable order.
	TopCategories []CategorySpend

	// Expense and transfer total over the trailing 7 days
	WeeklyBurn decimal.Decimal

	AverageExpense decimal.Decimal
	ExpenseCount   int

	// Distinct categories used in current-window expenses
	CategoryCount int

	LargestExpense decimal.Decimal

	// Split of current-window expenses at the large-expense threshold
	LargeExpenseTotal decimal.Decimal
	SmallExpenseTotal decimal.Decimal

	// Distinct income descriptions in the current window
	IncomeSources int
}

// largeExpenseThreshold separates "large" from "small" expenses.
var largeExpenseThreshold = decimal.NewFromInt(100)

// Compute aggregates the figures for the two transaction windows.
//
// now anchors the trailing 7-day burn-rate window and must be the same
// reference time that was used to select the current window.
func Compute(current, previous []models.Transaction, now time.Time) Figures {
	f := Figures{
		Income:            decimal.Zero,
		Expenses:          decimal.Zero,
		Transfers:         decimal.Zero,
		PreviousIncome:    decimal.Zero,
		PreviousExpenses:  decimal.Zero,
		PreviousTransfers: decimal.Zero,
		WeeklyBurn:        decimal.Zero,
		AverageExpense:    decimal.Zero,
		LargestExpense:    decimal.Zero,
		LargeExpenseTotal: decimal.Zero,
		SmallExpenseTotal: decimal.Zero,
	}

	categoryTotals := make(map[string]decimal.Decimal)
	incomeSources := make(map[string]struct{})
	weekStart := now.AddDate(0, 0, -7)

	for _, t := range current {
		switch t.Type {
		case models.TransactionTypeIncome:
			f.Income = f.Income.Add(t.Amount)
			incomeSources[strings.ToLower(strings.TrimSpace(t.Description))] = struct{}{}

		case models.TransactionTypeExpense:
			f.Expenses = f.Expenses.Add(t.Amount)
			f.ExpenseCount++

			if t.Amount.GreaterThanOrEqual(largeExpenseThreshold) {
				f.LargeExpenseTotal = f.LargeExpenseTotal.Add(t.Amount)
			} else {
				f.SmallExpenseTotal = f.SmallExpenseTotal.Add(t.Amount)
			}

			if t.Amount.GreaterThan(f.LargestExpense) {
				f.LargestExpense = t.Amount
			}

			if t.CategoryID != nil {
				name := t.Category.Name
				if name == "" {
					name = "Uncategorized"
				}

				total, ok := categoryTotals[name]
				if !ok {
					total = decimal.Zero
				}
				categoryTotals[name] = total.Add(t.Amount)
			}

		case models.TransactionTypeTransfer:
			f.Transfers = f.Transfers.Add(t.Amount)
		}

		if (t.Type == models.TransactionTypeExpense || t.Type == models.TransactionTypeTransfer) && !t.Date.Before(weekStart) {
			f.WeeklyBurn = f.WeeklyBurn.Add(t.Amount)
		}
	}

	for _, t := range previous {
		switch t.Type {
		case models.TransactionTypeIncome:
			f.PreviousIncome = f.PreviousIncome.Add(t.Amount)
		case models.TransactionTypeExpense:
			f.PreviousExpenses = f.PreviousExpenses.Add(t.Amount)
		case models.TransactionTypeTransfer:
			f.PreviousTransfers = f.PreviousTransfers.Add(t.Amount)
		}
	}

	f.Balance = f.Income.Sub(f.Expenses).Sub(f.Transfers)
	f.PreviousBalance = f.PreviousIncome.Sub(f.PreviousExpenses).Sub(f.PreviousTransfers)

	f.CategoryCount = len(categoryTotals)
	f.IncomeSources = len(incomeSources)

	if f.ExpenseCount > 0 {
		f.AverageExpense = f.Expenses.Div(decimal.NewFromInt(int64(f.ExpenseCount)))
	}

	names := make([]string, 0, len(categoryTotals))
	for name := range categoryTotals {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if !categoryTotals[names[i]].Equal(categoryTotals[names[j]]) {
			return categoryTotals[names[i]].GreaterThan(categoryTotals[names[j]])
		}
		return names[i] < names[j]
	})

	if len(names) > 5 {
		names = names[:5]
	}

	for _, name := range names {
		f.TopCategories = append(f.TopCategories, CategorySpend{
			Category: name,
			Amount:   categoryTotals[name],
		})
	}

	return f
}

// Generate runs every rule in order over the figures passed.
//
// Each rule independently contributes zero or one insight. A rule
// whose preconditions are not met (e.g. a ratio with a zero
// denominator) is skipped without affecting the other rules.
func Generate(f Figures) []Insight {
	generated := make([]Insight, 0, len(rules))
	for _, rule := range rules {
		if insight, ok := rule(f); ok {
			generated = append(generated, insight)
		}
	}

	return generated
}
