// Package expense persists the project expense ledger.
package expense

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"buildaide/core/types"
	apperrors "buildaide/internal/errors"
)

// ErrNotFound is returned when a requested expense does not exist
var ErrNotFound = errors.New("expense not found")

// Repository stores expenses
type Repository interface {
	// Create validates e, assigns its ID and timestamps and stores it
	Create(ctx context.Context, e *types.Expense) error
	Get(ctx context.Context, id uuid.UUID) (*types.Expense, error)
	// List returns matching expenses, newest first
	List(ctx context.Context, filter types.ExpenseFilter) ([]*types.Expense, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Validate normalizes e in place and rejects incomplete expenses.
// An empty category becomes "other".
func Validate(e *types.Expense) error {
	if e == nil {
		return apperrors.Input("expense is required")
	}
	e.Description = strings.TrimSpace(e.Description)
	e.ProjectName = strings.TrimSpace(e.ProjectName)
	if e.Description == "" {
		return apperrors.Input("expense description is required")
	}
	// cents, matching the NUMERIC(14,2) column
	e.Amount = e.Amount.Round(2)
	if !e.Amount.IsPositive() {
		return apperrors.Input("expense amount must be positive")
	}
	if e.Category == "" {
		e.Category = types.ExpenseOther
	}
	e.Category = types.ExpenseCategory(strings.ToLower(string(e.Category)))
	if !e.Category.IsValid() {
		return apperrors.Input("unknown expense category").WithContext("category", string(e.Category))
	}
	return nil
}

// stamp assigns identity and timestamps to a validated expense
func stamp(e *types.Expense, now time.Time) {
	e.ID = uuid.New()
	e.CreatedAt = now.UTC()
	if e.IncurredOn.IsZero() {
		e.IncurredOn = e.CreatedAt
	}
	e.IncurredOn = e.IncurredOn.UTC().Truncate(24 * time.Hour)
}

// Summarize totals expenses overall and per category
func Summarize(expenses []*types.Expense) types.ExpenseSummary {
	s := types.ExpenseSummary{
		Total:      decimal.Zero,
		ByCategory: map[types.ExpenseCategory]decimal.Decimal{},
	}
	for _, e := range expenses {
		s.Count++
		s.Total = s.Total.Add(e.Amount)
		s.ByCategory[e.Category] = s.ByCategory[e.Category].Add(e.Amount)
	}
	return s
}

func matches(e *types.Expense, f types.ExpenseFilter) bool {
	if f.ProjectName != "" && e.ProjectName != f.ProjectName {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	return true
}
