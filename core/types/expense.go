// Package types - Expense ledger types
package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies a recorded expense
type ExpenseCategory string

const (
	ExpenseMaterials ExpenseCategory = "materials"
	ExpenseLabor     ExpenseCategory = "labor"
	ExpensePermits   ExpenseCategory = "permits"
	ExpenseEquipment ExpenseCategory = "equipment"
	ExpenseOverhead  ExpenseCategory = "overhead"
	ExpenseOther     ExpenseCategory = "other"
)

// IsValid checks if the category is known
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseMaterials, ExpenseLabor, ExpensePermits, ExpenseEquipment, ExpenseOverhead, ExpenseOther:
		return true
	default:
		return false
	}
}

// Expense is a recorded project cost
type Expense struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    ExpenseCategory `json:"category"`
	ProjectName string          `json:"projectName,omitempty"`
	IncurredOn  time.Time       `json:"incurredOn"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ExpenseFilter narrows an expense listing
type ExpenseFilter struct {
	ProjectName string
	Category    ExpenseCategory
}

// ExpenseSummary aggregates expenses by category
type ExpenseSummary struct {
	Count      int                                 `json:"count"`
	Total      decimal.Decimal                     `json:"total"`
	ByCategory map[ExpenseCategory]decimal.Decimal `json:"byCategory"`
}
