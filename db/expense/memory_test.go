package expense

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildaide/core/types"
	apperrors "buildaide/internal/errors"
)

func newExpense(desc, amount string, cat types.ExpenseCategory, project string) *types.Expense {
	return &types.Expense{
		Description: desc,
		Amount:      decimal.RequireFromString(amount),
		Category:    cat,
		ProjectName: project,
	}
}

func TestMemoryRepository_CreateGet(t *testing.T) {
	repo := NewMemoryRepository()
	fixed := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	repo.now = func() time.Time { return fixed }
	ctx := context.Background()

	e := newExpense("  Cabinet hardware ", "412.75", types.ExpenseMaterials, "kitchen")
	require.NoError(t, repo.Create(ctx, e))

	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, "Cabinet hardware", e.Description)
	assert.Equal(t, fixed, e.CreatedAt)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), e.IncurredOn)

	got, err := repo.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e, got)

	// returned values are copies
	got.Description = "changed"
	again, err := repo.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cabinet hardware", again.Description)
}

func TestMemoryRepository_CreateRejects(t *testing.T) {
	tests := []struct {
		name string
		e    *types.Expense
	}{
		{"nil", nil},
		{"no description", newExpense("  ", "10", types.ExpenseLabor, "")},
		{"zero amount", newExpense("Tile", "0", types.ExpenseMaterials, "")},
		{"negative amount", newExpense("Tile", "-5", types.ExpenseMaterials, "")},
		{"amount rounds to zero", newExpense("Tile", "0.004", types.ExpenseMaterials, "")},
		{"bad category", newExpense("Tile", "5", "snacks", "")},
	}

	repo := NewMemoryRepository()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(context.Background(), tt.e)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.TypeInput))
		})
	}

	list, err := repo.List(context.Background(), types.ExpenseFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryRepository_RoundsAmountToCents(t *testing.T) {
	repo := NewMemoryRepository()
	e := newExpense("Grout", "12.345", types.ExpenseMaterials, "")
	require.NoError(t, repo.Create(context.Background(), e))
	assert.Equal(t, "12.35", e.Amount.String())

	got, err := repo.Get(context.Background(), e.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("12.35").Equal(got.Amount))
}

func TestMemoryRepository_DefaultCategory(t *testing.T) {
	repo := NewMemoryRepository()
	e := newExpense("Dumpster rental", "350", "", "")
	require.NoError(t, repo.Create(context.Background(), e))
	assert.Equal(t, types.ExpenseOther, e.Category)

	upper := newExpense("Crew", "900", "LABOR", "")
	require.NoError(t, repo.Create(context.Background(), upper))
	assert.Equal(t, types.ExpenseLabor, upper.Category)
}

func TestMemoryRepository_ListNewestFirstAndFilter(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	a := newExpense("Permit", "250", types.ExpensePermits, "kitchen")
	b := newExpense("Decking boards", "1800", types.ExpenseMaterials, "deck")
	c := newExpense("Countertop", "3200", types.ExpenseMaterials, "kitchen")
	for _, e := range []*types.Expense{a, b, c} {
		require.NoError(t, repo.Create(ctx, e))
	}

	all, err := repo.List(ctx, types.ExpenseFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uuid.UUID{c.ID, b.ID, a.ID}, ids(all))

	kitchen, err := repo.List(ctx, types.ExpenseFilter{ProjectName: "kitchen"})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{c.ID, a.ID}, ids(kitchen))

	materials, err := repo.List(ctx, types.ExpenseFilter{Category: types.ExpenseMaterials})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{c.ID, b.ID}, ids(materials))
}

func TestMemoryRepository_Delete(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	e := newExpense("Paint", "120", types.ExpenseMaterials, "")
	require.NoError(t, repo.Create(ctx, e))
	require.NoError(t, repo.Delete(ctx, e.ID))

	_, err := repo.Get(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, e.ID), ErrNotFound)

	list, err := repo.List(ctx, types.ExpenseFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryRepository_Concurrent(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Create(ctx, newExpense("Nails", "3.10", types.ExpenseMaterials, "deck"))
			_, _ = repo.List(ctx, types.ExpenseFilter{ProjectName: "deck"})
		}()
	}
	wg.Wait()

	list, err := repo.List(ctx, types.ExpenseFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 50)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]*types.Expense{
		newExpense("Tile", "100.10", types.ExpenseMaterials, ""),
		newExpense("Grout", "20.05", types.ExpenseMaterials, ""),
		newExpense("Installer", "600", types.ExpenseLabor, ""),
	})

	assert.Equal(t, 3, s.Count)
	assert.True(t, decimal.RequireFromString("720.15").Equal(s.Total))
	assert.True(t, decimal.RequireFromString("120.15").Equal(s.ByCategory[types.ExpenseMaterials]))
	assert.True(t, decimal.RequireFromString("600").Equal(s.ByCategory[types.ExpenseLabor]))

	empty := Summarize(nil)
	assert.Equal(t, 0, empty.Count)
	assert.True(t, empty.Total.IsZero())
	assert.Empty(t, empty.ByCategory)
}

func ids(list []*types.Expense) []uuid.UUID {
	out := make([]uuid.UUID, len(list))
	for i, e := range list {
		out[i] = e.ID
	}
	return out
}
