package expense

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"buildaide/core/types"
)

// MemoryRepository keeps expenses in process memory
type MemoryRepository struct {
	mu       sync.RWMutex
	expenses map[uuid.UUID]*types.Expense
	order    []uuid.UUID
	now      func() time.Time
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		expenses: make(map[uuid.UUID]*types.Expense),
		now:      time.Now,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, e *types.Expense) error {
	if err := Validate(e); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stamp(e, r.now())
	stored := *e
	r.expenses[e.ID] = &stored
	r.order = append(r.order, e.ID)
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, id uuid.UUID) (*types.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.expenses[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *e
	return &out, nil
}

func (r *MemoryRepository) List(ctx context.Context, filter types.ExpenseFilter) ([]*types.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*types.Expense, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		e := r.expenses[r.order[i]]
		if !matches(e, filter) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.expenses[id]; !ok {
		return ErrNotFound
	}
	delete(r.expenses, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
