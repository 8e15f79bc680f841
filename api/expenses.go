package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"buildaide/core/types"
	"buildaide/db/expense"
	apperrors "buildaide/internal/errors"
)

// ExpenseRequest is the body of POST /api/expenses
type ExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category,omitempty"`
	ProjectName string          `json:"projectName,omitempty"`
	// IncurredOn is a YYYY-MM-DD date; empty means today
	IncurredOn  string          `json:"incurredOn,omitempty"`
}

// ExpenseListResponse is the body of GET /api/expenses
type ExpenseListResponse struct {
	Expenses []*types.Expense     `json:"expenses"`
	Summary  types.ExpenseSummary `json:"summary"`
}

// handleCreateExpense handles POST /api/expenses
func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.writeAppError(w, err)
		return
	}
	if err := validateExpense(body); err != nil {
		s.writeAppError(w, err)
		return
	}

	var req ExpenseRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeAppError(w, apperrors.Wrap(apperrors.TypeInput, "invalid expense", err))
		return
	}

	e := &types.Expense{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    types.ExpenseCategory(req.Category),
		ProjectName: req.ProjectName,
	}
	if req.IncurredOn != "" {
		day, err := time.Parse(time.DateOnly, req.IncurredOn)
		if err != nil {
			s.writeAppError(w, apperrors.Input("incurredOn must be a YYYY-MM-DD date"))
			return
		}
		e.IncurredOn = day
	}

	if err := s.expenses.Create(r.Context(), e); err != nil {
		s.writeAppError(w, err)
		return
	}
	s.service.Metrics().ExpensesCreated.Inc()

	w.Header().Set("Location", "/api/expenses/"+e.ID.String())
	s.writeJSON(w, e, http.StatusCreated)
}

// handleListExpenses handles GET /api/expenses
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	filter := types.ExpenseFilter{
		ProjectName: strings.TrimSpace(r.URL.Query().Get("project")),
		Category:    types.ExpenseCategory(strings.ToLower(r.URL.Query().Get("category"))),
	}
	if filter.Category != "" && !filter.Category.IsValid() {
		s.writeAppError(w, apperrors.Input("unknown expense category").WithContext("category", string(filter.Category)))
		return
	}

	list, err := s.expenses.List(r.Context(), filter)
	if err != nil {
		s.writeAppError(w, err)
		return
	}
	if list == nil {
		list = []*types.Expense{}
	}

	s.writeJSON(w, ExpenseListResponse{Expenses: list, Summary: expense.Summarize(list)}, http.StatusOK)
}

// handleGetExpense handles GET /api/expenses/{id}
func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	id, err := expenseID(r)
	if err != nil {
		s.writeAppError(w, err)
		return
	}

	e, err := s.expenses.Get(r.Context(), id)
	if err != nil {
		s.writeAppError(w, err)
		return
	}
	s.writeJSON(w, e, http.StatusOK)
}

// handleDeleteExpense handles DELETE /api/expenses/{id}
func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := expenseID(r)
	if err != nil {
		s.writeAppError(w, err)
		return
	}

	if err := s.expenses.Delete(r.Context(), id); err != nil {
		s.writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func expenseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, apperrors.Input("expense id must be a UUID").WithContext("id", r.PathValue("id"))
	}
	return id, nil
}
