package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/mheller/wayfarer/internal/domain"
)

// expenseRequest is the body of POST /trips/{tripID}/expenses.
type expenseRequest struct {
	Category    string             `json:"category"`
	Amount      float64            `json:"amount"`
	Currency    string             `json:"currency"`
	Description *string            `json:"description,omitempty"`
	Date        openapi_types.Date `json:"date"`
}

type expenseResponse struct {
	ID          uuid.UUID          `json:"id"`
	TripID      uuid.UUID          `json:"tripId"`
	Category    string             `json:"category"`
	Amount      float64            `json:"amount"`
	Currency    string             `json:"currency"`
	Description string             `json:"description,omitempty"`
	Date        openapi_types.Date `json:"date"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// CreateExpense handles POST /trips/{tripID}/expenses.
func (s *Server) CreateExpense(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	tripID, err := tripIDParam(r)
	if err != nil {
		badRequest(w, "tripID must be a UUID")
		return
	}

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	expense := domain.Expense{
		Category:    domain.ExpenseCategory(req.Category),
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: derefString(req.Description),
		Date:        req.Date.Time,
	}

	created, err := s.expenses.Add(r.Context(), actor, tripID, expense)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, expenseToResponse(created))
}

// ListExpenses handles GET /trips/{tripID}/expenses.
func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	tripID, err := tripIDParam(r)
	if err != nil {
		badRequest(w, "tripID must be a UUID")
		return
	}

	expenses, err := s.expenses.ListByTrip(r.Context(), actor, tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		data[i] = expenseToResponse(e)
	}
	writeJSON(w, http.StatusOK, data)
}

// DeleteExpense handles DELETE /trips/{tripID}/expenses/{expenseID}.
func (s *Server) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	tripID, err := tripIDParam(r)
	if err != nil {
		badRequest(w, "tripID must be a UUID")
		return
	}
	expenseID, err := uuid.Parse(chi.URLParam(r, "expenseID"))
	if err != nil {
		badRequest(w, "expenseID must be a UUID")
		return
	}

	if err := s.expenses.Delete(r.Context(), actor, tripID, expenseID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func expenseToResponse(e domain.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		TripID:      e.TripID,
		Category:    string(e.Category),
		Amount:      e.Amount,
		Currency:    e.Currency,
		Description: e.Description,
		Date:        openapi_types.Date{Time: e.Date},
		CreatedAt:   e.CreatedAt,
	}
}
