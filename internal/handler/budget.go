package handler

import (
	"net/http"

	"github.com/mheller/wayfarer/internal/domain"
)

// budgetResponse is the body of GET /trips/{tripID}/budget.
type budgetResponse struct {
	Estimated estimatedCostBody `json:"estimated"`
	Actual    actualCostBody    `json:"actual"`
	Variance  float64           `json:"variance"`
}

type estimatedCostBody struct {
	ActivityCost float64 `json:"activityCost"`
	LivingCost   float64 `json:"livingCost"`
	Total        float64 `json:"total"`
}

type actualCostBody struct {
	ByCategory map[string]float64 `json:"byCategory"`
	Total      float64            `json:"total"`
	AvgPerDay  float64            `json:"avgPerDay"`
}

// GetBudget handles GET /trips/{tripID}/budget.
func (s *Server) GetBudget(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	tripID, err := tripIDParam(r)
	if err != nil {
		badRequest(w, "tripID must be a UUID")
		return
	}

	view, err := s.budget.Budget(r.Context(), actor, tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, budgetToResponse(view))
}

func budgetToResponse(view domain.BudgetView) budgetResponse {
	byCategory := make(map[string]float64, len(view.Actual.ByCategory))
	for category, total := range view.Actual.ByCategory {
		byCategory[string(category)] = total
	}
	return budgetResponse{
		Estimated: estimatedCostBody{
			ActivityCost: view.Estimated.ActivityCost,
			LivingCost:   view.Estimated.LivingCost,
			Total:        view.Estimated.Total,
		},
		Actual: actualCostBody{
			ByCategory: byCategory,
			Total:      view.Actual.Total,
			AvgPerDay:  view.Actual.AvgPerDay,
		},
		Variance: view.Variance,
	}
}
