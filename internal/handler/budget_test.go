package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mheller/wayfarer/internal/domain"
)

func TestGetBudget_200(t *testing.T) {
	actor := domain.Actor{ID: uuid.New()}
	tripID := uuid.New()

	m := newServerMocks()
	m.budget.budget = func(_ context.Context, _ domain.Actor, id uuid.UUID) (domain.BudgetView, error) {
		assert.Equal(t, tripID, id)
		return domain.BudgetView{
			Estimated: domain.EstimatedCost{ActivityCost: 20, LivingCost: 150, Total: 170},
			Actual: domain.ExpenseSummary{
				ByCategory: map[domain.ExpenseCategory]float64{
					domain.ExpenseCategoryMeals: 40.5,
				},
				Total:     40.5,
				AvgPerDay: 13.5,
			},
			Variance: -129.5,
		}, nil
	}

	rec := doRequest(t, m.handler(), http.MethodGet, "/trips/"+tripID.String()+"/budget", actor, nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Estimated struct {
			ActivityCost float64 `json:"activityCost"`
			LivingCost   float64 `json:"livingCost"`
			Total        float64 `json:"total"`
		} `json:"estimated"`
		Actual struct {
			ByCategory map[string]float64 `json:"byCategory"`
			Total      float64            `json:"total"`
			AvgPerDay  float64            `json:"avgPerDay"`
		} `json:"actual"`
		Variance float64 `json:"variance"`
	}
	decodeBody(t, rec, &resp)
	assert.InDelta(t, 170.0, resp.Estimated.Total, 1e-9)
	assert.InDelta(t, 40.5, resp.Actual.ByCategory["meals"], 1e-9)
	assert.InDelta(t, -129.5, resp.Variance, 1e-9)
}

func TestGetBudget_200_EmptyTrip(t *testing.T) {
	actor := domain.Actor{ID: uuid.New()}
	m := newServerMocks()
	m.budget.budget = func(_ context.Context, _ domain.Actor, _ uuid.UUID) (domain.BudgetView, error) {
		return domain.BudgetView{
			Actual: domain.ExpenseSummary{ByCategory: map[domain.ExpenseCategory]float64{}},
		}, nil
	}

	rec := doRequest(t, m.handler(), http.MethodGet, "/trips/"+uuid.NewString()+"/budget", actor, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Estimated struct {
			Total float64 `json:"total"`
		} `json:"estimated"`
		Actual struct {
			ByCategory map[string]float64 `json:"byCategory"`
			AvgPerDay  float64            `json:"avgPerDay"`
		} `json:"actual"`
	}
	decodeBody(t, rec, &resp)
	assert.Zero(t, resp.Estimated.Total)
	assert.Zero(t, resp.Actual.AvgPerDay)
	assert.NotNil(t, resp.Actual.ByCategory)
	assert.Empty(t, resp.Actual.ByCategory)
}

func TestGetBudget_404(t *testing.T) {
	actor := domain.Actor{ID: uuid.New()}
	m := newServerMocks()
	m.budget.budget = func(_ context.Context, _ domain.Actor, _ uuid.UUID) (domain.BudgetView, error) {
		return domain.BudgetView{}, domain.ErrNotFound
	}

	rec := doRequest(t, m.handler(), http.MethodGet, "/trips/"+uuid.NewString()+"/budget", actor, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetBudget_401_NoActor(t *testing.T) {
	rec := doRequest(t, newServerMocks().handler(), http.MethodGet, "/trips/"+uuid.NewString()+"/budget", domain.Actor{}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
