package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mheller/wayfarer/internal/catalog"
	"github.com/mheller/wayfarer/internal/domain"
	"github.com/mheller/wayfarer/internal/repo"
)

// BudgetService derives the estimated cost of a trip from catalog data and
// reconciles it against the logged actual spend. Everything is recomputed
// on read; nothing is cached.
type BudgetService struct {
	trips    repo.TripRepo
	stops    repo.StopRepo
	expenses repo.ExpenseRepo
	catalog  catalog.Reader
}

// NewBudgetService constructs a BudgetService backed by the provided repos
// and catalog reader.
func NewBudgetService(trips repo.TripRepo, stops repo.StopRepo, expenses repo.ExpenseRepo, c catalog.Reader) *BudgetService {
	return &BudgetService{trips: trips, stops: stops, expenses: expenses, catalog: c}
}

// Budget assembles the full estimate-vs-actual view for a trip.
// Variance is actual total minus estimated total.
func (s *BudgetService) Budget(ctx context.Context, actor domain.Actor, tripID uuid.UUID) (domain.BudgetView, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.BudgetView{}, fmt.Errorf("service.BudgetService.Budget: %w", err)
	}
	if err := actor.CanView(trip); err != nil {
		return domain.BudgetView{}, fmt.Errorf("service.BudgetService.Budget: %w", err)
	}

	stops, err := s.stops.ListByTrip(ctx, tripID)
	if err != nil {
		return domain.BudgetView{}, fmt.Errorf("service.BudgetService.Budget: %w", err)
	}
	estimated, err := estimateStops(ctx, s.catalog, stops)
	if err != nil {
		return domain.BudgetView{}, fmt.Errorf("service.BudgetService.Budget: %w", err)
	}

	expenses, err := s.expenses.ListByTrip(ctx, tripID)
	if err != nil {
		return domain.BudgetView{}, fmt.Errorf("service.BudgetService.Budget: %w", err)
	}
	actual := domain.SummarizeExpenses(expenses, trip.StartDate, trip.EndDate)

	return domain.BudgetView{
		Estimated: estimated,
		Actual:    actual,
		Variance:  actual.Total - estimated.Total,
	}, nil
}

// Estimate returns only the estimated side of the budget.
func (s *BudgetService) Estimate(ctx context.Context, actor domain.Actor, tripID uuid.UUID) (domain.EstimatedCost, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.EstimatedCost{}, fmt.Errorf("service.BudgetService.Estimate: %w", err)
	}
	if err := actor.CanView(trip); err != nil {
		return domain.EstimatedCost{}, fmt.Errorf("service.BudgetService.Estimate: %w", err)
	}

	stops, err := s.stops.ListByTrip(ctx, tripID)
	if err != nil {
		return domain.EstimatedCost{}, fmt.Errorf("service.BudgetService.Estimate: %w", err)
	}
	est, err := estimateStops(ctx, s.catalog, stops)
	if err != nil {
		return domain.EstimatedCost{}, fmt.Errorf("service.BudgetService.Estimate: %w", err)
	}
	return est, nil
}

// estimateStops is the core estimation algorithm, shared with the share
// projection. Living cost is day-span × city cost index summed over stops
// (cost indexes resolved through the catalog at call time); activity cost
// is the sum of planned activity costs. Pure apart from the catalog reads —
// calling it twice without mutation yields identical results.
func estimateStops(ctx context.Context, c catalog.Reader, stops []domain.Stop) (domain.EstimatedCost, error) {
	var est domain.EstimatedCost
	for _, stop := range stops {
		city, err := c.GetCity(ctx, stop.CityID)
		if err != nil {
			return domain.EstimatedCost{}, err
		}
		days := domain.DaysBetween(stop.StartDate, stop.EndDate)
		est.LivingCost += float64(days) * city.CostIndex

		for _, a := range stop.Activities {
			est.ActivityCost += a.Cost
		}
	}
	est.Total = est.ActivityCost + est.LivingCost
	return est, nil
}
