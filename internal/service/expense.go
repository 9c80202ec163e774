package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mheller/wayfarer/internal/domain"
	"github.com/mheller/wayfarer/internal/repo"
)

// ExpenseService implements the actual-spend ledger: append-only expense
// logging with validation, plus list and delete.
type ExpenseService struct {
	trips    repo.TripRepo
	expenses repo.ExpenseRepo
}

// NewExpenseService constructs an ExpenseService backed by the provided repos.
func NewExpenseService(trips repo.TripRepo, expenses repo.ExpenseRepo) *ExpenseService {
	return &ExpenseService{trips: trips, expenses: expenses}
}

// Add validates and appends an expense to the trip's ledger.
// No summary is cached — summarize always recomputes from rows.
func (s *ExpenseService) Add(ctx context.Context, actor domain.Actor, tripID uuid.UUID, expense domain.Expense) (domain.Expense, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Add: %w", err)
	}
	if err := actor.CanMutate(trip); err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Add: %w", err)
	}

	expense.TripID = tripID
	if err := validateExpense(expense); err != nil {
		return domain.Expense{}, err
	}

	result, err := s.expenses.Create(ctx, expense)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Add: %w", err)
	}
	return result, nil
}

// ListByTrip returns all logged expenses, newest spend date first.
// Always returns a non-nil slice.
func (s *ExpenseService) ListByTrip(ctx context.Context, actor domain.Actor, tripID uuid.UUID) ([]domain.Expense, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExpenseService.ListByTrip: %w", err)
	}
	if err := actor.CanView(trip); err != nil {
		return nil, fmt.Errorf("service.ExpenseService.ListByTrip: %w", err)
	}

	expenses, err := s.expenses.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExpenseService.ListByTrip: %w", err)
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

// Delete removes a single logged expense from the trip's ledger.
func (s *ExpenseService) Delete(ctx context.Context, actor domain.Actor, tripID, expenseID uuid.UUID) error {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}
	if err := actor.CanMutate(trip); err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}

	if err := s.expenses.Delete(ctx, tripID, expenseID); err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}
	return nil
}

// validateExpense enforces the ledger's input rules.
//   - Amount must be strictly positive.
//   - Category must be one of the enumerated set.
//   - Currency is a 3-letter uppercase code; it is stored, never converted.
func validateExpense(e domain.Expense) error {
	if e.Amount <= 0 {
		return fmt.Errorf("%w: amount must be greater than 0", domain.ErrValidation)
	}
	if !domain.ValidExpenseCategory(e.Category) {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, e.Category)
	}
	if !validCurrency(e.Currency) {
		return fmt.Errorf("%w: currency must be a 3-letter code", domain.ErrValidation)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	return nil
}

func validCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
