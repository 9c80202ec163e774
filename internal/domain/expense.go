package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExpenseCategory classifies a logged expense.
type ExpenseCategory string

const (
	ExpenseCategoryTransport     ExpenseCategory = "transport"
	ExpenseCategoryAccommodation ExpenseCategory = "accommodation"
	ExpenseCategoryActivities    ExpenseCategory = "activities"
	ExpenseCategoryMeals         ExpenseCategory = "meals"
	ExpenseCategoryOther         ExpenseCategory = "other"
)

// ValidExpenseCategory reports whether c is one of the known categories.
func ValidExpenseCategory(c ExpenseCategory) bool {
	switch c {
	case ExpenseCategoryTransport, ExpenseCategoryAccommodation,
		ExpenseCategoryActivities, ExpenseCategoryMeals, ExpenseCategoryOther:
		return true
	}
	return false
}

// Expense is manually logged actual spend against a trip. Expenses are
// independent of the itinerary structure — deleting a stop does not touch
// them. Amount must be strictly positive. Currency is a 3-letter code and
// is stored, never converted.
type Expense struct {
	ID          uuid.UUID
	TripID      uuid.UUID
	Category    ExpenseCategory
	Amount      float64
	Currency    string
	Description string
	Date        time.Time
	CreatedAt   time.Time
}
