package domain

import (
	"math"
	"time"
)

// EstimatedCost is the projected spend for a trip, derived from catalog data.
// LivingCost is day-span × city cost index summed over stops; ActivityCost
// is the sum of planned activity costs.
type EstimatedCost struct {
	ActivityCost float64
	LivingCost   float64
	Total        float64
}

// ExpenseSummary aggregates the logged actual spend of a trip.
// ByCategory only contains categories that appear in at least one expense —
// absent categories are omitted, not zero-filled.
type ExpenseSummary struct {
	ByCategory map[ExpenseCategory]float64
	Total      float64
	AvgPerDay  float64
}

// BudgetView reconciles estimated against actual spend.
// Variance is actual total minus estimated total: positive means over budget.
type BudgetView struct {
	Estimated EstimatedCost
	Actual    ExpenseSummary
	Variance  float64
}

// DaysBetween returns the inclusive day-span of [start, end):
// ceil(|end - start| / 24h). A three-night stop spans 3 days; identical
// timestamps span 0.
func DaysBetween(start, end time.Time) int {
	d := end.Sub(start)
	if d < 0 {
		d = -d
	}
	return int(math.Ceil(d.Hours() / 24))
}

// SummarizeExpenses aggregates expenses into per-category totals, a grand
// total, and an average per day of the trip's duration (0 when the duration
// is 0). It is a pure function; summaries are never cached.
func SummarizeExpenses(expenses []Expense, tripStart, tripEnd time.Time) ExpenseSummary {
	sum := ExpenseSummary{ByCategory: map[ExpenseCategory]float64{}}
	for _, e := range expenses {
		sum.ByCategory[e.Category] += e.Amount
		sum.Total += e.Amount
	}
	if days := DaysBetween(tripStart, tripEnd); days > 0 {
		sum.AvgPerDay = sum.Total / float64(days)
	}
	return sum
}
