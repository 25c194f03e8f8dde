package aggregate

import (
	"github.com/dmitrijs2005/finanzas/internal/models"
	"github.com/shopspring/decimal"
)

// Summary bundles every derived view for one filter state.
type Summary struct {
	Filter         Filter
	Movements      []models.Movement
	TotalIncome    decimal.Decimal
	TotalExpenses  decimal.Decimal
	TotalSavings   decimal.Decimal
	NetBalance     decimal.Decimal
	Breakdown      []CategoryAmount
	Monthly        []MonthlyPoint
	AvailableYears []int
}

// Summarize computes all views in one pass over the filtered list.
func Summarize(movements []models.Movement, f Filter) Summary {
	filtered := FilteredMovements(movements, f)
	income := sum(filtered, models.Movement.IsIncome)
	expenses := sum(filtered, models.Movement.IsExpense)

	return Summary{
		Filter:         f,
		Movements:      filtered,
		TotalIncome:    income,
		TotalExpenses:  expenses,
		TotalSavings:   sum(filtered, models.Movement.IsSaving),
		NetBalance:     income.Sub(expenses),
		Breakdown:      breakdown(filtered),
		Monthly:        MonthlySeries(movements, f),
		AvailableYears: AvailableYears(movements, f.Location),
	}
}
