package aggregate

import (
	"github.com/dmitrijs2005/finanzas/internal/models"
	"github.com/shopspring/decimal"
)

func sum(movements []models.Movement, keep func(models.Movement) bool) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		if keep(m) {
			total = total.Add(m.Amount)
		}
	}
	return total
}

// TotalIncome sums the income movements matching f.
func TotalIncome(movements []models.Movement, f Filter) decimal.Decimal {
	return sum(FilteredMovements(movements, f), models.Movement.IsIncome)
}

// TotalExpenses sums the expense movements matching f, including movements
// whose category could not be resolved.
func TotalExpenses(movements []models.Movement, f Filter) decimal.Decimal {
	return sum(FilteredMovements(movements, f), models.Movement.IsExpense)
}

// TotalSavings sums the savings movements matching f.
func TotalSavings(movements []models.Movement, f Filter) decimal.Decimal {
	return sum(FilteredMovements(movements, f), models.Movement.IsSaving)
}

// NetBalance is income minus expenses. Savings are tracked separately and
// are not deducted.
func NetBalance(movements []models.Movement, f Filter) decimal.Decimal {
	return TotalIncome(movements, f).Sub(TotalExpenses(movements, f))
}
