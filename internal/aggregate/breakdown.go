package aggregate

import (
	"slices"

	"github.com/dmitrijs2005/finanzas/internal/common"
	"github.com/dmitrijs2005/finanzas/internal/models"
	"github.com/shopspring/decimal"
)

// CategoryAmount is one slice of the expense breakdown.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
	Color  models.Color
}

// CategoryBreakdown groups the expense movements matching f by category
// name and orders the groups by amount, largest first. Movements without a
// resolved category are grouped under common.UncategorizedLabel.
func CategoryBreakdown(movements []models.Movement, f Filter) []CategoryAmount {
	return breakdown(FilteredMovements(movements, f))
}

func breakdown(filtered []models.Movement) []CategoryAmount {
	index := make(map[string]int)
	out := make([]CategoryAmount, 0)
	for _, m := range filtered {
		if !m.IsExpense() {
			continue
		}
		name := common.UncategorizedLabel
		color := models.ColorGray
		if m.CategoryName != nil {
			name = *m.CategoryName
			color = models.CategoryColor(name)
		}
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, CategoryAmount{Name: name, Amount: decimal.Zero, Color: color})
		}
		out[i].Amount = out[i].Amount.Add(m.Amount)
	}
	slices.SortStableFunc(out, func(a, b CategoryAmount) int {
		return b.Amount.Cmp(a.Amount)
	})
	return out
}
