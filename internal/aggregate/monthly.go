package aggregate

import (
	"time"

	"github.com/dmitrijs2005/finanzas/internal/models"
	"github.com/shopspring/decimal"
)

var monthLabels = [12]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

var monthNames = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthLabel returns the three-letter label for m.
func MonthLabel(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthLabels[m-1]
}

// MonthName returns the full display name for m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// MonthlyPoint is one calendar month of the yearly series.
type MonthlyPoint struct {
	Month    time.Month
	Label    string
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
}

// MonthlySeries sums income and expenses per calendar month of f.Year.
// Only the year applies; month and category selections are ignored.
// The result always has twelve entries, January first.
func MonthlySeries(movements []models.Movement, f Filter) []MonthlyPoint {
	out := make([]MonthlyPoint, 12)
	for i := range out {
		m := time.Month(i + 1)
		out[i] = MonthlyPoint{Month: m, Label: MonthLabel(m), Income: decimal.Zero, Expenses: decimal.Zero}
	}

	loc := f.loc()
	for _, mv := range movements {
		d := mv.Date.In(loc)
		if d.Year() != f.Year {
			continue
		}
		p := &out[d.Month()-1]
		switch {
		case mv.IsIncome():
			p.Income = p.Income.Add(mv.Amount)
		case mv.IsExpense():
			p.Expenses = p.Expenses.Add(mv.Amount)
		}
	}

	for i := range out {
		out[i].Net = out[i].Income.Sub(out[i].Expenses)
	}
	return out
}
