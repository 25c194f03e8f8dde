package aggregate

import (
	"slices"
	"time"

	"github.com/dmitrijs2005/finanzas/internal/models"
)

// Filter selects movements by calendar year, optionally narrowed to one
// month and/or one category.
type Filter struct {
	Year int
	// Month is zero when the whole year is selected.
	Month time.Month
	// CategoryTypeID is empty when all categories are selected.
	CategoryTypeID string
	// Location is the calendar used to read movement dates; nil means UTC.
	Location *time.Location
}

// DefaultFilter selects the current month of the current year.
func DefaultFilter(now time.Time) Filter {
	return Filter{Year: now.Year(), Month: now.Month(), Location: now.Location()}
}

// Reset clears month and category, keeping the year.
func (f Filter) Reset() Filter {
	f.Month = 0
	f.CategoryTypeID = ""
	return f
}

func (f Filter) loc() *time.Location {
	if f.Location == nil {
		return time.UTC
	}
	return f.Location
}

func (f Filter) match(m models.Movement) bool {
	d := m.Date.In(f.loc())
	if d.Year() != f.Year {
		return false
	}
	if f.Month != 0 && d.Month() != f.Month {
		return false
	}
	if f.CategoryTypeID != "" && m.CategoryTypeID != f.CategoryTypeID {
		return false
	}
	return true
}

// FilteredMovements returns the movements matching f, newest first. Movements
// with equal dates keep their input order.
func FilteredMovements(movements []models.Movement, f Filter) []models.Movement {
	out := make([]models.Movement, 0, len(movements))
	for _, m := range movements {
		if f.match(m) {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Movement) int {
		return b.Date.Compare(a.Date)
	})
	return out
}

// AvailableYears lists the distinct years across all movements, newest first.
func AvailableYears(movements []models.Movement, loc *time.Location) []int {
	if loc == nil {
		loc = time.UTC
	}
	seen := make(map[int]struct{})
	years := make([]int, 0)
	for _, m := range movements {
		y := m.Date.In(loc).Year()
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	slices.SortFunc(years, func(a, b int) int { return b - a })
	return years
}
