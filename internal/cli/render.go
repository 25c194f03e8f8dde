package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/finanzas/internal/aggregate"
	"github.com/dmitrijs2005/finanzas/internal/common"
	"github.com/dmitrijs2005/finanzas/internal/models"
	"github.com/dmitrijs2005/finanzas/internal/moneyx"
	"github.com/dmitrijs2005/finanzas/internal/timex"
)

var errNotSignedIn = errors.New("not signed in")

const shortIDLen = 8

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func (a *App) now() time.Time {
	if a.clock != nil {
		return a.clock()
	}
	return time.Now()
}

func (a *App) formatDate(t time.Time) string {
	return t.In(a.loc).Format(time.DateOnly)
}

// parseDate reads a plain date in the shell's time zone, or any stored
// date format.
func (a *App) parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(time.DateOnly, s, a.loc); err == nil {
		return t, nil
	}
	return timex.ParseInstant(s)
}

func categoryLabel(m models.Movement) string {
	if m.CategoryName == nil {
		return common.UncategorizedLabel
	}
	return *m.CategoryName
}

func (a *App) describeFilter() string {
	f := a.controller.Filter()
	s := strconv.Itoa(f.Year)
	if f.Month != 0 {
		s = aggregate.MonthName(f.Month) + " " + s
	}
	if f.CategoryTypeID != "" {
		name := f.CategoryTypeID
		for _, t := range a.controller.CategoryTypes() {
			if t.ID == f.CategoryTypeID {
				name = t.Name
			}
		}
		s += ", " + name
	}
	return s
}

func (a *App) printMovement(m models.Movement) {
	fmt.Fprintf(a.out, "%-8s  %s  %-24s %-14s %10s\n",
		shortID(m.ID), a.formatDate(m.Date), m.Name, categoryLabel(m), moneyx.FormatCurrency(m.Amount))
}

// chooseCategory accepts a 1-based position in types or a category name.
func chooseCategory(input string, types []models.CategoryType) (models.CategoryType, error) {
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(types) {
			return models.CategoryType{}, fmt.Errorf("%w: no category number %d", common.ErrInvalidArgument, n)
		}
		return types[n-1], nil
	}
	for _, t := range types {
		if strings.EqualFold(t.Name, input) {
			return t, nil
		}
	}
	return models.CategoryType{}, fmt.Errorf("%w: no category named %q", common.ErrInvalidArgument, input)
}

// findMovement matches a full id or a unique id prefix.
func findMovement(ref string, ms []models.Movement) (models.Movement, error) {
	var found []models.Movement
	for _, m := range ms {
		if m.ID == ref {
			return m, nil
		}
		if strings.HasPrefix(m.ID, ref) {
			found = append(found, m)
		}
	}
	switch len(found) {
	case 0:
		return models.Movement{}, fmt.Errorf("movement %s: %w", ref, common.ErrorNotFound)
	case 1:
		return found[0], nil
	}
	return models.Movement{}, fmt.Errorf("%w: %q matches %d movements", common.ErrInvalidArgument, ref, len(found))
}
