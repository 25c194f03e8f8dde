package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/finanzas/internal/aggregate"
)

const filterUsage = "usage: filter year <yyyy> | month <1-12|all> | category <n|name|all> | reset"

func (a *App) Filter(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New(filterUsage)
	}

	switch args[0] {
	case "reset":
		a.controller.ResetFilters()

	case "year":
		if len(args) < 2 {
			return errors.New(filterUsage)
		}
		y, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid year %q", args[1])
		}
		a.controller.SetYear(y)

	case "month":
		if len(args) < 2 {
			return errors.New(filterUsage)
		}
		m, err := parseMonth(args[1])
		if err != nil {
			return err
		}
		if err := a.controller.SetMonth(m); err != nil {
			return err
		}

	case "category":
		if len(args) < 2 {
			return errors.New(filterUsage)
		}
		ref := strings.Join(args[1:], " ")
		if ref == "all" {
			a.controller.SetCategory("")
			break
		}
		t, err := chooseCategory(ref, a.controller.CategoryTypes())
		if err != nil {
			return err
		}
		a.controller.SetCategory(t.ID)

	default:
		return errors.New(filterUsage)
	}

	fmt.Fprintf(a.out, "Filter: %s\n", a.describeFilter())
	return nil
}

// parseMonth accepts 1-12, "all", or a Spanish month name or label.
func parseMonth(s string) (time.Month, error) {
	if s == "all" || s == "0" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("invalid month %d", n)
		}
		return time.Month(n), nil
	}
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(s, aggregate.MonthName(m)) || strings.EqualFold(s, aggregate.MonthLabel(m)) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("invalid month %q", s)
}

func (a *App) Years(ctx context.Context) error {
	years := aggregate.AvailableYears(a.controller.Movements(), a.loc)
	if len(years) == 0 {
		fmt.Fprintln(a.out, "No movements yet")
		return nil
	}
	for _, y := range years {
		fmt.Fprintln(a.out, y)
	}
	return nil
}

func (a *App) Months(ctx context.Context) error {
	for m := time.January; m <= time.December; m++ {
		fmt.Fprintf(a.out, "%2d  %s\n", int(m), aggregate.MonthName(m))
	}
	return nil
}
