package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/finanzas/internal/common"
	"github.com/dmitrijs2005/finanzas/internal/models"
	"github.com/dmitrijs2005/finanzas/internal/moneyx"
)

func (a *App) Summary(ctx context.Context) error {
	if !a.isReady() {
		return errNotSignedIn
	}
	s := a.controller.Summary()

	fmt.Fprintf(a.out, "Periodo: %s\n", a.describeFilter())
	fmt.Fprintf(a.out, "  Ingresos  %12s\n", moneyx.FormatCurrency(s.TotalIncome))
	fmt.Fprintf(a.out, "  Gastos    %12s\n", moneyx.FormatCurrency(s.TotalExpenses))
	fmt.Fprintf(a.out, "  Ahorro    %12s\n", moneyx.FormatCurrency(s.TotalSavings))
	fmt.Fprintf(a.out, "  Balance   %12s\n", moneyx.FormatCurrency(s.NetBalance))

	if len(s.Breakdown) > 0 {
		fmt.Fprintln(a.out, "Gastos por categoría:")
		for _, c := range s.Breakdown {
			fmt.Fprintf(a.out, "  %-16s %12s  %s\n", c.Name, moneyx.FormatCurrency(c.Amount), c.Color)
		}
	}

	fmt.Fprintf(a.out, "Mensual %d:\n", s.Filter.Year)
	for _, p := range s.Monthly {
		fmt.Fprintf(a.out, "  %s  %12s  %12s  %12s\n", p.Label,
			moneyx.FormatCurrency(p.Income), moneyx.FormatCurrency(p.Expenses), moneyx.FormatCurrency(p.Net))
	}
	return nil
}

func (a *App) List(ctx context.Context) error {
	if !a.isReady() {
		return errNotSignedIn
	}
	ms := a.controller.Summary().Movements
	if len(ms) == 0 {
		fmt.Fprintf(a.out, "No movements for %s\n", a.describeFilter())
		return nil
	}
	for _, m := range ms {
		a.printMovement(m)
	}
	return nil
}

// readMovement prompts for every field, offering cur's values as defaults.
func (a *App) readMovement(cur models.Movement) (models.Movement, error) {
	types := a.controller.CategoryTypes()
	if len(types) == 0 {
		return models.Movement{}, fmt.Errorf("%w: create a category first (addcategory or seed)", common.ErrInvalidArgument)
	}

	m := cur
	var err error

	if m.Name, err = GetTextOrDefault(a.reader, "Nombre", cur.Name, a.out); err != nil {
		return m, err
	}

	amountDef := ""
	if !cur.Amount.IsZero() {
		amountDef = cur.Amount.String()
	}
	s, err := GetTextOrDefault(a.reader, "Importe", amountDef, a.out)
	if err != nil {
		return m, err
	}
	if m.Amount, err = moneyx.ParseAmount(s); err != nil {
		return m, err
	}

	dateDef := a.formatDate(a.now())
	if !cur.Date.IsZero() {
		dateDef = a.formatDate(cur.Date)
	}
	if s, err = GetTextOrDefault(a.reader, "Fecha (YYYY-MM-DD)", dateDef, a.out); err != nil {
		return m, err
	}
	if m.Date, err = a.parseDate(s); err != nil {
		return m, err
	}

	if m.Description, err = GetTextOrDefault(a.reader, "Descripción", cur.Description, a.out); err != nil {
		return m, err
	}

	for i, t := range types {
		fmt.Fprintf(a.out, "  %d. %s\n", i+1, t.Name)
	}
	catDef := ""
	if cur.CategoryName != nil {
		catDef = *cur.CategoryName
	}
	if s, err = GetTextOrDefault(a.reader, "Categoría", catDef, a.out); err != nil {
		return m, err
	}
	t, err := chooseCategory(s, types)
	if err != nil {
		return m, err
	}
	m.CategoryTypeID = t.ID

	return m, nil
}

func (a *App) Add(ctx context.Context) error {
	if !a.isReady() {
		return errNotSignedIn
	}
	draft, err := a.readMovement(models.Movement{})
	if err != nil {
		return err
	}
	created, err := a.controller.AddMovement(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, "Added: ")
	a.printMovement(*created)
	return nil
}

func (a *App) Edit(ctx context.Context, args []string) error {
	if !a.isReady() {
		return errNotSignedIn
	}
	if len(args) == 0 {
		return errors.New("usage: edit <id>")
	}
	cur, err := findMovement(args[0], a.controller.Movements())
	if err != nil {
		return err
	}
	m, err := a.readMovement(cur)
	if err != nil {
		return err
	}
	updated, err := a.controller.UpdateMovement(ctx, m)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, "Updated: ")
	a.printMovement(*updated)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if !a.isReady() {
		return errNotSignedIn
	}
	if len(args) == 0 {
		return errors.New("usage: delete <id>")
	}
	m, err := findMovement(args[0], a.controller.Movements())
	if err != nil {
		return err
	}
	if err := a.controller.DeleteMovement(ctx, m.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s (%s)\n", shortID(m.ID), m.Name)
	return nil
}
