package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/finanzas/internal/models"
	"github.com/dmitrijs2005/finanzas/internal/moneyx"
)

func (a *App) Categories(ctx context.Context) error {
	if !a.isReady() {
		return errNotSignedIn
	}
	types := a.controller.CategoryTypes()
	if len(types) == 0 {
		fmt.Fprintln(a.out, "No categories yet. Use addcategory or seed.")
		return nil
	}
	for i, t := range types {
		fmt.Fprintf(a.out, "%2d. %-16s meta %10s  %s\n", i+1, t.Name, moneyx.FormatCurrency(t.GoalAmount), models.CategoryColor(t.Name))
	}
	return nil
}

func (a *App) AddCategory(ctx context.Context) error {
	if !a.isReady() {
		return errNotSignedIn
	}
	name, err := GetSimpleText(a.reader, "Nombre", a.out)
	if err != nil {
		return err
	}
	s, err := GetTextOrDefault(a.reader, "Meta", "0", a.out)
	if err != nil {
		return err
	}
	goal, err := moneyx.ParseAmount(s)
	if err != nil {
		return err
	}

	created, err := a.controller.AddCategoryType(ctx, name, goal)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Category %s created\n", created.Name)
	return nil
}

func (a *App) Seed(ctx context.Context) error {
	if !a.isReady() {
		return errNotSignedIn
	}
	created, err := a.controller.SeedStandardCategories(ctx)
	if err != nil {
		return err
	}
	if len(created) == 0 {
		fmt.Fprintln(a.out, "All standard categories already exist")
		return nil
	}
	for _, t := range created {
		fmt.Fprintf(a.out, "Category %s created\n", t.Name)
	}
	return nil
}
