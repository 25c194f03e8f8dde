package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/finanzas/internal/common"
	"github.com/shopspring/decimal"
)

// CategoryType is a user-defined category with an optional budget goal.
type CategoryType struct {
	ID             string          `json:"id,omitempty"`
	Name           string          `json:"nombre"`
	GoalAmount     decimal.Decimal `json:"meta"`
	OwnerProfileID string          `json:"usuario_id"`
	CreatedAt      time.Time       `json:"created_at,omitzero"`
}

// Validate checks a category before it is written.
func (c CategoryType) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: category name is required", common.ErrInvalidArgument)
	}
	if c.GoalAmount.IsNegative() {
		return fmt.Errorf("%w: category goal must not be negative", common.ErrInvalidArgument)
	}
	if c.OwnerProfileID == "" {
		return fmt.Errorf("%w: category owner is required", common.ErrInvalidArgument)
	}
	return nil
}

// StandardCategories returns the default category set with their goals.
// The result has no ids or owner; callers fill those in.
func StandardCategories() []CategoryType {
	return []CategoryType{
		{Name: common.CategoryIncome, GoalAmount: decimal.NewFromInt(5000)},
		{Name: "Alimentacion", GoalAmount: decimal.NewFromInt(800)},
		{Name: "Transporte", GoalAmount: decimal.NewFromInt(300)},
		{Name: "Compras", GoalAmount: decimal.NewFromInt(400)},
		{Name: "Gastos fijos", GoalAmount: decimal.NewFromInt(1200)},
		{Name: common.CategorySavings, GoalAmount: decimal.NewFromInt(1000)},
		{Name: "Salidas", GoalAmount: decimal.NewFromInt(200)},
	}
}
