package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/finanzas/internal/common"
	"github.com/shopspring/decimal"
)

// Movement is one recorded transaction. Amount is always a positive
// magnitude; direction comes from the category.
//
// CategoryName and CategoryGoalAmount are filled by Join and are never stored.
type Movement struct {
	ID             string          `json:"id,omitempty"`
	Name           string          `json:"nombre"`
	Amount         decimal.Decimal `json:"importe"`
	Date           time.Time       `json:"fecha"`
	Description    string          `json:"descripcion,omitempty"`
	CategoryTypeID string          `json:"id_tipo_movimiento"`
	OwnerProfileID string          `json:"usuario_id"`
	CreatedAt      time.Time       `json:"created_at,omitzero"`

	CategoryName       *string          `json:"tipo_nombre,omitempty"`
	CategoryGoalAmount *decimal.Decimal `json:"tipo_meta,omitempty"`
}

// IsIncome reports whether the movement belongs to the income category.
func (m Movement) IsIncome() bool {
	return m.CategoryName != nil && *m.CategoryName == common.CategoryIncome
}

// IsSaving reports whether the movement belongs to the savings category.
func (m Movement) IsSaving() bool {
	return m.CategoryName != nil && *m.CategoryName == common.CategorySavings
}

// IsExpense is true for everything that is neither income nor savings,
// including movements whose category could not be resolved.
func (m Movement) IsExpense() bool {
	return !m.IsIncome() && !m.IsSaving()
}

// Equal compares persisted fields only.
func (m Movement) Equal(o Movement) bool {
	return m.ID == o.ID &&
		m.Name == o.Name &&
		m.Amount.Equal(o.Amount) &&
		m.Date.Equal(o.Date) &&
		m.Description == o.Description &&
		m.CategoryTypeID == o.CategoryTypeID &&
		m.OwnerProfileID == o.OwnerProfileID &&
		m.CreatedAt.Equal(o.CreatedAt)
}

// Validate checks a movement before it is written.
func (m Movement) Validate() error {
	switch {
	case strings.TrimSpace(m.Name) == "":
		return fmt.Errorf("%w: movement name is required", common.ErrInvalidArgument)
	case !m.Amount.IsPositive():
		return fmt.Errorf("%w: movement amount must be positive", common.ErrInvalidArgument)
	case m.Date.IsZero():
		return fmt.Errorf("%w: movement date is required", common.ErrInvalidArgument)
	case m.CategoryTypeID == "":
		return fmt.Errorf("%w: movement category is required", common.ErrInvalidArgument)
	case m.OwnerProfileID == "":
		return fmt.Errorf("%w: movement owner is required", common.ErrInvalidArgument)
	}
	return nil
}

// Join returns a copy of movements with category metadata resolved from
// types. Movements whose category is missing get the derived fields unset.
func Join(movements []Movement, types []CategoryType) []Movement {
	byID := make(map[string]CategoryType, len(types))
	for _, t := range types {
		byID[t.ID] = t
	}
	out := make([]Movement, len(movements))
	for i, m := range movements {
		out[i] = joinOne(m, byID)
	}
	return out
}

// JoinOne resolves category metadata for a single movement.
func JoinOne(m Movement, types []CategoryType) Movement {
	return Join([]Movement{m}, types)[0]
}

func joinOne(m Movement, byID map[string]CategoryType) Movement {
	m.CategoryName, m.CategoryGoalAmount = nil, nil
	if t, ok := byID[m.CategoryTypeID]; ok {
		name, goal := t.Name, t.GoalAmount
		m.CategoryName = &name
		m.CategoryGoalAmount = &goal
	}
	return m
}
