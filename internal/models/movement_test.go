package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/finanzas/internal/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestMovement_Classification(t *testing.T) {
	tests := []struct {
		name     string
		category *string
		income   bool
		saving   bool
		expense  bool
	}{
		{"income", strPtr("Ingresos"), true, false, false},
		{"savings", strPtr("Ahorro"), false, true, false},
		{"plain expense", strPtr("Alimentacion"), false, false, true},
		{"case sensitive", strPtr("ingresos"), false, false, true},
		{"unresolved", nil, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Movement{CategoryName: tt.category}
			assert.Equal(t, tt.income, m.IsIncome())
			assert.Equal(t, tt.saving, m.IsSaving())
			assert.Equal(t, tt.expense, m.IsExpense())
		})
	}
}

func TestMovement_ClassificationIsExclusive(t *testing.T) {
	for _, name := range []string{"Ingresos", "Ahorro", "Alimentacion", "Transporte", "", "Sin categoría"} {
		m := Movement{CategoryName: strPtr(name)}
		n := 0
		for _, b := range []bool{m.IsIncome(), m.IsSaving(), m.IsExpense()} {
			if b {
				n++
			}
		}
		assert.Equal(t, 1, n, name)
	}
}

func TestJoin(t *testing.T) {
	types := []CategoryType{
		{ID: "t1", Name: "Ingresos", GoalAmount: decimal.NewFromInt(5000)},
		{ID: "t2", Name: "Alimentacion", GoalAmount: decimal.NewFromInt(800)},
	}
	stale := "old name"
	movements := []Movement{
		{ID: "m1", CategoryTypeID: "t1"},
		{ID: "m2", CategoryTypeID: "t2", CategoryName: &stale},
		{ID: "m3", CategoryTypeID: "gone", CategoryName: &stale},
	}

	got := Join(movements, types)
	require.Len(t, got, 3)

	byID := map[string]CategoryType{"t1": types[0], "t2": types[1]}
	for _, m := range got {
		if ct, ok := byID[m.CategoryTypeID]; ok {
			require.NotNil(t, m.CategoryName)
			assert.Equal(t, ct.Name, *m.CategoryName)
			require.NotNil(t, m.CategoryGoalAmount)
			assert.True(t, ct.GoalAmount.Equal(*m.CategoryGoalAmount))
		} else {
			assert.Nil(t, m.CategoryName)
			assert.Nil(t, m.CategoryGoalAmount)
		}
	}

	// input is left untouched
	assert.Nil(t, movements[0].CategoryName)
	assert.Equal(t, "old name", *movements[1].CategoryName)
}

func TestJoinOne(t *testing.T) {
	types := []CategoryType{{ID: "t1", Name: "Ahorro"}}
	m := JoinOne(Movement{CategoryTypeID: "t1"}, types)
	require.NotNil(t, m.CategoryName)
	assert.True(t, m.IsSaving())
}

func TestMovement_EqualIgnoresDerivedFields(t *testing.T) {
	d := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	a := Movement{ID: "m1", Name: "Cine", Amount: decimal.RequireFromString("40.00"), Date: d, CategoryTypeID: "t", OwnerProfileID: "p"}
	b := a
	b.Amount = decimal.NewFromInt(40)
	b.Date = d.In(time.FixedZone("x", 3600))
	b.CategoryName = strPtr("Salidas")

	assert.True(t, a.Equal(b))

	b.Description = "changed"
	assert.False(t, a.Equal(b))
}

func TestMovement_Validate(t *testing.T) {
	valid := Movement{
		Name:           "Gasolina",
		Amount:         decimal.NewFromInt(80),
		Date:           time.Now(),
		CategoryTypeID: "t",
		OwnerProfileID: "p",
	}
	require.NoError(t, valid.Validate())

	tests := map[string]func(m *Movement){
		"empty name":  func(m *Movement) { m.Name = "  " },
		"zero amount": func(m *Movement) { m.Amount = decimal.Zero },
		"negative":    func(m *Movement) { m.Amount = decimal.NewFromInt(-1) },
		"no date":     func(m *Movement) { m.Date = time.Time{} },
		"no category": func(m *Movement) { m.CategoryTypeID = "" },
		"no owner":    func(m *Movement) { m.OwnerProfileID = "" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			m := valid
			mutate(&m)
			assert.ErrorIs(t, m.Validate(), common.ErrInvalidArgument)
		})
	}
}

func TestMovement_JSONKeys(t *testing.T) {
	name := "Alimentacion"
	goal := decimal.NewFromInt(800)
	m := Movement{
		ID:                 "m1",
		Name:               "Supermercado",
		Amount:             decimal.NewFromInt(200),
		Date:               time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		CategoryTypeID:     "t2",
		OwnerProfileID:     "p1",
		CategoryName:       &name,
		CategoryGoalAmount: &goal,
	}
	b, err := json.Marshal(m)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	for _, k := range []string{"id", "nombre", "importe", "fecha", "id_tipo_movimiento", "usuario_id", "tipo_nombre", "tipo_meta"} {
		assert.Contains(t, raw, k)
	}
	assert.NotContains(t, raw, "created_at")
	assert.NotContains(t, raw, "descripcion")
}
