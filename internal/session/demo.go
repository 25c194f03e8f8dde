package session

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/finanzas/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const demoExternalAuthID = "demo"

var demoNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("finanzas:demo"))

func demoID(kind string, n int) string {
	return uuid.NewSHA1(demoNamespace, fmt.Appendf(nil, "%s-%d", kind, n)).String()
}

type demoExpense struct {
	name     string
	amount   int64
	category string
}

var demoExpenses = []demoExpense{
	{"Supermercado", 200, "Alimentacion"},
	{"Gasolina", 80, "Transporte"},
	{"Renta", 1000, "Gastos fijos"},
	{"Servicios", 150, "Gastos fijos"},
	{"Ropa", 120, "Compras"},
	{"Cine", 40, "Salidas"},
	{"Ahorro mensual", 800, "Ahorro"},
}

// DemoFixture builds the demo profile with the standard categories and three
// months of movements ending at now. Ids are stable across calls.
func DemoFixture(now time.Time) (models.Profile, []models.CategoryType, []models.Movement) {
	profile := models.Profile{
		ID:             demoID("profile", 1),
		ExternalAuthID: demoExternalAuthID,
		Email:          "demo@example.com",
		DisplayName:    "Demo",
		CreatedAt:      now,
	}

	types := models.StandardCategories()
	byName := make(map[string]string, len(types))
	for i := range types {
		types[i].ID = demoID("type", i+1)
		types[i].OwnerProfileID = profile.ID
		types[i].CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
		byName[types[i].Name] = types[i].ID
	}

	var movements []models.Movement
	add := func(name string, amount int64, date time.Time, description, category string, createdAt time.Time) {
		movements = append(movements, models.Movement{
			ID:             demoID("movement", len(movements)+1),
			Name:           name,
			Amount:         decimal.NewFromInt(amount),
			Date:           date,
			Description:    description,
			CategoryTypeID: byName[category],
			OwnerProfileID: profile.ID,
			CreatedAt:      createdAt,
		})
	}

	for offset := 0; offset < 3; offset++ {
		monthDate := now.AddDate(0, -offset, 0)
		add("Salario Mensual", 4500, monthDate.AddDate(0, 0, -5), "Salario del mes", "Ingresos", monthDate)
		for i, e := range demoExpenses {
			add(e.name, e.amount, monthDate.AddDate(0, 0, -(10+2*i)), "Demo transaction", e.category, monthDate)
		}
	}

	movements = models.Join(movements, types)
	sortByDateDesc(movements)
	return profile, types, movements
}
