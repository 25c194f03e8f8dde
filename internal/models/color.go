package models

import "github.com/dmitrijs2005/finanzas/internal/common"

// Color is a display color name for a category.
type Color string

const (
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorOrange Color = "orange"
	ColorPurple Color = "purple"
	ColorPink   Color = "pink"
	ColorYellow Color = "yellow"
	ColorCyan   Color = "cyan"
	ColorGray   Color = "gray"
)

var categoryColors = map[string]Color{
	common.CategoryIncome:  ColorGreen,
	common.CategorySavings: ColorBlue,
	"Alimentacion":         ColorOrange,
	"Transporte":           ColorPurple,
	"Compras":              ColorPink,
	"Gastos fijos":         ColorYellow,
	"Salidas":              ColorCyan,
}

// CategoryColor returns the color for a category name, gray if unknown.
func CategoryColor(name string) Color {
	if c, ok := categoryColors[name]; ok {
		return c
	}
	return ColorGray
}
