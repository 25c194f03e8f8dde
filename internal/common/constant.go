// Package common contains shared constants and sentinel errors used across
// finanzas components.
package common

// Reserved category names. Classification treats these specially; every
// other name is a plain expense category.
const (
	CategoryIncome  = "Ingresos"
	CategorySavings = "Ahorro"
)

// UncategorizedLabel groups expenses whose category could not be resolved.
const UncategorizedLabel = "Sin categoría"

// DefaultProfileEmail is stored when the upstream identity carries no email.
const DefaultProfileEmail = "user@example.com"

// Storage collections.
const (
	TableProfiles   = "usuarios"
	TableCategories = "tipo_movimiento"
	TableMovements  = "movimientos"
)
