// Package aggregate derives the ledger views from an in-memory movement list
// and a Filter: filtered lists, totals, a per-category expense breakdown,
// a twelve-month series and the set of years with data.
//
// Every function is pure. None of them can fail; empty input yields empty
// or zero results.
package aggregate
