// Package models defines the ledger domain types: profiles bound to an
// external identity, user-owned category types and the movements recorded
// against them. JSON tags mirror the stored snake_case column names.
package models
