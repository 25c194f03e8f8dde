// Package cli implements the interactive finanzas shell.
//
// The shell reads one command per line. Signing in takes a provider access
// token, which goes through the same auth event path as tokens delivered
// over AMQP; demo starts a session over a fixed in-memory ledger.
//
// Commands
//
//	help                       show available commands
//	login [token]              sign in with an access token
//	demo                       start the demo session
//	logout                     sign out and clear all data
//	status                     show session state and filter
//	summary                    totals, category breakdown and monthly series
//	list                       movements matching the filter
//	add                        record a movement
//	edit <id>                  change a movement
//	delete <id>                remove a movement
//	filter year|month|category|reset [value]
//	years                      years that have movements
//	months                     month numbers and names
//	categories                 list categories
//	addcategory                create a category
//	seed                       create the standard categories
//	profile                    change email and display name
//	exit | quit                leave the program
package cli
