// Package session owns the signed-in user's state: the resolved Profile,
// the in-memory ledger and the filter selection.
//
// A Controller moves between Unauthenticated, Authenticating and Ready. It is
// only Ready once a Profile is resolved, or when running in demo mode, where
// a fixed fixture replaces provisioning and storage entirely.
package session
