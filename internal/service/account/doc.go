// Package account implements registration, login and account lookups.
//
// Usernames and passwords are trimmed before validation. A username may be
// held by at most one account: the service checks for an existing row before
// inserting, optionally serialises registrations for the same name through a
// distributed lock, and the store rejects duplicates with domain.ErrConflict.
//
// Login is a stateless credential comparison; no session or token is issued.
package account
