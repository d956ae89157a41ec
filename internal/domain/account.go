package domain

// MinPasswordLength is the shortest password accepted at registration,
// measured after trimming surrounding whitespace.
const MinPasswordLength = 4

// Account is a registered user. AccountID is assigned by the store on
// creation and never changes afterwards; zero means "not yet persisted".
type Account struct {
	AccountID int    `json:"account_id" db:"account_id"`
	Username  string `json:"username" db:"username"`
	// Password is stored as supplied. There is no hashing in this system.
	Password string `json:"password" db:"password"`
}
