package model

// DateNone marks a last-activity date that has not happened yet
// (or was cleared by the daily reset). Activity dates are local
// calendar days formatted as YYYY-MM-DD.
const DateNone = "none"

type User struct {
	ID                string
	PasswordHash      string
	Coins             int
	LastTruthDate     string
	LastDareDate      string
	DareAttemptsToday int
}
