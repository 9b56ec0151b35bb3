package model

// ActivityKind values double as the on-disk type field of a record line.
type ActivityKind int

const (
	KindTruth ActivityKind = 0
	KindDare  ActivityKind = 1
)

// Dare outcome labels, stored verbatim in the record's response field.
const (
	OutcomeComplete = "Complete"
	OutcomeFail     = "Fail"
	OutcomeInvalid  = "Invalid Choice"
)

// ActivityRecord is append-only: written once when a round finishes,
// never mutated afterwards.
type ActivityRecord struct {
	UserID      string
	Date        string
	Kind        ActivityKind
	ContentID   int
	Response    string
	CoinsEarned int
}
