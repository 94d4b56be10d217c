package models

import "time"

// DateLayout is the persisted format of Expense.DueDate.
const DateLayout = "2006-01-02"

// ExpenseTag classifies an expense as personal or shared.
type ExpenseTag string

const (
	TagPersonal ExpenseTag = "Personal"
	TagShared   ExpenseTag = "Shared"
)

// Valid reports whether t is one of the known tags.
func (t ExpenseTag) Valid() bool {
	return t == TagPersonal || t == TagShared
}

// Expense represents a bill owed by one or more roommates.
//
// For a Shared expense the contribution amounts sum to Amount (within 0.01).
// A Personal expense has exactly one contribution carrying the full Amount.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Description is the human-readable label (e.g., "Electricity").
	Description string `json:"description"`

	// Amount is the total bill amount.
	Amount float64 `json:"amount"`

	// Tag is Personal or Shared.
	Tag ExpenseTag `json:"tag"`

	// DueDate is the due date in DateLayout format.
	DueDate string `json:"dueDate"`

	// IsRecurring marks a monthly recurring bill. Informational only.
	IsRecurring bool `json:"isRecurring"`

	// Contributions holds one entry per participating roommate.
	Contributions []Contribution `json:"contributions"`
}

// Contribution is one roommate's share of an expense.
type Contribution struct {
	RoommateID string  `json:"roommateId"`
	Amount     float64 `json:"amount"`
	Paid       bool    `json:"paid"`
}

// Due parses DueDate. Malformed dates yield the zero time.
func (e Expense) Due() time.Time {
	t, err := time.Parse(DateLayout, e.DueDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ContributionFor returns the contribution of roommateID, if any.
func (e Expense) ContributionFor(roommateID string) (Contribution, bool) {
	for _, c := range e.Contributions {
		if c.RoommateID == roommateID {
			return c, true
		}
	}
	return Contribution{}, false
}

// Involves reports whether roommateID has a contribution on the expense.
func (e Expense) Involves(roommateID string) bool {
	_, ok := e.ContributionFor(roommateID)
	return ok
}

// Clone returns a deep copy of the expense.
func (e Expense) Clone() Expense {
	out := e
	if e.Contributions != nil {
		out.Contributions = make([]Contribution, len(e.Contributions))
		copy(out.Contributions, e.Contributions)
	}
	return out
}
