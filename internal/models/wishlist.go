package models

// WishlistItem represents a shared savings goal.
//
// CurrentAmount always equals the sum of Contributors[].Amount; both are
// updated together on every contribution.
type WishlistItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// Name is what the household is saving for (e.g., "New couch").
	Name string `json:"name"`

	// TargetAmount is the savings goal.
	TargetAmount float64 `json:"targetAmount"`

	// CurrentAmount is the total contributed so far.
	CurrentAmount float64 `json:"currentAmount"`

	// Contributors is append-only, one entry per contribution event.
	// A roommate contributing twice appears twice.
	Contributors []WishlistContribution `json:"contributors"`
}

// WishlistContribution records a single contribution event.
type WishlistContribution struct {
	RoommateID string  `json:"roommateId"`
	Amount     float64 `json:"amount"`
}

// Funded reports whether the goal has been reached.
func (w WishlistItem) Funded() bool {
	return w.CurrentAmount >= w.TargetAmount
}

// Progress returns the funded percentage, 0 when the target is zero.
func (w WishlistItem) Progress() float64 {
	if w.TargetAmount <= 0 {
		return 0
	}
	return w.CurrentAmount / w.TargetAmount * 100
}

// Clone returns a deep copy of the item.
func (w WishlistItem) Clone() WishlistItem {
	out := w
	if w.Contributors != nil {
		out.Contributors = make([]WishlistContribution, len(w.Contributors))
		copy(out.Contributors, w.Contributors)
	}
	return out
}
