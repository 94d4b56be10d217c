package household

import (
	"github.com/mmynk/cosmocash/internal/calculator"
	"github.com/mmynk/cosmocash/internal/models"
)

// Dashboard is the current user's overview.
type Dashboard struct {
	CurrentUser      *models.Roommate
	PersonalSpending float64
	SharedSpending   float64
	AmountOwed       float64
	UpcomingBills    []models.Expense
	Wishlist         []WishlistProgress
}

// WishlistProgress is an item with its derived fund status.
type WishlistProgress struct {
	Item     models.WishlistItem
	Progress float64
	Funded   bool
}

// Insights is the household-wide spending analysis.
type Insights struct {
	Total     float64
	Breakdown []calculator.BreakdownSlice
	Balances  []calculator.RoommateBalance
}

// Dashboard computes the overview from a snapshot of the collections.
// Without a current user the personal figures are zero.
func (h *Household) Dashboard() Dashboard {
	h.mu.Lock()
	s := h.snapshotLocked()
	now := h.now()
	h.mu.Unlock()

	d := Dashboard{
		CurrentUser:    s.CurrentUser,
		SharedSpending: calculator.SharedSpending(s.Expenses),
		UpcomingBills:  calculator.UpcomingBills(s.Expenses, now, calculator.UpcomingLimit),
		Wishlist:       make([]WishlistProgress, 0, len(s.Wishlist)),
	}
	if s.CurrentUser != nil {
		d.PersonalSpending = calculator.PersonalSpending(s.Expenses, s.CurrentUser.ID)
		d.AmountOwed = calculator.AmountOwed(s.Expenses, s.CurrentUser.ID)
	}
	for _, item := range s.Wishlist {
		d.Wishlist = append(d.Wishlist, WishlistProgress{
			Item:     item,
			Progress: item.Progress(),
			Funded:   item.Funded(),
		})
	}
	return d
}

// Insights computes the spending breakdown and per-roommate balances.
func (h *Household) Insights() Insights {
	h.mu.Lock()
	expenses := cloneExpenses(h.expenses)
	h.mu.Unlock()

	amounts := make([]float64, len(expenses))
	for i, e := range expenses {
		amounts[i] = e.Amount
	}
	return Insights{
		Total:     calculator.Add(amounts...),
		Breakdown: calculator.Breakdown(expenses),
		Balances:  calculator.CalculateRoommateBalances(expenses),
	}
}
