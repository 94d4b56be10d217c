package calculator

import (
	"slices"

	"github.com/mmynk/cosmocash/internal/models"
)

// RoommateBalance summarizes one roommate's position across the ledger.
type RoommateBalance struct {
	RoommateID  string  `json:"roommateId"`
	TotalShare  float64 `json:"totalShare"`  // Sum of all contribution amounts
	TotalPaid   float64 `json:"totalPaid"`   // Portion already marked paid
	Outstanding float64 `json:"outstanding"` // Portion still unpaid
}

// CalculateRoommateBalances aggregates contributions per roommate.
//
// Algorithm:
// - For each contribution: share += amount
// - paid contributions add to TotalPaid, unpaid ones to Outstanding
// - Result is ordered by Outstanding descending, then RoommateID
//
// Roommate IDs are taken from the contributions, so deleted roommates still
// appear here and callers resolve names as they see fit.
func CalculateRoommateBalances(expenses []models.Expense) []RoommateBalance {
	balances := make(map[string]*RoommateBalance)

	for _, e := range expenses {
		for _, c := range e.Contributions {
			bal, exists := balances[c.RoommateID]
			if !exists {
				bal = &RoommateBalance{RoommateID: c.RoommateID}
				balances[c.RoommateID] = bal
			}
			bal.TotalShare = Add(bal.TotalShare, c.Amount)
			if c.Paid {
				bal.TotalPaid = Add(bal.TotalPaid, c.Amount)
			} else {
				bal.Outstanding = Add(bal.Outstanding, c.Amount)
			}
		}
	}

	result := make([]RoommateBalance, 0, len(balances))
	for _, bal := range balances {
		result = append(result, *bal)
	}
	slices.SortFunc(result, func(a, b RoommateBalance) int {
		switch {
		case a.Outstanding > b.Outstanding:
			return -1
		case a.Outstanding < b.Outstanding:
			return 1
		case a.RoommateID < b.RoommateID:
			return -1
		case a.RoommateID > b.RoommateID:
			return 1
		}
		return 0
	})
	return result
}
