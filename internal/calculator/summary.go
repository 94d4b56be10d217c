package calculator

import (
	"slices"
	"time"

	"github.com/mmynk/cosmocash/internal/models"
)

// UpcomingLimit is how many upcoming bills the dashboard shows.
const UpcomingLimit = 3

// PersonalSpending sums Personal expenses in which userID has a contribution.
func PersonalSpending(expenses []models.Expense, userID string) float64 {
	total := 0.0
	for _, e := range expenses {
		if e.Tag == models.TagPersonal && e.Involves(userID) {
			total += e.Amount
		}
	}
	return total
}

// SharedSpending sums every Shared expense regardless of participants.
func SharedSpending(expenses []models.Expense) float64 {
	total := 0.0
	for _, e := range expenses {
		if e.Tag == models.TagShared {
			total += e.Amount
		}
	}
	return total
}

// AmountOwed sums userID's unpaid contributions across all expenses,
// whatever their tag.
func AmountOwed(expenses []models.Expense, userID string) float64 {
	total := 0.0
	for _, e := range expenses {
		for _, c := range e.Contributions {
			if c.RoommateID == userID && !c.Paid {
				total += c.Amount
			}
		}
	}
	return total
}

// UpcomingBills returns expenses due on or after the calendar day of now,
// earliest first, capped at limit. Expenses with malformed due dates are
// skipped. A limit <= 0 means no cap.
func UpcomingBills(expenses []models.Expense, now time.Time, limit int) []models.Expense {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var upcoming []models.Expense
	for _, e := range expenses {
		due := e.Due()
		if due.IsZero() || due.Before(today) {
			continue
		}
		upcoming = append(upcoming, e.Clone())
	}
	slices.SortStableFunc(upcoming, func(a, b models.Expense) int {
		return a.Due().Compare(b.Due())
	})
	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

// BreakdownSlice is one bucket of the spending breakdown.
type BreakdownSlice struct {
	Label   string            `json:"label"`
	Tag     models.ExpenseTag `json:"tag"`
	Amount  float64           `json:"amount"`
	Percent float64           `json:"percent"`
}

// Breakdown splits total spending into a Shared and a Personal bucket.
// Buckets with a zero total are omitted; Percent is relative to the sum of
// the remaining buckets.
func Breakdown(expenses []models.Expense) []BreakdownSlice {
	shared := SharedSpending(expenses)
	personal := 0.0
	for _, e := range expenses {
		if e.Tag == models.TagPersonal {
			personal += e.Amount
		}
	}

	var buckets []BreakdownSlice
	if shared != 0 {
		buckets = append(buckets, BreakdownSlice{Label: "Shared Expenses", Tag: models.TagShared, Amount: shared})
	}
	if personal != 0 {
		buckets = append(buckets, BreakdownSlice{Label: "Personal Expenses", Tag: models.TagPersonal, Amount: personal})
	}

	total := shared + personal
	for i := range buckets {
		if total != 0 {
			buckets[i].Percent = buckets[i].Amount / total * 100
		}
	}
	return buckets
}
