package household

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/mmynk/cosmocash/internal/calculator"
	"github.com/mmynk/cosmocash/internal/models"
)

// ExpenseDraft is the submitted content of the expense form.
type ExpenseDraft struct {
	Description string
	Amount      float64
	Tag         models.ExpenseTag // empty means Shared
	DueDate     string            // YYYY-MM-DD; empty means today
	IsRecurring bool

	// Shared expenses only.
	SplitMode calculator.SplitMode // empty means amount
	Shares    []calculator.Share

	// Personal expenses only.
	PayerID   string
	PayerPaid bool
}

// Filter selects a subset of the ledger.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterShared   Filter = "shared"
	FilterPersonal Filter = "personal"
)

// Valid reports whether f is a known filter.
func (f Filter) Valid() bool {
	return f == FilterAll || f == FilterShared || f == FilterPersonal
}

// AddExpense validates draft and appends the resulting expense.
func (h *Household) AddExpense(draft ExpenseDraft) (models.Expense, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	e, err := h.buildExpenseLocked(draft)
	if err != nil {
		return models.Expense{}, err
	}
	e.ID = h.newID()
	h.expenses = append(h.expenses, e)
	h.flushLocked(KeyExpenses)

	slog.Info("Expense added",
		"expense_id", e.ID,
		"tag", e.Tag,
		"amount", e.Amount,
		"contributions", len(e.Contributions),
	)
	return e.Clone(), nil
}

// EditExpense validates draft and overwrites the expense with id, keeping its
// ID and position. Contributions are replaced wholesale.
func (h *Household) EditExpense(id string, draft ExpenseDraft) (models.Expense, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	i := h.expenseIndexLocked(id)
	if i < 0 {
		return models.Expense{}, ErrExpenseNotFound
	}
	e, err := h.buildExpenseLocked(draft)
	if err != nil {
		return models.Expense{}, err
	}
	e.ID = id
	h.expenses[i] = e
	h.flushLocked(KeyExpenses)

	slog.Info("Expense updated", "expense_id", id, "tag", e.Tag, "amount", e.Amount)
	return e.Clone(), nil
}

// DeleteExpense removes the expense with id. Callers confirm beforehand.
func (h *Household) DeleteExpense(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	i := h.expenseIndexLocked(id)
	if i < 0 {
		return ErrExpenseNotFound
	}
	h.expenses = append(h.expenses[:i], h.expenses[i+1:]...)
	h.flushLocked(KeyExpenses)

	slog.Info("Expense deleted", "expense_id", id)
	return nil
}

// TogglePaid flips the paid flag of roommateID's contribution to expenseID.
// It reports whether a contribution was found; a missing pair is a no-op.
func (h *Household) TogglePaid(expenseID, roommateID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	i := h.expenseIndexLocked(expenseID)
	if i < 0 {
		return false
	}
	contributions := h.expenses[i].Contributions
	for j := range contributions {
		if contributions[j].RoommateID == roommateID {
			contributions[j].Paid = !contributions[j].Paid
			h.flushLocked(KeyExpenses)
			slog.Info("Paid status toggled",
				"expense_id", expenseID,
				"roommate_id", roommateID,
				"paid", contributions[j].Paid,
			)
			return true
		}
	}
	return false
}

// Expense returns the expense with id.
func (h *Household) Expense(id string) (models.Expense, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	i := h.expenseIndexLocked(id)
	if i < 0 {
		return models.Expense{}, ErrExpenseNotFound
	}
	return h.expenses[i].Clone(), nil
}

// Expenses returns a lazy view of the ledger matching filter, latest due
// date first. Each iteration reads the ledger afresh, so the sequence can be
// ranged over again to observe later mutations. Unknown filters match nothing.
//
// FilterPersonal matches Personal expenses in which the current user has a
// contribution.
func (h *Household) Expenses(filter Filter) iter.Seq[models.Expense] {
	return func(yield func(models.Expense) bool) {
		h.mu.Lock()
		userID := h.currentUserIDLocked()
		var view []models.Expense
		for _, e := range h.expenses {
			if matchesFilter(e, filter, userID) {
				view = append(view, e.Clone())
			}
		}
		h.mu.Unlock()

		slices.SortStableFunc(view, func(a, b models.Expense) int {
			return b.Due().Compare(a.Due())
		})
		for _, e := range view {
			if !yield(e) {
				return
			}
		}
	}
}

// SplitEvenly pre-fills an even split of total across every roommate.
func (h *Household) SplitEvenly(total float64, mode calculator.SplitMode) []calculator.Share {
	h.mu.Lock()
	ids := make([]string, len(h.roommates))
	for i, r := range h.roommates {
		ids[i] = r.ID
	}
	h.mu.Unlock()
	return calculator.SplitEvenly(total, ids, mode)
}

func matchesFilter(e models.Expense, filter Filter, userID string) bool {
	switch filter {
	case FilterAll:
		return true
	case FilterShared:
		return e.Tag == models.TagShared
	case FilterPersonal:
		return userID != "" && e.Tag == models.TagPersonal && e.Involves(userID)
	}
	return false
}

func (h *Household) buildExpenseLocked(d ExpenseDraft) (models.Expense, error) {
	if !calculator.ValidAmount(d.Amount) {
		return models.Expense{}, fmt.Errorf("%w: %w", ErrInvalid, calculator.ErrInvalidAmount)
	}
	description := strings.TrimSpace(d.Description)
	if description == "" {
		return models.Expense{}, ErrEmptyDescription
	}

	tag := d.Tag
	if tag == "" {
		tag = models.TagShared
	}
	if !tag.Valid() {
		return models.Expense{}, ErrInvalidTag
	}

	due := d.DueDate
	if due == "" {
		due = h.now().Format(models.DateLayout)
	}
	if _, err := time.Parse(models.DateLayout, due); err != nil {
		return models.Expense{}, ErrInvalidDueDate
	}

	e := models.Expense{
		Description: description,
		Amount:      d.Amount,
		Tag:         tag,
		DueDate:     due,
		IsRecurring: d.IsRecurring,
	}

	switch tag {
	case models.TagShared:
		for _, s := range d.Shares {
			if h.roommateIndexLocked(s.RoommateID) < 0 {
				return models.Expense{}, fmt.Errorf("%w: %s", ErrUnknownParticipant, s.RoommateID)
			}
		}
		mode := d.SplitMode
		if mode == "" {
			mode = calculator.SplitByAmount
		}
		contributions, err := calculator.CalculateSplit(d.Amount, mode, d.Shares)
		if err != nil {
			return models.Expense{}, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		e.Contributions = contributions
	case models.TagPersonal:
		if d.PayerID == "" {
			return models.Expense{}, ErrMissingPayer
		}
		if h.roommateIndexLocked(d.PayerID) < 0 {
			return models.Expense{}, fmt.Errorf("%w: %s", ErrUnknownParticipant, d.PayerID)
		}
		e.Contributions = []models.Contribution{{
			RoommateID: d.PayerID,
			Amount:     d.Amount,
			Paid:       d.PayerPaid,
		}}
	}
	return e, nil
}

func (h *Household) expenseIndexLocked(id string) int {
	for i, e := range h.expenses {
		if e.ID == id {
			return i
		}
	}
	return -1
}
