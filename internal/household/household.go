// Package household holds the application state of one household: roommates,
// the expense ledger, the wishlist fund, the chat and the current user.
//
// Every mutation runs to completion under a single lock and then hands the
// affected collections to a persist.Writer. Reads return copies, and all
// aggregates are recomputed from the collections on each call.
package household

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/cosmocash/internal/models"
	"github.com/mmynk/cosmocash/internal/persist"
)

// Keys of the persisted layout, one JSON document each.
const (
	KeyRoommates   = "roommates"
	KeyExpenses    = "expenses"
	KeyWishlist    = "wishlist"
	KeyChat        = "chat"
	KeyCurrentUser = "currentUser"
)

// State is a detached copy of everything a Household holds.
type State struct {
	Roommates   []models.Roommate
	Expenses    []models.Expense
	Wishlist    []models.WishlistItem
	Chat        []models.ChatMessage
	CurrentUser *models.Roommate
}

// Household owns the collections and exposes the ledger, fund and
// roommate operations.
type Household struct {
	mu        sync.Mutex
	roommates []models.Roommate
	expenses  []models.Expense
	wishlist  []models.WishlistItem
	chat      []models.ChatMessage
	current   *models.Roommate

	writer persist.Writer
	now    func() time.Time
	newID  func() string
}

// Option configures a Household.
type Option func(*Household)

// WithClock overrides the time source used for default due dates, upcoming
// bills and chat timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *Household) { h.now = now }
}

// WithIDGenerator overrides UUID generation.
func WithIDGenerator(newID func() string) Option {
	return func(h *Household) { h.newID = newID }
}

// New creates a Household from state. A nil writer keeps everything in memory.
//
// When state has no current user, the first roommate (if any) becomes the
// current user.
func New(state State, writer persist.Writer, opts ...Option) *Household {
	h := &Household{
		roommates: cloneRoommates(state.Roommates),
		expenses:  cloneExpenses(state.Expenses),
		wishlist:  cloneWishlist(state.Wishlist),
		chat:      cloneChat(state.Chat),
		writer:    writer,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(h)
	}

	switch {
	case state.CurrentUser != nil:
		u := *state.CurrentUser
		h.current = &u
	case len(h.roommates) > 0:
		u := h.roommates[0]
		h.current = &u
	}
	return h
}

// Snapshot returns a deep copy of the current state.
func (h *Household) Snapshot() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snapshotLocked()
}

func (h *Household) snapshotLocked() State {
	s := State{
		Roommates: cloneRoommates(h.roommates),
		Expenses:  cloneExpenses(h.expenses),
		Wishlist:  cloneWishlist(h.wishlist),
		Chat:      cloneChat(h.chat),
	}
	if h.current != nil {
		u := *h.current
		s.CurrentUser = &u
	}
	return s
}

// flushLocked serializes the collections named by keys and hands them to
// the writer. Encoding failures are logged; the in-memory state is kept.
func (h *Household) flushLocked(keys ...string) {
	if h.writer == nil {
		return
	}
	for _, key := range keys {
		var v any
		switch key {
		case KeyRoommates:
			v = h.roommates
		case KeyExpenses:
			v = h.expenses
		case KeyWishlist:
			v = h.wishlist
		case KeyChat:
			v = h.chat
		case KeyCurrentUser:
			v = h.current
		default:
			continue
		}
		data, err := json.Marshal(v)
		if err != nil {
			slog.Error("Failed to encode collection", "key", key, "error", err)
			continue
		}
		h.writer.Write(key, data)
	}
}

func (h *Household) currentUserIDLocked() string {
	if h.current == nil {
		return ""
	}
	return h.current.ID
}

func cloneRoommates(in []models.Roommate) []models.Roommate {
	out := make([]models.Roommate, len(in))
	copy(out, in)
	return out
}

func cloneExpenses(in []models.Expense) []models.Expense {
	out := make([]models.Expense, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}

func cloneWishlist(in []models.WishlistItem) []models.WishlistItem {
	out := make([]models.WishlistItem, len(in))
	for i, w := range in {
		out[i] = w.Clone()
	}
	return out
}

func cloneChat(in []models.ChatMessage) []models.ChatMessage {
	out := make([]models.ChatMessage, len(in))
	copy(out, in)
	return out
}
