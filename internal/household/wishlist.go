package household

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/cosmocash/internal/calculator"
	"github.com/mmynk/cosmocash/internal/models"
)

// AddWishlistItem starts a new fund with nothing saved.
func (h *Household) AddWishlistItem(name string, target float64) (models.WishlistItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.WishlistItem{}, ErrEmptyName
	}
	if !calculator.ValidAmount(target) {
		return models.WishlistItem{}, ErrInvalidTarget
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	item := models.WishlistItem{
		ID:           h.newID(),
		Name:         name,
		TargetAmount: target,
		Contributors: []models.WishlistContribution{},
	}
	h.wishlist = append(h.wishlist, item)
	h.flushLocked(KeyWishlist)

	slog.Info("Wishlist item added", "item_id", item.ID, "target", target)
	return item.Clone(), nil
}

// Contribute records amount from the current user towards the item. The
// contribution may not take the item past its target.
func (h *Household) Contribute(itemID string, amount float64) (models.WishlistItem, error) {
	if !calculator.ValidAmount(amount) {
		return models.WishlistItem{}, ErrInvalidContribution
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current == nil {
		return models.WishlistItem{}, ErrNoCurrentUser
	}
	i := h.wishlistIndexLocked(itemID)
	if i < 0 {
		return models.WishlistItem{}, ErrWishlistItemNotFound
	}

	item := &h.wishlist[i]
	remaining := max(calculator.Remaining(item.TargetAmount, item.CurrentAmount), 0)
	if calculator.Exceeds(amount, remaining) {
		return models.WishlistItem{}, fmt.Errorf("%w of $%s", ErrExceedsRemaining, calculator.FormatAmount(remaining))
	}

	item.Contributors = append(item.Contributors, models.WishlistContribution{
		RoommateID: h.current.ID,
		Amount:     amount,
	})
	item.CurrentAmount = calculator.Add(item.CurrentAmount, amount)
	h.flushLocked(KeyWishlist)

	slog.Info("Wishlist contribution",
		"item_id", itemID,
		"roommate_id", h.current.ID,
		"amount", amount,
		"funded", item.Funded(),
	)
	return item.Clone(), nil
}

// DeleteWishlistItem removes the item together with its contributions.
func (h *Household) DeleteWishlistItem(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	i := h.wishlistIndexLocked(id)
	if i < 0 {
		return ErrWishlistItemNotFound
	}
	h.wishlist = append(h.wishlist[:i], h.wishlist[i+1:]...)
	h.flushLocked(KeyWishlist)

	slog.Info("Wishlist item deleted", "item_id", id)
	return nil
}

// Wishlist returns every item in insertion order.
func (h *Household) Wishlist() []models.WishlistItem {
	h.mu.Lock()
	defer h.mu.Unlock()
	return cloneWishlist(h.wishlist)
}

func (h *Household) wishlistIndexLocked(id string) int {
	for i, w := range h.wishlist {
		if w.ID == id {
			return i
		}
	}
	return -1
}
