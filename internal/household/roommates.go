package household

import (
	"log/slog"
	"strings"

	"github.com/mmynk/cosmocash/internal/models"
)

// UnknownRoommate is the display name for IDs that no longer resolve.
const UnknownRoommate = "Unknown"

// AddRoommate creates a roommate. The first roommate added to a household
// without a current user becomes the current user.
func (h *Household) AddRoommate(name, avatarURL string) (models.Roommate, error) {
	name = strings.TrimSpace(name)
	if err := validateProfile(name, avatarURL); err != nil {
		return models.Roommate{}, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	r := models.Roommate{ID: h.newID(), Name: name, AvatarURL: avatarURL}
	h.roommates = append(h.roommates, r)

	keys := []string{KeyRoommates}
	if h.current == nil {
		u := r
		h.current = &u
		keys = append(keys, KeyCurrentUser)
	}
	h.flushLocked(keys...)

	slog.Info("Roommate added", "roommate_id", r.ID, "name", r.Name)
	return r, nil
}

// EditRoommate replaces the roommate with the same ID. The current-user copy
// follows the edit.
func (h *Household) EditRoommate(r models.Roommate) (models.Roommate, error) {
	r.Name = strings.TrimSpace(r.Name)
	if err := validateProfile(r.Name, r.AvatarURL); err != nil {
		return models.Roommate{}, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	i := h.roommateIndexLocked(r.ID)
	if i < 0 {
		return models.Roommate{}, ErrRoommateNotFound
	}
	h.roommates[i] = r

	keys := []string{KeyRoommates}
	if h.current != nil && h.current.ID == r.ID {
		u := r
		h.current = &u
		keys = append(keys, KeyCurrentUser)
	}
	h.flushLocked(keys...)

	slog.Info("Roommate updated", "roommate_id", r.ID)
	return r, nil
}

// DeleteRoommate removes a roommate. References to the ID in expenses, the
// wishlist and the chat are left in place and resolve to UnknownRoommate.
// The current user cannot be removed.
func (h *Household) DeleteRoommate(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	i := h.roommateIndexLocked(id)
	if i < 0 {
		return ErrRoommateNotFound
	}
	if h.current != nil && h.current.ID == id {
		return ErrDeleteCurrentUser
	}
	h.roommates = append(h.roommates[:i], h.roommates[i+1:]...)
	h.flushLocked(KeyRoommates)

	slog.Info("Roommate removed", "roommate_id", id)
	return nil
}

// SetCurrentUser switches the viewpoint to the roommate with id.
func (h *Household) SetCurrentUser(id string) (models.Roommate, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	i := h.roommateIndexLocked(id)
	if i < 0 {
		return models.Roommate{}, ErrRoommateNotFound
	}
	u := h.roommates[i]
	h.current = &u
	h.flushLocked(KeyCurrentUser)

	slog.Info("Current user changed", "roommate_id", id)
	return u, nil
}

// CurrentUser returns the current user, if one is selected.
func (h *Household) CurrentUser() (models.Roommate, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return models.Roommate{}, false
	}
	return *h.current, true
}

// Roommates returns all roommates in insertion order.
func (h *Household) Roommates() []models.Roommate {
	h.mu.Lock()
	defer h.mu.Unlock()
	return cloneRoommates(h.roommates)
}

// LookupRoommate resolves id. Missing IDs are not an error.
func (h *Household) LookupRoommate(id string) (models.Roommate, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	i := h.roommateIndexLocked(id)
	if i < 0 {
		return models.Roommate{}, false
	}
	return h.roommates[i], true
}

// DisplayName returns the roommate's name or UnknownRoommate.
func (h *Household) DisplayName(id string) string {
	if r, ok := h.LookupRoommate(id); ok {
		return r.Name
	}
	return UnknownRoommate
}

func (h *Household) roommateIndexLocked(id string) int {
	for i, r := range h.roommates {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func validateProfile(name, avatarURL string) error {
	if name == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(avatarURL) == "" {
		return ErrEmptyAvatar
	}
	return nil
}
