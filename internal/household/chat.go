package household

import (
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/cosmocash/internal/models"
)

// SendMessage posts text to the household chat as the current user.
func (h *Household) SendMessage(text string) (models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current == nil {
		return models.ChatMessage{}, ErrNoCurrentUser
	}
	msg := models.ChatMessage{
		ID:         h.newID(),
		RoommateID: h.current.ID,
		Message:    text,
		Timestamp:  h.now().UTC().Format(time.RFC3339),
	}
	h.chat = append(h.chat, msg)
	h.flushLocked(KeyChat)

	slog.Info("Chat message sent", "message_id", msg.ID, "roommate_id", msg.RoommateID)
	return msg, nil
}

// Messages returns the chat log, oldest first.
func (h *Household) Messages() []models.ChatMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	return cloneChat(h.chat)
}
