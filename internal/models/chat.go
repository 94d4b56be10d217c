package models

// ChatMessage is a message posted to the household chat.
type ChatMessage struct {
	ID         string `json:"id"`
	RoommateID string `json:"roommateId"`
	Message    string `json:"message"`

	// Timestamp is RFC 3339 in UTC.
	Timestamp string `json:"timestamp"`
}
