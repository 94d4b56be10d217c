package models

// Roommate represents one member of the household.
type Roommate struct {
	// ID is the unique identifier for the roommate (UUID format).
	ID string `json:"id"`

	// Name is the display name (e.g., "Spike").
	Name string `json:"name"`

	// AvatarURL is an opaque image reference, usually a data URI.
	// It is never validated or decoded by the core.
	AvatarURL string `json:"avatarUrl"`
}
