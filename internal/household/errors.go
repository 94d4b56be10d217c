package household

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by Household wraps exactly one of these,
// so callers can branch with errors.Is without knowing the specific cause.
var (
	ErrInvalid      = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrPrecondition = errors.New("precondition failed")
)

var (
	ErrRoommateNotFound     = fmt.Errorf("roommate %w", ErrNotFound)
	ErrExpenseNotFound      = fmt.Errorf("expense %w", ErrNotFound)
	ErrWishlistItemNotFound = fmt.Errorf("wishlist item %w", ErrNotFound)

	ErrEmptyName           = fmt.Errorf("%w: name can't be empty", ErrInvalid)
	ErrEmptyAvatar         = fmt.Errorf("%w: please provide an avatar", ErrInvalid)
	ErrEmptyDescription    = fmt.Errorf("%w: description can't be empty", ErrInvalid)
	ErrInvalidDueDate      = fmt.Errorf("%w: due date must be YYYY-MM-DD", ErrInvalid)
	ErrInvalidTag          = fmt.Errorf("%w: tag must be Personal or Shared", ErrInvalid)
	ErrMissingPayer        = fmt.Errorf("%w: a personal expense needs the roommate it belongs to", ErrInvalid)
	ErrUnknownParticipant  = fmt.Errorf("%w: split references an unknown roommate", ErrInvalid)
	ErrInvalidTarget       = fmt.Errorf("%w: target amount must be a positive number", ErrInvalid)
	ErrInvalidContribution = fmt.Errorf("%w: contribution must be a positive number", ErrInvalid)
	ErrExceedsRemaining    = fmt.Errorf("%w: contribution cannot exceed the remaining amount", ErrInvalid)
	ErrEmptyMessage        = fmt.Errorf("%w: message can't be empty", ErrInvalid)

	ErrNoCurrentUser     = fmt.Errorf("%w: no current user selected", ErrPrecondition)
	ErrDeleteCurrentUser = fmt.Errorf("%w: the current user cannot be removed", ErrPrecondition)
)
