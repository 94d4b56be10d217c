package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/cosmocash/internal/models"
)

// SplitMode selects how Share values are interpreted.
type SplitMode string

const (
	SplitByAmount     SplitMode = "amount"
	SplitByPercentage SplitMode = "percentage"
)

// Valid reports whether m is a known mode.
func (m SplitMode) Valid() bool {
	return m == SplitByAmount || m == SplitByPercentage
}

var (
	ErrInvalidAmount        = errors.New("please enter a valid total amount")
	ErrSplitMismatch        = errors.New("split amounts do not add up to the total amount")
	ErrPercentageMismatch   = errors.New("percentages do not add up to 100%")
	ErrNoParticipants       = errors.New("must have at least one participant")
	ErrNegativeShare        = errors.New("split values cannot be negative")
	ErrDuplicateParticipant = errors.New("roommate appears more than once in the split")
	ErrUnknownSplitMode     = errors.New("split mode must be amount or percentage")
)

// Share is one roommate's entry in a split form: an absolute amount or a
// percentage depending on the SplitMode, plus the initial paid flag.
type Share struct {
	RoommateID string  `json:"roommateId"`
	Value      float64 `json:"value"`
	Paid       bool    `json:"paid"`
}

// ParseAmount parses a user-entered total. Anything that is not a finite
// positive number is rejected with ErrInvalidAmount.
func ParseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !ValidAmount(v) {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// CalculateSplit validates shares against total and converts them into
// contributions, preserving the order of shares.
//
// Amount mode requires the values to sum to total within Tolerance.
// Percentage mode requires them to sum to 100 within Tolerance and converts
// each to total * pct / 100.
func CalculateSplit(total float64, mode SplitMode, shares []Share) ([]models.Contribution, error) {
	if !ValidAmount(total) {
		return nil, ErrInvalidAmount
	}
	if !mode.Valid() {
		return nil, ErrUnknownSplitMode
	}
	if len(shares) == 0 {
		return nil, ErrNoParticipants
	}

	seen := make(map[string]bool, len(shares))
	values := make([]float64, 0, len(shares))
	for _, s := range shares {
		if seen[s.RoommateID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateParticipant, s.RoommateID)
		}
		seen[s.RoommateID] = true
		if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) || s.Value < 0 {
			return nil, ErrNegativeShare
		}
		values = append(values, s.Value)
	}

	switch mode {
	case SplitByAmount:
		if !SumWithin(values, total) {
			return nil, fmt.Errorf("%w (split $%s, total $%s)", ErrSplitMismatch, FormatAmount(Add(values...)), FormatAmount(total))
		}
	case SplitByPercentage:
		if !SumWithin(values, 100) {
			return nil, fmt.Errorf("%w (got %s%%)", ErrPercentageMismatch, FormatAmount(Add(values...)))
		}
	}

	contributions := make([]models.Contribution, len(shares))
	for i, s := range shares {
		amount := s.Value
		if mode == SplitByPercentage {
			amount = total * s.Value / 100
		}
		contributions[i] = models.Contribution{
			RoommateID: s.RoommateID,
			Amount:     amount,
			Paid:       s.Paid,
		}
	}
	return contributions, nil
}

// SplitEvenly pre-fills one share per roommate: total/N in amount mode or
// 100/N in percentage mode, each rounded to two decimals. It returns nil
// when total is not positive or there are no roommates.
//
// The result is a convenience only; rounding may leave the shares a cent
// off the total, which CalculateSplit tolerates.
func SplitEvenly(total float64, roommateIDs []string, mode SplitMode) []Share {
	if !ValidAmount(total) || len(roommateIDs) == 0 {
		return nil
	}

	whole := decimal.NewFromFloat(total)
	if mode == SplitByPercentage {
		whole = decimal.NewFromInt(100)
	}
	each := whole.Div(decimal.NewFromInt(int64(len(roommateIDs)))).Round(2).InexactFloat64()

	shares := make([]Share, len(roommateIDs))
	for i, id := range roommateIDs {
		shares[i] = Share{RoommateID: id, Value: each}
	}
	return shares
}
