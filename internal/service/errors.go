package service

import (
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/cosmocash/internal/calculator"
	"github.com/mmynk/cosmocash/internal/household"
)

var errConfirmationRequired = errors.New("confirmation required")

// toConnectError maps household error classes to Connect codes.
func toConnectError(op string, err error) *connect.Error {
	code := connect.CodeInternal
	switch {
	case errors.Is(err, household.ErrInvalid):
		code = connect.CodeInvalidArgument
	case errors.Is(err, household.ErrNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, household.ErrPrecondition):
		code = connect.CodeFailedPrecondition
	}
	if code == connect.CodeInternal {
		slog.Error(op+" failed", "error", err)
	} else {
		slog.Debug(op+" rejected", "code", code, "error", err)
	}
	return connect.NewError(code, err)
}

func requireConfirmation(confirm bool) error {
	if !confirm {
		return connect.NewError(connect.CodeFailedPrecondition, errConfirmationRequired)
	}
	return nil
}

// parseAmount reads a form amount. Anything that is not a positive number is
// reported as invalid, with cause as the message.
func parseAmount(raw string, cause error) (float64, error) {
	v, err := calculator.ParseAmount(raw)
	if err != nil {
		return 0, connect.NewError(connect.CodeInvalidArgument, cause)
	}
	return v, nil
}
