package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"connectrpc.com/connect"

	"github.com/mmynk/cosmocash/internal/calculator"
	"github.com/mmynk/cosmocash/internal/household"
	"github.com/mmynk/cosmocash/internal/models"
)

// LedgerService implements the expense ledger and the wishlist fund.
type LedgerService struct {
	h *household.Household
}

// NewLedgerService creates a LedgerService over h.
func NewLedgerService(h *household.Household) *LedgerService {
	return &LedgerService{h: h}
}

// NewLedgerServiceHandler builds an HTTP handler for every procedure of the
// service and returns the path prefix to mount it on.
func NewLedgerServiceHandler(svc *LedgerService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	mux := http.NewServeMux()
	handle(mux, LedgerServiceListExpensesProcedure, svc.ListExpenses, opts)
	handle(mux, LedgerServiceGetExpenseProcedure, svc.GetExpense, opts)
	handle(mux, LedgerServiceAddExpenseProcedure, svc.AddExpense, opts)
	handle(mux, LedgerServiceUpdateExpenseProcedure, svc.UpdateExpense, opts)
	handle(mux, LedgerServiceDeleteExpenseProcedure, svc.DeleteExpense, opts)
	handle(mux, LedgerServiceTogglePaidProcedure, svc.TogglePaid, opts)
	handle(mux, LedgerServiceSplitEvenlyProcedure, svc.SplitEvenly, opts)
	handle(mux, LedgerServiceListWishlistProcedure, svc.ListWishlist, opts)
	handle(mux, LedgerServiceAddWishlistItemProcedure, svc.AddWishlistItem, opts)
	handle(mux, LedgerServiceContributeProcedure, svc.Contribute, opts)
	handle(mux, LedgerServiceDeleteWishlistItemProcedure, svc.DeleteWishlistItem, opts)
	return "/" + LedgerServiceName + "/", mux
}

// ListExpenses returns the filtered ledger, latest due date first. An empty
// filter means all.
func (s *LedgerService) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	filter := household.Filter(req.Msg.Filter)
	if filter == "" {
		filter = household.FilterAll
	}
	if !filter.Valid() {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown filter %q", req.Msg.Filter))
	}

	expenses := slices.Collect(s.h.Expenses(filter))
	if expenses == nil {
		expenses = []models.Expense{}
	}
	return connect.NewResponse(&ListExpensesResponse{Expenses: expenses}), nil
}

// GetExpense returns one expense.
func (s *LedgerService) GetExpense(ctx context.Context, req *connect.Request[GetExpenseRequest]) (*connect.Response[ExpenseResponse], error) {
	e, err := s.h.Expense(req.Msg.ID)
	if err != nil {
		return nil, toConnectError("GetExpense", err)
	}
	return connect.NewResponse(&ExpenseResponse{Expense: e}), nil
}

// AddExpense validates the form and records a new expense.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[ExpenseResponse], error) {
	slog.Info("AddExpense called",
		"description", req.Msg.Expense.Description,
		"tag", req.Msg.Expense.Tag,
		"splits", len(req.Msg.Expense.Splits),
	)

	draft, err := toDraft(req.Msg.Expense)
	if err != nil {
		return nil, err
	}
	e, err := s.h.AddExpense(draft)
	if err != nil {
		return nil, toConnectError("AddExpense", err)
	}
	return connect.NewResponse(&ExpenseResponse{Expense: e}), nil
}

// UpdateExpense overwrites an expense with the submitted form.
func (s *LedgerService) UpdateExpense(ctx context.Context, req *connect.Request[UpdateExpenseRequest]) (*connect.Response[ExpenseResponse], error) {
	slog.Info("UpdateExpense called", "expense_id", req.Msg.ID)

	draft, err := toDraft(req.Msg.Expense)
	if err != nil {
		return nil, err
	}
	e, err := s.h.EditExpense(req.Msg.ID, draft)
	if err != nil {
		return nil, toConnectError("UpdateExpense", err)
	}
	return connect.NewResponse(&ExpenseResponse{Expense: e}), nil
}

// DeleteExpense removes an expense once confirmed.
func (s *LedgerService) DeleteExpense(ctx context.Context, req *connect.Request[DeleteRequest]) (*connect.Response[DeleteResponse], error) {
	slog.Info("DeleteExpense called", "expense_id", req.Msg.ID, "confirm", req.Msg.Confirm)

	if err := requireConfirmation(req.Msg.Confirm); err != nil {
		return nil, err
	}
	if err := s.h.DeleteExpense(req.Msg.ID); err != nil {
		return nil, toConnectError("DeleteExpense", err)
	}
	return connect.NewResponse(&DeleteResponse{}), nil
}

// TogglePaid flips one roommate's paid flag. A missing pair is not an error.
func (s *LedgerService) TogglePaid(ctx context.Context, req *connect.Request[TogglePaidRequest]) (*connect.Response[TogglePaidResponse], error) {
	toggled := s.h.TogglePaid(req.Msg.ExpenseID, req.Msg.RoommateID)
	return connect.NewResponse(&TogglePaidResponse{Toggled: toggled}), nil
}

// SplitEvenly suggests an even split across all roommates. An amount that
// does not parse yields no suggestion.
func (s *LedgerService) SplitEvenly(ctx context.Context, req *connect.Request[SplitEvenlyRequest]) (*connect.Response[SplitEvenlyResponse], error) {
	mode := req.Msg.SplitMode
	if mode == "" {
		mode = calculator.SplitByAmount
	}
	if !mode.Valid() {
		return nil, connect.NewError(connect.CodeInvalidArgument, calculator.ErrUnknownSplitMode)
	}

	splits := []calculator.Share{}
	if total, err := calculator.ParseAmount(req.Msg.Amount); err == nil {
		if shares := s.h.SplitEvenly(total, mode); shares != nil {
			splits = shares
		}
	}
	return connect.NewResponse(&SplitEvenlyResponse{Splits: splits}), nil
}

// ListWishlist returns every wishlist item.
func (s *LedgerService) ListWishlist(ctx context.Context, req *connect.Request[ListWishlistRequest]) (*connect.Response[ListWishlistResponse], error) {
	return connect.NewResponse(&ListWishlistResponse{Items: s.h.Wishlist()}), nil
}

// AddWishlistItem starts a savings goal.
func (s *LedgerService) AddWishlistItem(ctx context.Context, req *connect.Request[AddWishlistItemRequest]) (*connect.Response[WishlistItemResponse], error) {
	slog.Info("AddWishlistItem called", "name", req.Msg.Name)

	target, err := parseAmount(req.Msg.TargetAmount, household.ErrInvalidTarget)
	if err != nil {
		return nil, err
	}
	item, err := s.h.AddWishlistItem(req.Msg.Name, target)
	if err != nil {
		return nil, toConnectError("AddWishlistItem", err)
	}
	return connect.NewResponse(&WishlistItemResponse{Item: item}), nil
}

// Contribute adds the current user's contribution to a wishlist item.
func (s *LedgerService) Contribute(ctx context.Context, req *connect.Request[ContributeRequest]) (*connect.Response[WishlistItemResponse], error) {
	slog.Info("Contribute called", "item_id", req.Msg.ItemID, "amount", req.Msg.Amount)

	amount, err := parseAmount(req.Msg.Amount, household.ErrInvalidContribution)
	if err != nil {
		return nil, err
	}
	item, err := s.h.Contribute(req.Msg.ItemID, amount)
	if err != nil {
		return nil, toConnectError("Contribute", err)
	}
	return connect.NewResponse(&WishlistItemResponse{Item: item}), nil
}

// DeleteWishlistItem removes an item and its contributions once confirmed.
func (s *LedgerService) DeleteWishlistItem(ctx context.Context, req *connect.Request[DeleteRequest]) (*connect.Response[DeleteResponse], error) {
	slog.Info("DeleteWishlistItem called", "item_id", req.Msg.ID, "confirm", req.Msg.Confirm)

	if err := requireConfirmation(req.Msg.Confirm); err != nil {
		return nil, err
	}
	if err := s.h.DeleteWishlistItem(req.Msg.ID); err != nil {
		return nil, toConnectError("DeleteWishlistItem", err)
	}
	return connect.NewResponse(&DeleteResponse{}), nil
}

func toDraft(in ExpenseInput) (household.ExpenseDraft, error) {
	amount, err := parseAmount(in.Amount, calculator.ErrInvalidAmount)
	if err != nil {
		return household.ExpenseDraft{}, err
	}
	return household.ExpenseDraft{
		Description: in.Description,
		Amount:      amount,
		Tag:         in.Tag,
		DueDate:     in.DueDate,
		IsRecurring: in.IsRecurring,
		SplitMode:   in.SplitMode,
		Shares:      in.Splits,
		PayerID:     in.PayerID,
		PayerPaid:   in.PayerPaid,
	}, nil
}
