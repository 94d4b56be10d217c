package service

import (
	"github.com/mmynk/cosmocash/internal/calculator"
	"github.com/mmynk/cosmocash/internal/models"
)

// Service names and procedure paths.
const (
	HouseholdServiceName = "cosmocash.v1.HouseholdService"
	LedgerServiceName    = "cosmocash.v1.LedgerService"
	ReportServiceName    = "cosmocash.v1.ReportService"
)

const (
	HouseholdServiceListRoommatesProcedure  = "/" + HouseholdServiceName + "/ListRoommates"
	HouseholdServiceAddRoommateProcedure    = "/" + HouseholdServiceName + "/AddRoommate"
	HouseholdServiceUpdateRoommateProcedure = "/" + HouseholdServiceName + "/UpdateRoommate"
	HouseholdServiceDeleteRoommateProcedure = "/" + HouseholdServiceName + "/DeleteRoommate"
	HouseholdServiceGetCurrentUserProcedure = "/" + HouseholdServiceName + "/GetCurrentUser"
	HouseholdServiceSetCurrentUserProcedure = "/" + HouseholdServiceName + "/SetCurrentUser"
	HouseholdServiceSendMessageProcedure    = "/" + HouseholdServiceName + "/SendMessage"
	HouseholdServiceListMessagesProcedure   = "/" + HouseholdServiceName + "/ListMessages"

	LedgerServiceListExpensesProcedure       = "/" + LedgerServiceName + "/ListExpenses"
	LedgerServiceGetExpenseProcedure         = "/" + LedgerServiceName + "/GetExpense"
	LedgerServiceAddExpenseProcedure         = "/" + LedgerServiceName + "/AddExpense"
	LedgerServiceUpdateExpenseProcedure      = "/" + LedgerServiceName + "/UpdateExpense"
	LedgerServiceDeleteExpenseProcedure      = "/" + LedgerServiceName + "/DeleteExpense"
	LedgerServiceTogglePaidProcedure         = "/" + LedgerServiceName + "/TogglePaid"
	LedgerServiceSplitEvenlyProcedure        = "/" + LedgerServiceName + "/SplitEvenly"
	LedgerServiceListWishlistProcedure       = "/" + LedgerServiceName + "/ListWishlist"
	LedgerServiceAddWishlistItemProcedure    = "/" + LedgerServiceName + "/AddWishlistItem"
	LedgerServiceContributeProcedure         = "/" + LedgerServiceName + "/Contribute"
	LedgerServiceDeleteWishlistItemProcedure = "/" + LedgerServiceName + "/DeleteWishlistItem"

	ReportServiceGetDashboardProcedure = "/" + ReportServiceName + "/GetDashboard"
	ReportServiceGetInsightsProcedure  = "/" + ReportServiceName + "/GetInsights"
)

// Household service messages.

type ListRoommatesRequest struct{}

type ListRoommatesResponse struct {
	Roommates     []models.Roommate `json:"roommates"`
	CurrentUserID string            `json:"currentUserId,omitempty"`
}

type AddRoommateRequest struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

type RoommateResponse struct {
	Roommate models.Roommate `json:"roommate"`
}

type UpdateRoommateRequest struct {
	Roommate models.Roommate `json:"roommate"`
}

type DeleteRequest struct {
	ID      string `json:"id"`
	Confirm bool   `json:"confirm"`
}

type DeleteResponse struct{}

type GetCurrentUserRequest struct{}

type CurrentUserResponse struct {
	CurrentUser *models.Roommate `json:"currentUser"`
}

type SetCurrentUserRequest struct {
	RoommateID string `json:"roommateId"`
}

type SendMessageRequest struct {
	Message string `json:"message"`
}

// ChatEntry is a message with its author's display name resolved.
type ChatEntry struct {
	models.ChatMessage
	Author string `json:"author"`
}

type SendMessageResponse struct {
	Message ChatEntry `json:"message"`
}

type ListMessagesRequest struct{}

type ListMessagesResponse struct {
	Messages []ChatEntry `json:"messages"`
}

// Ledger service messages.

// ExpenseInput is the expense form. Amount is the raw text of the total.
type ExpenseInput struct {
	Description string               `json:"description"`
	Amount      string               `json:"amount"`
	Tag         models.ExpenseTag    `json:"tag"`
	DueDate     string               `json:"dueDate"`
	IsRecurring bool                 `json:"isRecurring"`
	SplitMode   calculator.SplitMode `json:"splitMode"`
	Splits      []calculator.Share   `json:"splits"`
	PayerID     string               `json:"payerId"`
	PayerPaid   bool                 `json:"payerPaid"`
}

type ListExpensesRequest struct {
	Filter string `json:"filter"`
}

type ListExpensesResponse struct {
	Expenses []models.Expense `json:"expenses"`
}

type GetExpenseRequest struct {
	ID string `json:"id"`
}

type AddExpenseRequest struct {
	Expense ExpenseInput `json:"expense"`
}

type UpdateExpenseRequest struct {
	ID      string       `json:"id"`
	Expense ExpenseInput `json:"expense"`
}

type ExpenseResponse struct {
	Expense models.Expense `json:"expense"`
}

type TogglePaidRequest struct {
	ExpenseID  string `json:"expenseId"`
	RoommateID string `json:"roommateId"`
}

type TogglePaidResponse struct {
	Toggled bool `json:"toggled"`
}

type SplitEvenlyRequest struct {
	Amount    string               `json:"amount"`
	SplitMode calculator.SplitMode `json:"splitMode"`
}

type SplitEvenlyResponse struct {
	Splits []calculator.Share `json:"splits"`
}

type ListWishlistRequest struct{}

type ListWishlistResponse struct {
	Items []models.WishlistItem `json:"items"`
}

type AddWishlistItemRequest struct {
	Name         string `json:"name"`
	TargetAmount string `json:"targetAmount"`
}

type ContributeRequest struct {
	ItemID string `json:"itemId"`
	Amount string `json:"amount"`
}

type WishlistItemResponse struct {
	Item models.WishlistItem `json:"item"`
}

// Report service messages.

type GetDashboardRequest struct{}

type WishlistProgress struct {
	Item     models.WishlistItem `json:"item"`
	Progress float64             `json:"progress"`
	Funded   bool                `json:"funded"`
}

type GetDashboardResponse struct {
	CurrentUser      *models.Roommate   `json:"currentUser"`
	PersonalSpending float64            `json:"personalSpending"`
	SharedSpending   float64            `json:"sharedSpending"`
	AmountOwed       float64            `json:"amountOwed"`
	UpcomingBills    []models.Expense   `json:"upcomingBills"`
	Wishlist         []WishlistProgress `json:"wishlist"`
}

type GetInsightsRequest struct{}

// Balance is a roommate's position with the name resolved.
type Balance struct {
	calculator.RoommateBalance
	Name string `json:"name"`
}

type GetInsightsResponse struct {
	TotalSpending float64                     `json:"totalSpending"`
	Breakdown     []calculator.BreakdownSlice `json:"breakdown"`
	Balances      []Balance                   `json:"balances"`
}
