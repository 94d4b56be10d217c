package service

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/cosmocash/internal/calculator"
	"github.com/mmynk/cosmocash/internal/household"
	"github.com/mmynk/cosmocash/internal/models"
)

// ReportService serves the dashboard and the insights view.
type ReportService struct {
	h *household.Household
}

// NewReportService creates a ReportService over h.
func NewReportService(h *household.Household) *ReportService {
	return &ReportService{h: h}
}

// NewReportServiceHandler builds an HTTP handler for every procedure of the
// service and returns the path prefix to mount it on.
func NewReportServiceHandler(svc *ReportService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	mux := http.NewServeMux()
	handle(mux, ReportServiceGetDashboardProcedure, svc.GetDashboard, opts)
	handle(mux, ReportServiceGetInsightsProcedure, svc.GetInsights, opts)
	return "/" + ReportServiceName + "/", mux
}

// GetDashboard returns the current user's figures, the next bills and the
// wishlist progress. Amounts are rounded to cents.
func (s *ReportService) GetDashboard(ctx context.Context, req *connect.Request[GetDashboardRequest]) (*connect.Response[GetDashboardResponse], error) {
	d := s.h.Dashboard()

	upcoming := d.UpcomingBills
	if upcoming == nil {
		upcoming = []models.Expense{}
	}
	wishlist := make([]WishlistProgress, len(d.Wishlist))
	for i, w := range d.Wishlist {
		wishlist[i] = WishlistProgress{Item: w.Item, Progress: calculator.Round2(w.Progress), Funded: w.Funded}
	}
	return connect.NewResponse(&GetDashboardResponse{
		CurrentUser:      d.CurrentUser,
		PersonalSpending: calculator.Round2(d.PersonalSpending),
		SharedSpending:   calculator.Round2(d.SharedSpending),
		AmountOwed:       calculator.Round2(d.AmountOwed),
		UpcomingBills:    upcoming,
		Wishlist:         wishlist,
	}), nil
}

// GetInsights returns the spending breakdown and each roommate's balance.
func (s *ReportService) GetInsights(ctx context.Context, req *connect.Request[GetInsightsRequest]) (*connect.Response[GetInsightsResponse], error) {
	in := s.h.Insights()

	balances := make([]Balance, len(in.Balances))
	for i, b := range in.Balances {
		balances[i] = Balance{RoommateBalance: b, Name: s.h.DisplayName(b.RoommateID)}
	}
	breakdown := in.Breakdown
	if breakdown == nil {
		breakdown = []calculator.BreakdownSlice{}
	}
	return connect.NewResponse(&GetInsightsResponse{
		TotalSpending: calculator.Round2(in.Total),
		Breakdown:     breakdown,
		Balances:      balances,
	}), nil
}
