package service

import (
	"context"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/cosmocash/internal/household"
	"github.com/mmynk/cosmocash/internal/models"
)

// HouseholdService implements roommate management, the current-user switch
// and the chat.
type HouseholdService struct {
	h *household.Household
}

// NewHouseholdService creates a HouseholdService over h.
func NewHouseholdService(h *household.Household) *HouseholdService {
	return &HouseholdService{h: h}
}

// NewHouseholdServiceHandler builds an HTTP handler for every procedure of
// the service and returns the path prefix to mount it on.
func NewHouseholdServiceHandler(svc *HouseholdService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	mux := http.NewServeMux()
	handle(mux, HouseholdServiceListRoommatesProcedure, svc.ListRoommates, opts)
	handle(mux, HouseholdServiceAddRoommateProcedure, svc.AddRoommate, opts)
	handle(mux, HouseholdServiceUpdateRoommateProcedure, svc.UpdateRoommate, opts)
	handle(mux, HouseholdServiceDeleteRoommateProcedure, svc.DeleteRoommate, opts)
	handle(mux, HouseholdServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts)
	handle(mux, HouseholdServiceSetCurrentUserProcedure, svc.SetCurrentUser, opts)
	handle(mux, HouseholdServiceSendMessageProcedure, svc.SendMessage, opts)
	handle(mux, HouseholdServiceListMessagesProcedure, svc.ListMessages, opts)
	return "/" + HouseholdServiceName + "/", mux
}

func handle[Req, Res any](
	mux *http.ServeMux,
	procedure string,
	fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts []connect.HandlerOption,
) {
	mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, opts...))
}

// ListRoommates returns all roommates and the current user's ID.
func (s *HouseholdService) ListRoommates(ctx context.Context, req *connect.Request[ListRoommatesRequest]) (*connect.Response[ListRoommatesResponse], error) {
	res := &ListRoommatesResponse{Roommates: s.h.Roommates()}
	if u, ok := s.h.CurrentUser(); ok {
		res.CurrentUserID = u.ID
	}
	return connect.NewResponse(res), nil
}

// AddRoommate creates a roommate profile.
func (s *HouseholdService) AddRoommate(ctx context.Context, req *connect.Request[AddRoommateRequest]) (*connect.Response[RoommateResponse], error) {
	slog.Info("AddRoommate called", "name", req.Msg.Name)

	r, err := s.h.AddRoommate(req.Msg.Name, req.Msg.AvatarURL)
	if err != nil {
		return nil, toConnectError("AddRoommate", err)
	}
	return connect.NewResponse(&RoommateResponse{Roommate: r}), nil
}

// UpdateRoommate replaces a roommate's profile.
func (s *HouseholdService) UpdateRoommate(ctx context.Context, req *connect.Request[UpdateRoommateRequest]) (*connect.Response[RoommateResponse], error) {
	slog.Info("UpdateRoommate called", "roommate_id", req.Msg.Roommate.ID)

	r, err := s.h.EditRoommate(req.Msg.Roommate)
	if err != nil {
		return nil, toConnectError("UpdateRoommate", err)
	}
	return connect.NewResponse(&RoommateResponse{Roommate: r}), nil
}

// DeleteRoommate removes a roommate once confirmed.
func (s *HouseholdService) DeleteRoommate(ctx context.Context, req *connect.Request[DeleteRequest]) (*connect.Response[DeleteResponse], error) {
	slog.Info("DeleteRoommate called", "roommate_id", req.Msg.ID, "confirm", req.Msg.Confirm)

	if err := requireConfirmation(req.Msg.Confirm); err != nil {
		return nil, err
	}
	if err := s.h.DeleteRoommate(req.Msg.ID); err != nil {
		return nil, toConnectError("DeleteRoommate", err)
	}
	return connect.NewResponse(&DeleteResponse{}), nil
}

// GetCurrentUser returns the selected roommate, or null.
func (s *HouseholdService) GetCurrentUser(ctx context.Context, req *connect.Request[GetCurrentUserRequest]) (*connect.Response[CurrentUserResponse], error) {
	res := &CurrentUserResponse{}
	if u, ok := s.h.CurrentUser(); ok {
		res.CurrentUser = &u
	}
	return connect.NewResponse(res), nil
}

// SetCurrentUser switches the viewpoint roommate.
func (s *HouseholdService) SetCurrentUser(ctx context.Context, req *connect.Request[SetCurrentUserRequest]) (*connect.Response[CurrentUserResponse], error) {
	u, err := s.h.SetCurrentUser(req.Msg.RoommateID)
	if err != nil {
		return nil, toConnectError("SetCurrentUser", err)
	}
	return connect.NewResponse(&CurrentUserResponse{CurrentUser: &u}), nil
}

// SendMessage posts to the chat as the current user.
func (s *HouseholdService) SendMessage(ctx context.Context, req *connect.Request[SendMessageRequest]) (*connect.Response[SendMessageResponse], error) {
	msg, err := s.h.SendMessage(req.Msg.Message)
	if err != nil {
		return nil, toConnectError("SendMessage", err)
	}
	return connect.NewResponse(&SendMessageResponse{Message: s.chatEntry(msg)}), nil
}

// ListMessages returns the chat log, oldest first.
func (s *HouseholdService) ListMessages(ctx context.Context, req *connect.Request[ListMessagesRequest]) (*connect.Response[ListMessagesResponse], error) {
	messages := s.h.Messages()
	entries := make([]ChatEntry, len(messages))
	for i, m := range messages {
		entries[i] = s.chatEntry(m)
	}
	return connect.NewResponse(&ListMessagesResponse{Messages: entries}), nil
}

func (s *HouseholdService) chatEntry(m models.ChatMessage) ChatEntry {
	return ChatEntry{ChatMessage: m, Author: s.h.DisplayName(m.RoommateID)}
}
