package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gdg-garage/reso-client/internal/gateway"
	"github.com/gdg-garage/reso-client/internal/models"
)

// SuperAdmin manages events, their admins, registration switches and approvals.
type SuperAdmin struct {
	api gateway.Requester
}

func NewSuperAdmin(api gateway.Requester) *SuperAdmin {
	return &SuperAdmin{api: api}
}

// CreateEventAdmin creates an event admin account together with its event.
func (s *SuperAdmin) CreateEventAdmin(ctx context.Context, req models.EventAdminRequest) (string, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.AdminEmail = strings.TrimSpace(req.AdminEmail)
	req.Event = strings.TrimSpace(req.Event)
	switch {
	case req.Name == "", req.AdminEmail == "", req.AdminPassword == "":
		return "", errors.New("name, admin email and admin password are required")
	case req.Event == "":
		return "", errors.New("event name is required")
	}
	if _, err := req.Fee.Amount(); err != nil {
		return "", fmt.Errorf("fee must be a number: %w", err)
	}

	var resp models.MessageResponse
	if err := s.api.DoAuth(ctx, http.MethodPost, "/sadmin/event-admin", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (s *SuperAdmin) EventAdmins(ctx context.Context) ([]models.AdminEvent, error) {
	var resp models.AdminEventsResponse
	if err := s.api.DoAuth(ctx, http.MethodGet, "/sadmin/event-admin", nil, &resp); err != nil {
		return nil, err
	}
	return resp.AdminEvent, nil
}

func (s *SuperAdmin) UpdateEvent(ctx context.Context, upd models.EventUpdate) (string, error) {
	return updateEvent(ctx, s.api, "/sadmin/event", upd)
}

// RegistrationOpen reports the switch for non-game events.
func (s *SuperAdmin) RegistrationOpen(ctx context.Context) (bool, error) {
	var resp models.RegistrationOpenUpdate
	if err := s.api.DoAuth(ctx, http.MethodGet, "/sadmin/registration-open", nil, &resp); err != nil {
		return false, err
	}
	return resp.RegistrationOpen, nil
}

func (s *SuperAdmin) SetRegistrationOpen(ctx context.Context, open bool) (string, error) {
	var resp models.MessageResponse
	err := s.api.DoAuth(ctx, http.MethodPut, "/sadmin/registration-open", models.RegistrationOpenUpdate{RegistrationOpen: open}, &resp)
	return resp.Message, err
}

// GameRegistrationOpen reports the switch for game events.
func (s *SuperAdmin) GameRegistrationOpen(ctx context.Context) (bool, error) {
	var resp models.GameRegistrationOpenUpdate
	if err := s.api.DoAuth(ctx, http.MethodGet, "/sadmin/game-registration-open", nil, &resp); err != nil {
		return false, err
	}
	return resp.GameRegistrationOpen, nil
}

func (s *SuperAdmin) SetGameRegistrationOpen(ctx context.Context, open bool) (string, error) {
	var resp models.MessageResponse
	err := s.api.DoAuth(ctx, http.MethodPut, "/sadmin/game-registration-open", models.GameRegistrationOpenUpdate{GameRegistrationOpen: open}, &resp)
	return resp.Message, err
}

// Registrations lists every registration, pending ones first and newest first.
func (s *SuperAdmin) Registrations(ctx context.Context) ([]models.RegistrationRecord, error) {
	var resp models.UserRegisteredResponse
	if err := s.api.DoAuth(ctx, http.MethodGet, "/sadmin/user-registered", nil, &resp); err != nil {
		return nil, err
	}
	SortRegistrations(resp.EventRegistrationDetails)
	return resp.EventRegistrationDetails, nil
}

// Approve sets the approval flag of registration id.
func (s *SuperAdmin) Approve(ctx context.Context, id uint, approved bool) (string, error) {
	if id == 0 {
		return "", errors.New("registration id is required")
	}
	var resp models.MessageResponse
	path := fmt.Sprintf("/sadmin/approve/%d", id)
	if err := s.api.DoAuth(ctx, http.MethodPut, path, models.ApprovalUpdate{Approved: approved}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
