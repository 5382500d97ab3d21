// Package admin implements the event-admin and super-admin consoles.
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

var ErrEmptyUpdate = errors.New("nothing to update")

// EventAdmin manages the single event owned by an event admin.
type EventAdmin struct {
	api gateway.Requester
}

func NewEventAdmin(api gateway.Requester) *EventAdmin {
	return &EventAdmin{api: api}
}

func (a *EventAdmin) Event(ctx context.Context) (models.EventDescriptor, error) {
	var resp models.AdminEventResponse
	if err := a.api.DoAuth(ctx, http.MethodGet, "/admin/event", nil, &resp); err != nil {
		return models.EventDescriptor{}, err
	}
	return resp.EventDetails.Event, nil
}

// UpdateEvent sends the non-empty fields of upd and returns the server message.
func (a *EventAdmin) UpdateEvent(ctx context.Context, upd models.EventUpdate) (string, error) {
	return updateEvent(ctx, a.api, "/admin/event", upd)
}

func (a *EventAdmin) Registered(ctx context.Context) ([]models.RegistrationRecord, error) {
	var resp models.RegisteredResponse
	if err := a.api.DoAuth(ctx, http.MethodGet, "/admin/registered", nil, &resp); err != nil {
		return nil, err
	}
	SortRegistrations(resp.RegisteredDetails)
	return resp.RegisteredDetails, nil
}

func updateEvent(ctx context.Context, api gateway.Requester, path string, upd models.EventUpdate) (string, error) {
	upd.Event = strings.TrimSpace(upd.Event)
	upd.Date = strings.TrimSpace(upd.Date)
	upd.Description = strings.TrimSpace(upd.Description)
	upd.Fee = models.Fee(strings.TrimSpace(string(upd.Fee)))

	if upd.EventID == 0 {
		return "", errors.New("event id is required")
	}
	if upd.Event == "" && upd.Date == "" && upd.Description == "" && upd.Fee == "" {
		return "", ErrEmptyUpdate
	}
	if _, err := upd.Fee.Amount(); err != nil {
		return "", fmt.Errorf("fee must be a number: %w", err)
	}

	var resp models.MessageResponse
	if err := api.DoAuth(ctx, http.MethodPut, path, upd, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
