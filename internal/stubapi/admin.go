package stubapi

import (
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/reso-client/internal/models"
	"gorm.io/gorm"
)

type AdminSigninInput struct {
	Body models.AdminSigninRequest
}

func (s *Server) HandleAdminSignin(ctx context.Context, input *AdminSigninInput) (*AuthOutput, error) {
	return s.signin(ctx, input.Body.AdminEmail, input.Body.AdminPassword, models.RoleAdmin)
}

func (s *Server) HandleAdminProfile(ctx context.Context, input *AuthInput) (*ProfileOutput, error) {
	return s.profile(ctx, input.Authorization, models.RoleAdmin)
}

func (s *Server) ownEvent(ctx context.Context, account Account) (Event, error) {
	var event Event
	err := s.db.WithContext(ctx).Where("admin_id = ?", account.ID).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Event{}, huma.Error404NotFound("No event assigned to this admin")
	}
	if err != nil {
		return Event{}, huma.Error500InternalServerError("Database error")
	}
	return event, nil
}

type AdminEventOutput struct {
	Body models.AdminEventResponse
}

func (s *Server) HandleAdminEvent(ctx context.Context, input *AuthInput) (*AdminEventOutput, error) {
	account, err := s.Authorize(ctx, input.Authorization, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	event, err := s.ownEvent(ctx, account)
	if err != nil {
		return nil, err
	}
	out := &AdminEventOutput{}
	out.Body.EventDetails.Event = event.descriptor()
	return out, nil
}

type EventUpdateInput struct {
	AuthInput
	Body models.EventUpdate
}

// applyUpdate writes the non-empty fields of upd onto event.
func (s *Server) applyUpdate(ctx context.Context, event Event, upd models.EventUpdate) error {
	changes := map[string]any{}
	if v := strings.TrimSpace(upd.Event); v != "" {
		changes["name"] = strings.ToLower(v)
	}
	if v := strings.TrimSpace(upd.Date); v != "" {
		changes["date"] = v
	}
	if v := strings.TrimSpace(upd.Description); v != "" {
		changes["description"] = v
	}
	if v := strings.TrimSpace(string(upd.Fee)); v != "" {
		if _, err := upd.Fee.Amount(); err != nil {
			return huma.Error400BadRequest("Fee must be a number")
		}
		changes["fee"] = v
	}
	if len(changes) == 0 {
		return huma.Error400BadRequest("Nothing to update")
	}
	if err := s.db.WithContext(ctx).Model(&event).Updates(changes).Error; err != nil {
		return huma.Error500InternalServerError("Failed to update event")
	}
	return nil
}

func (s *Server) HandleAdminUpdateEvent(ctx context.Context, input *EventUpdateInput) (*MessageOutput, error) {
	account, err := s.Authorize(ctx, input.Authorization, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	event, err := s.ownEvent(ctx, account)
	if err != nil {
		return nil, err
	}
	if input.Body.EventID != event.ID {
		return nil, huma.Error403Forbidden("You can only update your own event")
	}
	if err := s.applyUpdate(ctx, event, input.Body); err != nil {
		return nil, err
	}
	return message("Event Updated Successfully"), nil
}

func (s *Server) HandleAdminRegistered(ctx context.Context, input *AuthInput) (*RegisteredOutput, error) {
	account, err := s.Authorize(ctx, input.Authorization, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	event, err := s.ownEvent(ctx, account)
	if err != nil {
		return nil, err
	}
	var rows []Registration
	err = s.db.WithContext(ctx).Preload("Account").Preload("Event").
		Where("event_id = ?", event.ID).Order("created_at desc").Find(&rows).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}
	return &RegisteredOutput{Body: models.RegisteredResponse{RegisteredDetails: records(rows)}}, nil
}
