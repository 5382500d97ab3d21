package stubapi

import (
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/reso-client/internal/models"
	"gorm.io/gorm"
)

func (s *Server) HandleSuperAdminSignin(ctx context.Context, input *AdminSigninInput) (*AuthOutput, error) {
	return s.signin(ctx, input.Body.AdminEmail, input.Body.AdminPassword, models.RoleSuperAdmin)
}

func (s *Server) HandleSuperAdminProfile(ctx context.Context, input *AuthInput) (*ProfileOutput, error) {
	return s.profile(ctx, input.Authorization, models.RoleSuperAdmin)
}

type CreateEventAdminInput struct {
	AuthInput
	Body models.EventAdminRequest
}

// HandleCreateEventAdmin creates an admin account and the event it manages.
func (s *Server) HandleCreateEventAdmin(ctx context.Context, input *CreateEventAdminInput) (*MessageOutput, error) {
	if _, err := s.Authorize(ctx, input.Authorization, models.RoleSuperAdmin); err != nil {
		return nil, err
	}
	body := input.Body
	email := strings.ToLower(strings.TrimSpace(body.AdminEmail))
	name := strings.ToLower(strings.TrimSpace(body.Event))
	if email == "" || body.AdminPassword == "" || name == "" {
		return nil, huma.Error400BadRequest("Admin email, password and event are required")
	}
	if _, err := body.Fee.Amount(); err != nil {
		return nil, huma.Error400BadRequest("Fee must be a number")
	}
	hash, err := hashPassword(body.AdminPassword)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to hash password")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Account{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return huma.Error409Conflict("Admin already exists")
		}
		if err := tx.Model(&Event{}).Where("name = ? AND admin_id IS NOT NULL", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return huma.Error409Conflict("Event already has an admin")
		}

		account := Account{Name: strings.TrimSpace(body.Name), Email: email, PasswordHash: hash, Role: models.RoleAdmin}
		if err := tx.Create(&account).Error; err != nil {
			return err
		}

		var event Event
		if err := tx.Where(Event{Name: name}).FirstOrInit(&event).Error; err != nil {
			return err
		}
		event.AdminID = &account.ID
		if body.Date != "" {
			event.Date = body.Date
		}
		if body.Description != "" {
			event.Description = body.Description
		}
		if body.Fee != "" {
			event.Fee = string(body.Fee)
		}
		return tx.Save(&event).Error
	})
	var statusErr huma.StatusError
	if errors.As(err, &statusErr) {
		return nil, statusErr
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to create event admin")
	}
	return message("Event Admin Created Successfully"), nil
}

type EventAdminsOutput struct {
	Body models.AdminEventsResponse
}

func (s *Server) HandleEventAdmins(ctx context.Context, input *AuthInput) (*EventAdminsOutput, error) {
	if _, err := s.Authorize(ctx, input.Authorization, models.RoleSuperAdmin); err != nil {
		return nil, err
	}
	var events []Event
	if err := s.db.WithContext(ctx).Where("admin_id IS NOT NULL").Order("id").Find(&events).Error; err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}

	out := &EventAdminsOutput{}
	out.Body.AdminEvent = []models.AdminEvent{}
	for _, event := range events {
		var admin Account
		if err := s.db.WithContext(ctx).First(&admin, *event.AdminID).Error; err != nil {
			continue
		}
		out.Body.AdminEvent = append(out.Body.AdminEvent, models.AdminEvent{
			ID:         admin.ID,
			Name:       admin.Name,
			AdminEmail: admin.Email,
			Event:      event.descriptor(),
		})
	}
	return out, nil
}

func (s *Server) HandleSuperAdminUpdateEvent(ctx context.Context, input *EventUpdateInput) (*MessageOutput, error) {
	if _, err := s.Authorize(ctx, input.Authorization, models.RoleSuperAdmin); err != nil {
		return nil, err
	}
	var event Event
	if err := s.db.WithContext(ctx).First(&event, input.Body.EventID).Error; err != nil {
		return nil, huma.Error404NotFound("Event not found")
	}
	if err := s.applyUpdate(ctx, event, input.Body); err != nil {
		return nil, err
	}
	return message("Event Updated Successfully"), nil
}

type RegistrationOpenOutput struct {
	Body models.RegistrationOpenUpdate
}

type RegistrationOpenInput struct {
	AuthInput
	Body models.RegistrationOpenUpdate
}

func (s *Server) HandleGetRegistrationOpen(ctx context.Context, input *AuthInput) (*RegistrationOpenOutput, error) {
	if _, err := s.Authorize(ctx, input.Authorization, models.RoleSuperAdmin); err != nil {
		return nil, err
	}
	open, err := s.setting(ctx, settingRegistrationOpen)
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}
	return &RegistrationOpenOutput{Body: models.RegistrationOpenUpdate{RegistrationOpen: open}}, nil
}

func (s *Server) HandleSetRegistrationOpen(ctx context.Context, input *RegistrationOpenInput) (*MessageOutput, error) {
	if _, err := s.Authorize(ctx, input.Authorization, models.RoleSuperAdmin); err != nil {
		return nil, err
	}
	if err := s.setSetting(ctx, settingRegistrationOpen, input.Body.RegistrationOpen); err != nil {
		return nil, huma.Error500InternalServerError("Failed to update setting")
	}
	return message(switchMessage("Registration", input.Body.RegistrationOpen)), nil
}

type GameRegistrationOpenOutput struct {
	Body models.GameRegistrationOpenUpdate
}

type GameRegistrationOpenInput struct {
	AuthInput
	Body models.GameRegistrationOpenUpdate
}

func (s *Server) HandleGetGameRegistrationOpen(ctx context.Context, input *AuthInput) (*GameRegistrationOpenOutput, error) {
	if _, err := s.Authorize(ctx, input.Authorization, models.RoleSuperAdmin); err != nil {
		return nil, err
	}
	open, err := s.setting(ctx, settingGameRegistrationOpen)
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}
	return &GameRegistrationOpenOutput{Body: models.GameRegistrationOpenUpdate{GameRegistrationOpen: open}}, nil
}

func (s *Server) HandleSetGameRegistrationOpen(ctx context.Context, input *GameRegistrationOpenInput) (*MessageOutput, error) {
	if _, err := s.Authorize(ctx, input.Authorization, models.RoleSuperAdmin); err != nil {
		return nil, err
	}
	if err := s.setSetting(ctx, settingGameRegistrationOpen, input.Body.GameRegistrationOpen); err != nil {
		return nil, huma.Error500InternalServerError("Failed to update setting")
	}
	return message(switchMessage("Game registration", input.Body.GameRegistrationOpen)), nil
}

func switchMessage(what string, open bool) string {
	if open {
		return what + " opened"
	}
	return what + " closed"
}

type UserRegisteredOutput struct {
	Body models.UserRegisteredResponse
}

func (s *Server) HandleUserRegistered(ctx context.Context, input *AuthInput) (*UserRegisteredOutput, error) {
	if _, err := s.Authorize(ctx, input.Authorization, models.RoleSuperAdmin); err != nil {
		return nil, err
	}
	var rows []Registration
	if err := s.db.WithContext(ctx).Preload("Account").Preload("Event").Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}
	return &UserRegisteredOutput{Body: models.UserRegisteredResponse{EventRegistrationDetails: records(rows)}}, nil
}

type ApproveInput struct {
	AuthInput
	ID   uint `path:"id"`
	Body models.ApprovalUpdate
}

func (s *Server) HandleApprove(ctx context.Context, input *ApproveInput) (*MessageOutput, error) {
	if _, err := s.Authorize(ctx, input.Authorization, models.RoleSuperAdmin); err != nil {
		return nil, err
	}
	res := s.db.WithContext(ctx).Model(&Registration{}).Where("id = ?", input.ID).Update("approved", input.Body.Approved)
	if res.Error != nil {
		return nil, huma.Error500InternalServerError("Failed to update registration")
	}
	if res.RowsAffected == 0 {
		return nil, huma.Error404NotFound("Registration not found")
	}
	if input.Body.Approved {
		return message("Registration approved"), nil
	}
	return message("Registration marked as pending"), nil
}
