package stubapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/reso-client/internal/catalog"
	"github.com/gdg-garage/reso-client/internal/models"
	"gorm.io/gorm"
)

type SignupInput struct {
	Body models.SignupRequest
}

type SigninInput struct {
	Body models.SigninRequest
}

type AuthOutput struct {
	Body models.AuthResponse
}

type MessageOutput struct {
	Body models.MessageResponse
}

func message(msg string) *MessageOutput {
	return &MessageOutput{Body: models.MessageResponse{Message: msg}}
}

func (s *Server) issue(account Account, msg string) (*AuthOutput, error) {
	token, err := s.GenerateToken(account)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}
	return &AuthOutput{Body: models.AuthResponse{
		Authorization: token,
		UserData:      account.profile(),
		Message:       msg,
	}}, nil
}

func (s *Server) HandleSignup(ctx context.Context, input *SignupInput) (*AuthOutput, error) {
	name := strings.TrimSpace(input.Body.Name)
	email := strings.ToLower(strings.TrimSpace(input.Body.Email))
	if name == "" || email == "" || input.Body.Password == "" {
		return nil, huma.Error400BadRequest("Name, email and password are required")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&Account{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}
	if count > 0 {
		return nil, huma.Error409Conflict("User already exists")
	}

	hash, err := hashPassword(input.Body.Password)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to hash password")
	}
	account := Account{Name: name, Email: email, PasswordHash: hash, Role: models.RoleUser}
	if err := s.db.WithContext(ctx).Create(&account).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create user")
	}
	return s.issue(account, "Signed up successfully")
}

func (s *Server) signin(ctx context.Context, email, password string, role models.Role) (*AuthOutput, error) {
	var account Account
	err := s.db.WithContext(ctx).Where("email = ? AND role = ?", strings.ToLower(strings.TrimSpace(email)), role).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, huma.Error404NotFound("User not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}
	if !checkPassword(account.PasswordHash, password) {
		return nil, huma.Error400BadRequest("Invalid Password")
	}
	return s.issue(account, "Signed in successfully")
}

func (s *Server) HandleSignin(ctx context.Context, input *SigninInput) (*AuthOutput, error) {
	return s.signin(ctx, input.Body.Email, input.Body.Password, models.RoleUser)
}

type AuthStatusOutput struct {
	Body models.AuthStatus
}

func (s *Server) HandleIsLoggedIn(ctx context.Context, input *AuthInput) (*AuthStatusOutput, error) {
	account, err := s.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}
	return &AuthStatusOutput{Body: models.AuthStatus{Auth: account.Role}}, nil
}

type StatusOutput struct {
	Body models.StatusResponse
}

func (s *Server) HandleStatus(ctx context.Context, input *struct{}) (*StatusOutput, error) {
	open, err := s.setting(ctx, settingRegistrationOpen)
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}
	return &StatusOutput{Body: models.StatusResponse{RegistrationOpen: open}}, nil
}

func (s *Server) HandleGameStatus(ctx context.Context, input *struct{}) (*StatusOutput, error) {
	open, err := s.setting(ctx, settingGameRegistrationOpen)
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}
	return &StatusOutput{Body: models.StatusResponse{RegistrationOpen: open}}, nil
}

type CheckInput struct {
	AuthInput
	Event string `query:"event" doc:"Event identifier"`
}

type CheckOutput struct {
	Body models.CheckResponse
}

func (s *Server) findEvent(ctx context.Context, name string) (Event, error) {
	var event Event
	err := s.db.WithContext(ctx).Where("name = ?", strings.ToLower(strings.TrimSpace(name))).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Event{}, huma.Error404NotFound("Event not found")
	}
	if err != nil {
		return Event{}, huma.Error500InternalServerError("Database error")
	}
	return event, nil
}

func (s *Server) registered(ctx context.Context, accountID, eventID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Registration{}).
		Where("account_id = ? AND event_id = ?", accountID, eventID).
		Count(&count).Error
	return count > 0, err
}

// HandleCheck answers whether the caller may still register for an event.
// An existing registration is reported as a conflict.
func (s *Server) HandleCheck(ctx context.Context, input *CheckInput) (*CheckOutput, error) {
	account, err := s.Authorize(ctx, input.Authorization, models.RoleUser)
	if err != nil {
		return nil, err
	}
	event, err := s.findEvent(ctx, input.Event)
	if err != nil {
		return nil, err
	}
	done, err := s.registered(ctx, account.ID, event.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}
	if done {
		return nil, huma.Error409Conflict(alreadyRegistered)
	}

	open, err := s.eventOpen(ctx, event)
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}
	desc := event.descriptor()
	desc.RegistrationOpen = &open
	return &CheckOutput{Body: models.CheckResponse{EventDetails: &desc, Fee: desc.Fee}}, nil
}

type RegisterInput struct {
	AuthInput
	Body models.RegisterRequest
}

func validateRoster(eventName string, players []models.Player) error {
	if len(players) == 0 {
		return errors.New("players are required for team events")
	}
	if schema, ok := catalog.Lookup(eventName); ok && schema.Mode == catalog.Team {
		if len(players) < schema.MinPlayers() || len(players) > schema.MaxPlayers() {
			return fmt.Errorf("team must have between %d and %d players", schema.MinPlayers(), schema.MaxPlayers())
		}
	}
	for i, p := range players {
		if p.TeamLeader != (i == 0) {
			return errors.New("the first player must be the only team leader")
		}
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("player %d name is required", i+1)
		}
	}
	return nil
}

func (s *Server) HandleRegister(ctx context.Context, input *RegisterInput) (*MessageOutput, error) {
	account, err := s.Authorize(ctx, input.Authorization, models.RoleUser)
	if err != nil {
		return nil, err
	}
	body := input.Body
	event, err := s.findEvent(ctx, body.Event)
	if err != nil {
		return nil, err
	}

	open, err := s.eventOpen(ctx, event)
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}
	if !open {
		return nil, huma.Error403Forbidden("Registration is closed")
	}
	if strings.TrimSpace(body.TransactionID) == "" || strings.TrimSpace(body.BankingName) == "" {
		return nil, huma.Error400BadRequest("Payment details are required")
	}
	if !body.Individual {
		if strings.TrimSpace(body.TeamName) == "" {
			return nil, huma.Error400BadRequest("Team name is required")
		}
		if err := validateRoster(event.Name, body.Players); err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}
	}

	registration := Registration{
		AccountID:     account.ID,
		EventID:       event.ID,
		Name:          body.Name,
		Gender:        body.Gender,
		Contact:       body.Contact,
		Address:       body.Address,
		TransactionID: body.TransactionID,
		BankingName:   body.BankingName,
		TeamName:      body.TeamName,
		Players:       body.Players,
		Individual:    body.Individual,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Registration{}).Where("account_id = ? AND event_id = ?", account.ID, event.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return huma.Error409Conflict(alreadyRegistered)
		}
		return tx.Create(&registration).Error
	})
	var statusErr huma.StatusError
	if errors.As(err, &statusErr) {
		return nil, statusErr
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to save registration")
	}
	return message("Registered Successfully"), nil
}

type RegisteredOutput struct {
	Body models.RegisteredResponse
}

func (s *Server) HandleRegistered(ctx context.Context, input *AuthInput) (*RegisteredOutput, error) {
	account, err := s.Authorize(ctx, input.Authorization, models.RoleUser)
	if err != nil {
		return nil, err
	}
	var rows []Registration
	err = s.db.WithContext(ctx).Preload("Account").Preload("Event").
		Where("account_id = ?", account.ID).Order("created_at desc").Find(&rows).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error")
	}
	return &RegisteredOutput{Body: models.RegisteredResponse{RegisteredDetails: records(rows)}}, nil
}

type ProfileOutput struct {
	Body models.ProfileResponse
}

func (s *Server) profile(ctx context.Context, header string, role models.Role) (*ProfileOutput, error) {
	account, err := s.Authorize(ctx, header, role)
	if err != nil {
		return nil, err
	}
	return &ProfileOutput{Body: models.ProfileResponse{UserData: account.profile()}}, nil
}

func (s *Server) HandleUserProfile(ctx context.Context, input *AuthInput) (*ProfileOutput, error) {
	return s.profile(ctx, input.Authorization, models.RoleUser)
}
