// Package stubapi is a self-contained implementation of the festival
// registration API, used for local runs and end-to-end tests of the client.
package stubapi

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/reso-client/internal/catalog"
	"github.com/gdg-garage/reso-client/internal/models"
	"gorm.io/gorm"
)

// apiError is the error body the client expects: a single message field.
type apiError struct {
	status  int
	Message string `json:"message"`
}

func (e *apiError) Error() string  { return e.Message }
func (e *apiError) GetStatus() int { return e.status }

func init() {
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		details := make([]string, 0, len(errs))
		for _, err := range errs {
			if err != nil {
				details = append(details, err.Error())
			}
		}
		if len(details) > 0 {
			msg = msg + ": " + strings.Join(details, "; ")
		}
		return &apiError{status: status, Message: msg}
	}
}

const alreadyRegistered = "Already Registered in this Event"

type Server struct {
	db     *gorm.DB
	secret []byte
}

func New(db *gorm.DB, secret string) *Server {
	return &Server{db: db, secret: []byte(secret)}
}

// SeedCatalog creates every platform event of the catalog that does not
// exist yet, with fee as its registration fee, and opens registration.
func (s *Server) SeedCatalog(fee models.Fee) error {
	for _, schema := range catalog.All() {
		if schema.Mode == catalog.Offsite {
			continue
		}
		event := Event{
			Name:        schema.ID,
			Fee:         string(fee),
			Description: schema.DisplayName(),
			Game:        schema.Game(),
		}
		err := s.db.Where(Event{Name: schema.ID}).Attrs(event).FirstOrCreate(&Event{}).Error
		if err != nil {
			return fmt.Errorf("seed event %s: %w", schema.ID, err)
		}
	}
	for _, key := range []string{settingRegistrationOpen, settingGameRegistrationOpen} {
		err := s.db.Where(Setting{Key: key}).Attrs(Setting{Open: true}).FirstOrCreate(&Setting{}).Error
		if err != nil {
			return fmt.Errorf("seed setting %s: %w", key, err)
		}
	}
	return nil
}

// EnsureAccount creates an account unless one with the same email exists.
func (s *Server) EnsureAccount(name, email, password string, role models.Role) (Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var account Account
	err := s.db.Where("email = ?", email).First(&account).Error
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Account{}, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return Account{}, err
	}
	account = Account{Name: name, Email: email, PasswordHash: hash, Role: role}
	if err := s.db.Create(&account).Error; err != nil {
		return Account{}, err
	}
	log.Printf("Created %s account %s", role, email)
	return account, nil
}

func (s *Server) setting(ctx context.Context, key string) (bool, error) {
	var setting Setting
	err := s.db.WithContext(ctx).Where(Setting{Key: key}).Attrs(Setting{Open: true}).FirstOrCreate(&setting).Error
	return setting.Open, err
}

func (s *Server) setSetting(ctx context.Context, key string, open bool) error {
	return s.db.WithContext(ctx).Save(&Setting{Key: key, Open: open}).Error
}

// eventOpen applies the general switch to every event and the game switch
// on top of it for game events.
func (s *Server) eventOpen(ctx context.Context, event Event) (bool, error) {
	open, err := s.setting(ctx, settingRegistrationOpen)
	if err != nil || !open || !event.Game {
		return open, err
	}
	return s.setting(ctx, settingGameRegistrationOpen)
}
