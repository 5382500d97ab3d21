package stubapi

import (
	"time"

	"github.com/gdg-garage/reso-client/internal/models"
)

type Account struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         models.Role
	CreatedAt    time.Time
}

func (a Account) profile() models.Profile {
	return models.Profile{Name: a.Name, Email: a.Email, Role: a.Role}
}

type Event struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;not null"`
	Date        string
	Fee         string
	Description string
	Game        bool
	AdminID     *uint
}

func (e Event) descriptor() models.EventDescriptor {
	return models.EventDescriptor{
		ID:          e.ID,
		Name:        e.Name,
		Date:        e.Date,
		Fee:         models.Fee(e.Fee),
		Description: e.Description,
	}
}

// Registration is unique per (account, event).
type Registration struct {
	ID            uint `gorm:"primaryKey"`
	AccountID     uint `gorm:"uniqueIndex:idx_account_event"`
	Account       Account
	EventID       uint `gorm:"uniqueIndex:idx_account_event"`
	Event         Event
	Name          string
	Gender        string
	Contact       string
	Address       string
	TransactionID string
	BankingName   string
	Approved      bool
	TeamName      string
	Players       []models.Player `gorm:"serializer:json"`
	Individual    bool
	CreatedAt     time.Time
}

func (r Registration) record() models.RegistrationRecord {
	rec := models.RegistrationRecord{
		ID:            r.ID,
		Event:         r.Event.descriptor(),
		User:          r.Account.profile(),
		Name:          r.Name,
		Gender:        r.Gender,
		Contact:       r.Contact,
		Address:       r.Address,
		TransactionID: r.TransactionID,
		BankingName:   r.BankingName,
		Approved:      r.Approved,
		Individual:    r.Individual,
		CreatedAt:     r.CreatedAt,
	}
	if !r.Individual {
		rec.Team = &models.Team{TeamName: r.TeamName, Players: models.Roster(r.Players)}
	}
	return rec
}

func records(rows []Registration) []models.RegistrationRecord {
	out := make([]models.RegistrationRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.record())
	}
	return out
}

const (
	settingRegistrationOpen     = "registration_open"
	settingGameRegistrationOpen = "game_registration_open"
)

type Setting struct {
	Key  string `gorm:"primaryKey;column:setting_key"`
	Open bool
}

// Tables lists every table the stub API migrates.
func Tables() []any {
	return []any{&Account{}, &Event{}, &Registration{}, &Setting{}}
}
