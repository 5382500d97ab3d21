package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Player is one entrant of a team roster.
type Player struct {
	Name       string `json:"name"`
	GameID     string `json:"gameId,omitempty"`
	Gender     string `json:"gender"`
	TeamLeader bool   `json:"teamLeader"`
}

// Roster decodes either a JSON array of players or a string holding one,
// since the API has served both shapes.
type Roster []Player

func (r *Roster) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if raw == "" {
			*r = nil
			return nil
		}
		data = []byte(raw)
	}
	var players []Player
	if err := json.Unmarshal(data, &players); err != nil {
		return err
	}
	*r = players
	return nil
}

type Team struct {
	TeamName string `json:"teamName"`
	Players  Roster `json:"players"`
}

// RegistrationRecord is a confirmed registration as listed by the server.
type RegistrationRecord struct {
	ID            uint            `json:"id,omitempty"`
	Event         EventDescriptor `json:"event"`
	User          Profile         `json:"user"`
	Name          string          `json:"name"`
	Gender        string          `json:"gender,omitempty"`
	Contact       string          `json:"contact"`
	Address       string          `json:"address"`
	TransactionID string          `json:"transactionId"`
	BankingName   string          `json:"bankingName"`
	Approved      bool            `json:"approved"`
	Team          *Team           `json:"team,omitempty"`
	Individual    bool            `json:"individual"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// RegisterRequest is the body of POST /users/register.
type RegisterRequest struct {
	Event         string   `json:"event"`
	Name          string   `json:"name"`
	TeamName      string   `json:"teamName,omitempty"`
	Gender        string   `json:"gender,omitempty"`
	Contact       string   `json:"contact"`
	Address       string   `json:"address"`
	TransactionID string   `json:"transactionId"`
	BankingName   string   `json:"bankingName"`
	Players       []Player `json:"players,omitempty"`
	Individual    bool     `json:"individual"`
}

type RegisteredResponse struct {
	RegisteredDetails []RegistrationRecord `json:"registeredDetails"`
}

type UserRegisteredResponse struct {
	EventRegistrationDetails []RegistrationRecord `json:"eventRegistrationDetails"`
}

type ApprovalUpdate struct {
	Approved bool `json:"approved"`
}
