package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Fee is an event fee as the API reports it. The server sends it either as a
// JSON string or a JSON number; both decode to the same textual form.
type Fee string

func (f *Fee) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Fee(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = Fee(n.String())
	return nil
}

// Amount parses the fee as a number. An empty fee counts as zero.
func (f Fee) Amount() (float64, error) {
	if strings.TrimSpace(string(f)) == "" {
		return 0, nil
	}
	return strconv.ParseFloat(strings.TrimSpace(string(f)), 64)
}

// EventDescriptor is the read-only metadata of a registrable competition.
type EventDescriptor struct {
	ID               uint   `json:"id,omitempty"`
	Name             string `json:"event"`
	Date             string `json:"date,omitempty"`
	Fee              Fee    `json:"fee,omitempty"`
	Description      string `json:"description,omitempty"`
	RegistrationOpen *bool  `json:"registrationOpen,omitempty"`
}

type StatusResponse struct {
	RegistrationOpen bool `json:"registrationOpen"`
}

// CheckResponse answers GET /users/check. Older deployments report only the
// fee at the top level instead of the full event details.
type CheckResponse struct {
	EventDetails    *EventDescriptor `json:"eventDetails,omitempty"`
	EventRegistered bool             `json:"eventRegistered"`
	Fee             Fee              `json:"fee,omitempty"`
}

// EventUpdate carries a partial event edit. Empty fields are left untouched.
type EventUpdate struct {
	EventID     uint   `json:"eventId"`
	Event       string `json:"event,omitempty"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
	Fee         Fee    `json:"fee,omitempty"`
}

type AdminEventResponse struct {
	EventDetails struct {
		Event EventDescriptor `json:"event"`
	} `json:"eventDetails"`
	Message string `json:"message,omitempty"`
}
