package models

// EventAdminRequest creates an event admin account together with its event.
type EventAdminRequest struct {
	Name          string `json:"name"`
	AdminEmail    string `json:"adminEmail"`
	AdminPassword string `json:"adminPassword"`
	Event         string `json:"event"`
	Date          string `json:"date"`
	Description   string `json:"description"`
	Fee           Fee    `json:"fee"`
}

type AdminEvent struct {
	ID         uint            `json:"id"`
	Name       string          `json:"name"`
	AdminEmail string          `json:"adminEmail"`
	Event      EventDescriptor `json:"event"`
}

type AdminEventsResponse struct {
	AdminEvent []AdminEvent `json:"adminEvent"`
	Message    string       `json:"message,omitempty"`
}

type RegistrationOpenUpdate struct {
	RegistrationOpen bool `json:"registrationOpen"`
}

type GameRegistrationOpenUpdate struct {
	GameRegistrationOpen bool `json:"gameRegistrationOpen"`
}
