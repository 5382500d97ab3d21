package models

import "time"

// StateEntry is one persisted key of the local client state.
type StateEntry struct {
	Key       string `gorm:"primaryKey;column:state_key"`
	Value     string
	UpdatedAt time.Time
}
