// Package session keeps the signed-in credential and the cached profile in
// local persistent storage.
package session

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/gdg-garage/reso-client/internal/models"
	"golang.org/x/oauth2"
)

const (
	CredentialKey = "Authorization"
	ProfileKey    = "UserData"
)

// ErrNoCredential is returned when an operation needs a credential and none is stored.
var ErrNoCredential = errors.New("no authorization token found")

// KV is the persistent key-value storage behind a Store.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(keys ...string) error
}

// Store wraps a KV with the session contract. Every mutation is written
// through immediately.
type Store struct {
	mu sync.Mutex
	kv KV
}

func New(kv KV) *Store {
	return &Store{kv: kv}
}

// Credential returns the stored token, if any. Validity is decided by the
// server on the next call, never here.
func (s *Store) Credential() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok, err := s.kv.Get(CredentialKey)
	if err != nil {
		log.Printf("session: read credential: %v", err)
		return "", false
	}
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

func (s *Store) Profile() (models.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile()
}

func (s *Store) profile() (models.Profile, bool) {
	raw, ok, err := s.kv.Get(ProfileKey)
	if err != nil {
		log.Printf("session: read profile: %v", err)
		return models.Profile{}, false
	}
	if !ok {
		return models.Profile{}, false
	}
	var p models.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		log.Printf("session: corrupt profile cache: %v", err)
		return models.Profile{}, false
	}
	return p, true
}

// Set starts a session.
func (s *Store) Set(token string, profile models.Profile) error {
	if token == "" {
		return ErrNoCredential
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(CredentialKey, token); err != nil {
		return err
	}
	return s.writeProfile(profile)
}

// UpdateProfile replaces the cached profile when the server reports a
// different one. It reports whether the cache changed.
func (s *Store) UpdateProfile(profile models.Profile) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, ok := s.profile(); ok && cached == profile {
		return false, nil
	}
	if err := s.writeProfile(profile); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) writeProfile(profile models.Profile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return s.kv.Set(ProfileKey, string(raw))
}

// Clear destroys the session. Both keys always go together.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Delete(CredentialKey, ProfileKey)
}

// TokenSource exposes the stored credential to HTTP clients. It reads the
// store on every call so a logout takes effect immediately.
func (s *Store) TokenSource() oauth2.TokenSource {
	return tokenSource{store: s}
}

type tokenSource struct {
	store *Store
}

func (ts tokenSource) Token() (*oauth2.Token, error) {
	token, ok := ts.store.Credential()
	if !ok {
		return nil, ErrNoCredential
	}
	return &oauth2.Token{AccessToken: token}, nil
}
