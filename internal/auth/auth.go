// Package auth runs the signin, signup and logout flows and keeps the
// cached profile in step with the server.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gdg-garage/reso-client/internal/gateway"
	"github.com/gdg-garage/reso-client/internal/models"
	"github.com/gdg-garage/reso-client/internal/roles"
)

// Session is the part of the session store the flows write to.
type Session interface {
	Credential() (string, bool)
	Profile() (models.Profile, bool)
	Set(token string, profile models.Profile) error
	UpdateProfile(profile models.Profile) (bool, error)
	Clear() error
}

var ErrMissingCredentials = errors.New("email and password are required")

// ErrNoToken is returned when the server accepts a signin but sends no credential.
var ErrNoToken = errors.New("server did not return an authorization token")

type Service struct {
	session Session
	api     gateway.Requester
}

func NewService(session Session, api gateway.Requester) *Service {
	return &Service{session: session, api: api}
}

// Signup creates a participant account and signs it in.
func (s *Service) Signup(ctx context.Context, name, email, password string) (models.AuthResponse, error) {
	req := models.SignupRequest{
		Name:     strings.TrimSpace(name),
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	if req.Name == "" {
		return models.AuthResponse{}, errors.New("name is required")
	}
	if req.Email == "" || req.Password == "" {
		return models.AuthResponse{}, ErrMissingCredentials
	}
	return s.signin(ctx, "/users/signup", req, models.RoleUser)
}

func (s *Service) Signin(ctx context.Context, email, password string) (models.AuthResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.AuthResponse{}, ErrMissingCredentials
	}
	return s.signin(ctx, "/users/signin", models.SigninRequest{Email: email, Password: password}, models.RoleUser)
}

func (s *Service) AdminSignin(ctx context.Context, email, password string) (models.AuthResponse, error) {
	return s.adminSignin(ctx, "/admin/signin", email, password, models.RoleAdmin)
}

func (s *Service) SuperAdminSignin(ctx context.Context, email, password string) (models.AuthResponse, error) {
	return s.adminSignin(ctx, "/sadmin/signin", email, password, models.RoleSuperAdmin)
}

func (s *Service) adminSignin(ctx context.Context, path, email, password string, role models.Role) (models.AuthResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.AuthResponse{}, ErrMissingCredentials
	}
	return s.signin(ctx, path, models.AdminSigninRequest{AdminEmail: email, AdminPassword: password}, role)
}

func (s *Service) signin(ctx context.Context, path string, body any, role models.Role) (models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := s.api.Do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return resp, err
	}
	if resp.Authorization == "" {
		return resp, ErrNoToken
	}
	if resp.UserData.Role == "" {
		resp.UserData.Role = role
	}
	if err := s.session.Set(resp.Authorization, resp.UserData); err != nil {
		return resp, fmt.Errorf("store session: %w", err)
	}
	return resp, nil
}

// Logout destroys the local session. The server keeps no session state.
func (s *Service) Logout() error {
	return s.session.Clear()
}

// ProfilePath is the endpoint serving the profile for role.
func ProfilePath(role roles.Role) (string, bool) {
	switch role {
	case roles.Participant:
		return "/user/profile", true
	case roles.EventAdmin:
		return "/admin/profile", true
	case roles.SuperAdmin:
		return "/sadmin/profile", true
	}
	return "", false
}

// Profile returns the cached profile, fetching and caching it when the
// cache is empty.
func (s *Service) Profile(ctx context.Context, role roles.Role) (models.Profile, error) {
	if p, ok := s.session.Profile(); ok && p.Name != "" {
		return p, nil
	}
	return s.RefreshProfile(ctx, role)
}

// RefreshProfile always asks the server and replaces the cache if it differs.
func (s *Service) RefreshProfile(ctx context.Context, role roles.Role) (models.Profile, error) {
	path, ok := ProfilePath(role)
	if !ok {
		return models.Profile{}, fmt.Errorf("no profile for role %s", role)
	}
	var resp models.ProfileResponse
	if err := s.api.DoAuth(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return models.Profile{}, err
	}
	if _, err := s.session.UpdateProfile(resp.UserData); err != nil {
		return resp.UserData, fmt.Errorf("cache profile: %w", err)
	}
	return resp.UserData, nil
}
