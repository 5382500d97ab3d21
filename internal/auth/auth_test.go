package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gdg-garage/reso-client/internal/gateway"
	"github.com/gdg-garage/reso-client/internal/models"
	"github.com/gdg-garage/reso-client/internal/roles"
	"github.com/gdg-garage/reso-client/internal/session"
)

type call struct {
	method string
	path   string
	body   any
}

type fakeAPI struct {
	calls   []call
	auth    models.AuthResponse
	profile models.Profile
	err     error
}

func (f *fakeAPI) Do(ctx context.Context, method, path string, body, out any) error {
	f.calls = append(f.calls, call{method, path, body})
	if f.err != nil {
		return f.err
	}
	switch out := out.(type) {
	case *models.AuthResponse:
		*out = f.auth
	case *models.ProfileResponse:
		out.UserData = f.profile
	}
	return nil
}

func (f *fakeAPI) DoAuth(ctx context.Context, method, path string, body, out any) error {
	return f.Do(ctx, method, path, body, out)
}

func TestSignin(t *testing.T) {
	t.Run("StoresSession", func(t *testing.T) {
		store := session.New(session.NewMemoryKV())
		api := &fakeAPI{auth: models.AuthResponse{
			Authorization: "tok-1",
			UserData:      models.Profile{Name: "Asha", Email: "asha@example.com"},
			Message:       "Signed in",
		}}
		svc := NewService(store, api)

		resp, err := svc.Signin(context.Background(), " asha@example.com ", "secret")
		if err != nil {
			t.Fatalf("Signin returned error: %v", err)
		}
		if resp.Message != "Signed in" {
			t.Errorf("unexpected message %q", resp.Message)
		}
		if token, ok := store.Credential(); !ok || token != "tok-1" {
			t.Errorf("expected stored credential, got %q %v", token, ok)
		}
		p, _ := store.Profile()
		if p.Role != models.RoleUser {
			t.Errorf("expected role defaulted to USER, got %q", p.Role)
		}
		req := api.calls[0].body.(models.SigninRequest)
		if api.calls[0].path != "/users/signin" || req.Email != "asha@example.com" {
			t.Errorf("unexpected request %+v", api.calls[0])
		}
	})

	t.Run("AdminPayload", func(t *testing.T) {
		store := session.New(session.NewMemoryKV())
		api := &fakeAPI{auth: models.AuthResponse{Authorization: "tok-2", UserData: models.Profile{Name: "Admin"}}}
		svc := NewService(store, api)

		if _, err := svc.AdminSignin(context.Background(), "a@example.com", "pw"); err != nil {
			t.Fatalf("AdminSignin returned error: %v", err)
		}
		req, ok := api.calls[0].body.(models.AdminSigninRequest)
		if !ok || req.AdminEmail != "a@example.com" || req.AdminPassword != "pw" {
			t.Errorf("unexpected admin request %+v", api.calls[0].body)
		}
		p, _ := store.Profile()
		if p.Role != models.RoleAdmin {
			t.Errorf("expected ADMIN role, got %q", p.Role)
		}

		if _, err := svc.SuperAdminSignin(context.Background(), "s@example.com", "pw"); err != nil {
			t.Fatalf("SuperAdminSignin returned error: %v", err)
		}
		if api.calls[1].path != "/sadmin/signin" {
			t.Errorf("unexpected path %s", api.calls[1].path)
		}
	})

	t.Run("RejectedKeepsNoSession", func(t *testing.T) {
		store := session.New(session.NewMemoryKV())
		api := &fakeAPI{err: &gateway.APIError{Status: http.StatusBadRequest, Message: "Invalid Password"}}
		svc := NewService(store, api)

		_, err := svc.Signin(context.Background(), "a@example.com", "bad")
		if gateway.Message(err) != "Invalid Password" {
			t.Fatalf("expected server message, got %v", err)
		}
		if _, ok := store.Credential(); ok {
			t.Error("expected no credential after failed signin")
		}
	})

	t.Run("MissingToken", func(t *testing.T) {
		svc := NewService(session.New(session.NewMemoryKV()), &fakeAPI{})
		if _, err := svc.Signin(context.Background(), "a@example.com", "pw"); !errors.Is(err, ErrNoToken) {
			t.Fatalf("expected ErrNoToken, got %v", err)
		}
	})

	t.Run("LocalValidation", func(t *testing.T) {
		api := &fakeAPI{}
		svc := NewService(session.New(session.NewMemoryKV()), api)
		if _, err := svc.Signin(context.Background(), "", "pw"); !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
		if _, err := svc.Signup(context.Background(), "", "a@example.com", "pw"); err == nil {
			t.Error("expected error for missing name")
		}
		if len(api.calls) != 0 {
			t.Errorf("expected no requests, got %d", len(api.calls))
		}
	})
}

func TestSignupAndLogout(t *testing.T) {
	store := session.New(session.NewMemoryKV())
	api := &fakeAPI{auth: models.AuthResponse{Authorization: "tok", UserData: models.Profile{Name: "Asha"}}}
	svc := NewService(store, api)

	if _, err := svc.Signup(context.Background(), "Asha", "asha@example.com", "pw"); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if api.calls[0].path != "/users/signup" {
		t.Errorf("unexpected path %s", api.calls[0].path)
	}
	if err := svc.Logout(); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if _, ok := store.Credential(); ok {
		t.Error("expected credential cleared")
	}
	if _, ok := store.Profile(); ok {
		t.Error("expected profile cleared")
	}
}

func TestProfile(t *testing.T) {
	t.Run("CachedFirst", func(t *testing.T) {
		store := session.New(session.NewMemoryKV())
		store.Set("tok", models.Profile{Name: "Cached"})
		api := &fakeAPI{profile: models.Profile{Name: "Server"}}
		svc := NewService(store, api)

		p, err := svc.Profile(context.Background(), roles.Participant)
		if err != nil || p.Name != "Cached" {
			t.Fatalf("expected cached profile, got %+v %v", p, err)
		}
		if len(api.calls) != 0 {
			t.Error("expected no request when profile is cached")
		}
	})

	t.Run("FetchAndCache", func(t *testing.T) {
		store := session.New(session.NewMemoryKV())
		store.Set("tok", models.Profile{})
		api := &fakeAPI{profile: models.Profile{Name: "Admin", Email: "a@example.com"}}
		svc := NewService(store, api)

		p, err := svc.Profile(context.Background(), roles.EventAdmin)
		if err != nil || p.Name != "Admin" {
			t.Fatalf("expected fetched profile, got %+v %v", p, err)
		}
		if api.calls[0].path != "/admin/profile" {
			t.Errorf("unexpected path %s", api.calls[0].path)
		}
		cached, _ := store.Profile()
		if cached.Email != "a@example.com" {
			t.Errorf("expected profile cached, got %+v", cached)
		}
	})

	t.Run("NoProfileForAnonymous", func(t *testing.T) {
		svc := NewService(session.New(session.NewMemoryKV()), &fakeAPI{})
		if _, err := svc.RefreshProfile(context.Background(), roles.Anonymous); err == nil {
			t.Error("expected error for anonymous profile")
		}
	})
}
