package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdg-garage/reso-client/internal/database"
	"github.com/gdg-garage/reso-client/internal/gateway"
	"github.com/gdg-garage/reso-client/internal/models"
	"github.com/gdg-garage/reso-client/internal/session"
	"github.com/gdg-garage/reso-client/internal/stubapi"
)

type recordingAnnouncer struct {
	reqs []models.RegisterRequest
}

func (r *recordingAnnouncer) NotifyRegistration(ctx context.Context, profile models.Profile, req models.RegisterRequest) error {
	r.reqs = append(r.reqs, req)
	return nil
}

// harness runs each command as a fresh process would: a new App over the
// same persisted session.
type harness struct {
	t         *testing.T
	url       string
	server    *stubapi.Server
	store     *session.Store
	announcer *recordingAnnouncer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db, err := database.Connect(":memory:", stubapi.Tables()...)
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	s := stubapi.New(db, "test-secret")
	if err := s.SeedCatalog("200"); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
	ts := httptest.NewServer(stubapi.NewRouter(s, false))
	t.Cleanup(ts.Close)
	return &harness{
		t:         t,
		url:       ts.URL,
		server:    s,
		store:     session.New(session.NewMemoryKV()),
		announcer: &recordingAnnouncer{},
	}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	var out bytes.Buffer
	api := gateway.New(h.url, h.store.TokenSource(), gateway.OnUnauthorized(func() { h.store.Clear() }))
	app := New(h.store, api, WithOutput(&out), WithAnnouncer(h.announcer))
	err := app.Run(context.Background(), args)
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	if err != nil {
		h.t.Fatalf("%v failed: %v\n%s", args, err, out)
	}
	return out
}

func TestUsage(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun()
	if !strings.Contains(out, "register") || !strings.Contains(out, "sadmin") {
		t.Errorf("expected command list, got:\n%s", out)
	}
	if _, err := h.run("fly"); err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestRouteGating(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("register", "quiz")
	if !errors.Is(err, ErrNotAvailable) {
		t.Fatalf("expected ErrNotAvailable, got %v", err)
	}
	if !strings.Contains(out, "Please sign in") {
		t.Errorf("expected sign in hint, got:\n%s", out)
	}

	out = h.mustRun("routes")
	if !strings.Contains(out, "/signin") || strings.Contains(out, "/register") {
		t.Errorf("unexpected anonymous routes:\n%s", out)
	}

	h.mustRun("signup", "-name", "Asha", "-email", "asha@example.com", "-password", "pw")
	if _, err := h.run("signin", "-email", "asha@example.com", "-password", "pw"); !errors.Is(err, ErrNotAvailable) {
		t.Errorf("expected signin unavailable once signed in, got %v", err)
	}
	if _, err := h.run("admin", "event"); !errors.Is(err, ErrNotAvailable) {
		t.Errorf("expected admin commands unavailable to participants, got %v", err)
	}
	out = h.mustRun("whoami")
	if !strings.Contains(out, "asha@example.com") || !strings.Contains(out, "participant") {
		t.Errorf("unexpected whoami output:\n%s", out)
	}
}

func TestParticipantFlow(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("signup", "-name", "Ravi", "-email", "ravi@example.com", "-password", "pw")
	if !strings.Contains(out, "Welcome, Ravi") {
		t.Errorf("unexpected signup output:\n%s", out)
	}

	out, err := h.run("register", "-name", "Owls", "-address", "Hostel 4", "-contact", "98765",
		"-player", "Ravi,5111,male", "-player", "Meera,abc,female", "-txn", "UPI1", "-bank", "Ravi", "bgmi")
	if err == nil || !strings.Contains(out, "must be a number") {
		t.Fatalf("expected validation error, got %v:\n%s", err, out)
	}

	out = h.mustRun("register", "-name", "Owls", "-address", "Hostel 4", "-contact", "98765",
		"-player", "Ravi,5111,male", "-player", "Meera,5112,female",
		"-player", "Arjun,5113,male", "-player", "Kiran,5114,female",
		"-txn", "UPI1", "-bank", "Ravi", "bgmi")
	if !strings.Contains(out, "Registered Successfully") || !strings.Contains(out, "Fee: ₹200") {
		t.Errorf("unexpected register output:\n%s", out)
	}
	if len(h.announcer.reqs) != 1 || len(h.announcer.reqs[0].Players) != 4 {
		t.Errorf("expected one announced team registration, got %+v", h.announcer.reqs)
	}

	out = h.mustRun("register", "-name", "Owls", "bgmi")
	if !strings.Contains(out, "already registered") {
		t.Errorf("expected already registered notice, got:\n%s", out)
	}

	out = h.mustRun("register", "reel")
	if !strings.Contains(out, "WhatsApp") {
		t.Errorf("expected reel instructions, got:\n%s", out)
	}

	out = h.mustRun("registrations")
	if !strings.Contains(out, "bgmi") || !strings.Contains(out, "Pending") {
		t.Errorf("unexpected registrations output:\n%s", out)
	}

	out = h.mustRun("receipt", "1")
	for _, want := range []string{"Event Registration", "BGMI", "Owls", "Leader"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected receipt to contain %q:\n%s", want, out)
		}
	}

	dir := t.TempDir()
	for _, format := range []string{"html", "pdf"} {
		path := filepath.Join(dir, "receipt."+format)
		h.mustRun("receipt", "-format", format, "-o", path, "1")
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			t.Errorf("expected %s receipt written, got %v", format, err)
		}
	}

	if _, err := h.run("receipt", "2"); err == nil {
		t.Error("expected error for missing receipt")
	}

	h.mustRun("logout")
	if _, ok := h.store.Credential(); ok {
		t.Error("expected credential cleared after logout")
	}
}

func TestSuperAdminFlow(t *testing.T) {
	h := newHarness(t)
	if _, err := h.server.EnsureAccount("Root", "root@example.com", "pw", models.RoleSuperAdmin); err != nil {
		t.Fatalf("EnsureAccount returned error: %v", err)
	}

	h.mustRun("signup", "-name", "Asha", "-email", "asha@example.com", "-password", "pw")
	h.mustRun("register", "-name", "Asha", "-gender", "female", "-address", "x", "-contact", "1", "-txn", "T1", "-bank", "Asha", "quiz")
	h.mustRun("logout")

	h.mustRun("sadmin-signin", "-email", "root@example.com", "-password", "pw")

	out := h.mustRun("sadmin", "registrations", "-pending")
	if !strings.Contains(out, "asha@example.com") {
		t.Errorf("expected pending registration listed:\n%s", out)
	}
	h.mustRun("sadmin", "approve", "1")
	out = h.mustRun("sadmin", "registrations", "-pending")
	if strings.Contains(out, "asha@example.com") {
		t.Errorf("expected no pending registrations after approval:\n%s", out)
	}

	out = h.mustRun("sadmin", "summary")
	if !strings.Contains(out, "Approved: 1") {
		t.Errorf("unexpected summary:\n%s", out)
	}

	h.mustRun("sadmin", "registration-open", "off")
	out = h.mustRun("sadmin", "registration-open")
	if !strings.Contains(out, "Registration is closed") {
		t.Errorf("unexpected switch state:\n%s", out)
	}

	h.mustRun("sadmin", "create-admin-event", "-name", "Rahul", "-email", "rahul@example.com", "-password", "pw", "-event", "debate", "-fee", "120")
	out = h.mustRun("sadmin", "admins")
	if !strings.Contains(out, "rahul@example.com") || !strings.Contains(out, "debate") {
		t.Errorf("unexpected admins listing:\n%s", out)
	}

	h.mustRun("logout")
	h.mustRun("admin-signin", "-email", "rahul@example.com", "-password", "pw")
	h.mustRun("admin", "update-event", "-date", "15 March", "-desc", "One speaker - Five minutes")
	out = h.mustRun("admin", "event")
	for _, want := range []string{"15 March", "₹120", "Five minutes"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected event output to contain %q:\n%s", want, out)
		}
	}

	h.mustRun("logout")
	h.mustRun("signin", "-email", "asha@example.com", "-password", "pw")
	out = h.mustRun("register", "-name", "Asha", "debate")
	if !strings.Contains(out, "closed") {
		t.Errorf("expected closed notice after switch off:\n%s", out)
	}
}
