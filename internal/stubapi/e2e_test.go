package stubapi_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gdg-garage/reso-client/internal/admin"
	"github.com/gdg-garage/reso-client/internal/auth"
	"github.com/gdg-garage/reso-client/internal/catalog"
	"github.com/gdg-garage/reso-client/internal/database"
	"github.com/gdg-garage/reso-client/internal/gateway"
	"github.com/gdg-garage/reso-client/internal/models"
	"github.com/gdg-garage/reso-client/internal/receipt"
	"github.com/gdg-garage/reso-client/internal/roles"
	"github.com/gdg-garage/reso-client/internal/session"
	"github.com/gdg-garage/reso-client/internal/stubapi"
	"github.com/gdg-garage/reso-client/internal/workflow"
)

type client struct {
	store *session.Store
	api   *gateway.Client
	auth  *auth.Service
}

func newClient(baseURL string) *client {
	store := session.New(session.NewMemoryKV())
	api := gateway.New(baseURL, store.TokenSource(), gateway.OnUnauthorized(func() { store.Clear() }))
	return &client{store: store, api: api, auth: auth.NewService(store, api)}
}

func (c *client) role(t *testing.T) roles.Role {
	t.Helper()
	return roles.NewResolver(c.store, c.api).Resolve(context.Background())
}

func startServer(t *testing.T) (*stubapi.Server, *httptest.Server) {
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
	return s, ts
}

func newWorkflow(t *testing.T, c *client, event string) *workflow.Workflow {
	t.Helper()
	schema, _ := catalog.Lookup(event)
	w, err := workflow.New(schema, c.store, c.api)
	if err != nil {
		t.Fatalf("workflow.New returned error: %v", err)
	}
	return w
}

func TestRegistrationEndToEnd(t *testing.T) {
	s, ts := startServer(t)
	ctx := context.Background()

	user := newClient(ts.URL)
	if got := user.role(t); got != roles.Anonymous {
		t.Fatalf("expected Anonymous before signin, got %v", got)
	}
	if _, err := user.auth.Signup(ctx, "Ravi", "ravi@example.com", "pw"); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if got := user.role(t); got != roles.Participant {
		t.Fatalf("expected Participant, got %v", got)
	}

	w := newWorkflow(t, user, "bgmi")
	phase, err := w.Start(ctx)
	if err != nil || phase != workflow.Details {
		t.Fatalf("expected Details, got %v %v", phase, err)
	}
	if w.Fee() != "200" {
		t.Errorf("expected fee from server, got %q", w.Fee())
	}

	form := workflow.Form{
		Name:    "Night Owls",
		Address: "Hostel 4",
		Contact: "9876543210",
		Players: []workflow.PlayerInput{
			{Name: "Ravi", GameID: "5111", Gender: "male"},
			{Name: "Meera", GameID: "5112", Gender: "female"},
			{Name: "Arjun", GameID: "5113", Gender: "male"},
			{Name: "Kiran", GameID: "5114", Gender: "female"},
			{Name: "Dev", GameID: "5115", Gender: "male"},
		},
	}
	if err := w.SubmitDetails(form); err != nil {
		t.Fatalf("SubmitDetails returned error: %v", err)
	}
	msg, err := w.SubmitPayment(ctx, workflow.Payment{TransactionID: "UPI123", BankingName: "Ravi"})
	if err != nil {
		t.Fatalf("SubmitPayment returned error: %v", err)
	}
	if msg != "Registered Successfully" {
		t.Errorf("unexpected message %q", msg)
	}

	again := newWorkflow(t, user, "bgmi")
	if phase, err := again.Start(ctx); err != nil || phase != workflow.AlreadyRegistered {
		t.Fatalf("expected AlreadyRegistered, got %v %v", phase, err)
	}

	recs, err := workflow.Registered(ctx, user.api)
	if err != nil || len(recs) != 1 {
		t.Fatalf("expected one registration, got %v %v", recs, err)
	}
	doc := receipt.Build(recs[0])
	if doc.TeamName != "Night Owls" || len(doc.Roster) != 5 || !doc.Roster[0].TeamLeader {
		t.Errorf("unexpected receipt roster %+v", doc)
	}

	// Super admin approves and closes game registration.
	if _, err := s.EnsureAccount("Root", "root@example.com", "pw", models.RoleSuperAdmin); err != nil {
		t.Fatalf("EnsureAccount returned error: %v", err)
	}
	root := newClient(ts.URL)
	if _, err := root.auth.SuperAdminSignin(ctx, "root@example.com", "pw"); err != nil {
		t.Fatalf("SuperAdminSignin returned error: %v", err)
	}
	if got := root.role(t); got != roles.SuperAdmin {
		t.Fatalf("expected SuperAdmin, got %v", got)
	}
	sadmin := admin.NewSuperAdmin(root.api)
	all, err := sadmin.Registrations(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("expected one registration, got %v %v", all, err)
	}
	if _, err := sadmin.Approve(ctx, all[0].ID, true); err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}
	if _, err := sadmin.SetGameRegistrationOpen(ctx, false); err != nil {
		t.Fatalf("SetGameRegistrationOpen returned error: %v", err)
	}

	closed := newWorkflow(t, user, "mobilelegend")
	if phase, _ := closed.Start(ctx); phase != workflow.Closed {
		t.Fatalf("expected Closed, got %v", phase)
	}
	open := newWorkflow(t, user, "quiz")
	if phase, _ := open.Start(ctx); phase != workflow.Details {
		t.Fatalf("expected quiz still open, got %v", phase)
	}

	recs, _ = workflow.Registered(ctx, user.api)
	if receipt.Build(recs[0]).Details[6].Value != "Approved" {
		t.Error("expected approved payment status on receipt")
	}
}

func TestEventAdminEndToEnd(t *testing.T) {
	s, ts := startServer(t)
	ctx := context.Background()
	s.EnsureAccount("Root", "root@example.com", "pw", models.RoleSuperAdmin)

	root := newClient(ts.URL)
	root.auth.SuperAdminSignin(ctx, "root@example.com", "pw")
	sadmin := admin.NewSuperAdmin(root.api)
	_, err := sadmin.CreateEventAdmin(ctx, models.EventAdminRequest{
		Name: "Rahul", AdminEmail: "rahul@example.com", AdminPassword: "pw", Event: "quiz", Fee: "150",
		Description: "Teams of one\nNo phones",
	})
	if err != nil {
		t.Fatalf("CreateEventAdmin returned error: %v", err)
	}

	ea := newClient(ts.URL)
	if _, err := ea.auth.AdminSignin(ctx, "rahul@example.com", "pw"); err != nil {
		t.Fatalf("AdminSignin returned error: %v", err)
	}
	if got := ea.role(t); got != roles.EventAdmin {
		t.Fatalf("expected EventAdmin, got %v", got)
	}
	profile, err := ea.auth.RefreshProfile(ctx, roles.EventAdmin)
	if err != nil || profile.Email != "rahul@example.com" {
		t.Fatalf("unexpected profile %+v %v", profile, err)
	}

	console := admin.NewEventAdmin(ea.api)
	ev, err := console.Event(ctx)
	if err != nil || ev.Fee != "150" {
		t.Fatalf("unexpected event %+v %v", ev, err)
	}
	if _, err := console.UpdateEvent(ctx, models.EventUpdate{EventID: ev.ID, Fee: "175"}); err != nil {
		t.Fatalf("UpdateEvent returned error: %v", err)
	}

	user := newClient(ts.URL)
	user.auth.Signup(ctx, "Asha", "asha@example.com", "pw")
	w := newWorkflow(t, user, "quiz")
	w.Start(ctx)
	if w.Fee() != "175" {
		t.Errorf("expected updated fee, got %q", w.Fee())
	}
	if rules := w.Rules(); len(rules) != 2 {
		t.Errorf("expected two rules, got %v", rules)
	}

	// An admin credential cannot be used on participant endpoints.
	if _, err := workflow.Registered(ctx, ea.api); gateway.Message(err) != "Access denied" {
		t.Errorf("expected access denied, got %v", err)
	}
}

func TestRejectedCredentialClearsSession(t *testing.T) {
	_, ts := startServer(t)
	c := newClient(ts.URL)
	if err := c.store.Set("not-a-token", models.Profile{Name: "Ghost"}); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	if got := c.role(t); got != roles.Anonymous {
		t.Fatalf("expected Anonymous, got %v", got)
	}
	if _, ok := c.store.Credential(); ok {
		t.Error("expected credential cleared")
	}
	if _, ok := c.store.Profile(); ok {
		t.Error("expected profile cleared")
	}
}
