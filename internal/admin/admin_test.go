package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gdg-garage/reso-client/internal/gateway"
	"github.com/gdg-garage/reso-client/internal/models"
)

// fakeAPI answers every request with a canned JSON body keyed by "METHOD path".
type fakeAPI struct {
	responses map[string]string
	requests  map[string]any
}

func newFakeAPI(responses map[string]string) *fakeAPI {
	return &fakeAPI{responses: responses, requests: map[string]any{}}
}

func (f *fakeAPI) Do(ctx context.Context, method, path string, body, out any) error {
	key := method + " " + path
	f.requests[key] = body
	raw, ok := f.responses[key]
	if !ok {
		return &gateway.APIError{Status: http.StatusNotFound, Message: "Not Found"}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal([]byte(raw), out)
}

func (f *fakeAPI) DoAuth(ctx context.Context, method, path string, body, out any) error {
	return f.Do(ctx, method, path, body, out)
}

func TestEventAdmin(t *testing.T) {
	api := newFakeAPI(map[string]string{
		"GET /admin/event":      `{"eventDetails":{"event":{"id":3,"event":"quiz","fee":150,"description":"a - b"}}}`,
		"PUT /admin/event":      `{"message":"Event Updated"}`,
		"GET /admin/registered": `{"registeredDetails":[{"id":1,"approved":true},{"id":2,"approved":false}]}`,
	})
	a := NewEventAdmin(api)

	ev, err := a.Event(context.Background())
	if err != nil {
		t.Fatalf("Event returned error: %v", err)
	}
	if ev.Name != "quiz" || ev.Fee != "150" {
		t.Errorf("unexpected event %+v", ev)
	}

	msg, err := a.UpdateEvent(context.Background(), models.EventUpdate{EventID: 3, Fee: " 200 "})
	if err != nil || msg != "Event Updated" {
		t.Fatalf("UpdateEvent returned %q %v", msg, err)
	}
	raw, _ := json.Marshal(api.requests["PUT /admin/event"])
	if string(raw) != `{"eventId":3,"fee":"200"}` {
		t.Errorf("expected empty fields omitted, got %s", raw)
	}

	if _, err := a.UpdateEvent(context.Background(), models.EventUpdate{EventID: 3}); !errors.Is(err, ErrEmptyUpdate) {
		t.Errorf("expected ErrEmptyUpdate, got %v", err)
	}
	if _, err := a.UpdateEvent(context.Background(), models.EventUpdate{EventID: 3, Fee: "free"}); err == nil {
		t.Error("expected error for non-numeric fee")
	}

	recs, err := a.Registered(context.Background())
	if err != nil {
		t.Fatalf("Registered returned error: %v", err)
	}
	if len(recs) != 2 || recs[0].ID != 2 {
		t.Errorf("expected pending registration first, got %+v", recs)
	}
}

func TestSuperAdmin(t *testing.T) {
	api := newFakeAPI(map[string]string{
		"POST /sadmin/event-admin":           `{"message":"Admin Created"}`,
		"GET /sadmin/event-admin":            `{"adminEvent":[{"id":1,"name":"Rahul","adminEmail":"r@example.com","event":{"event":"quiz"}}]}`,
		"GET /sadmin/registration-open":      `{"registrationOpen":true}`,
		"PUT /sadmin/registration-open":      `{"message":"Updated"}`,
		"GET /sadmin/game-registration-open": `{"gameRegistrationOpen":false}`,
		"PUT /sadmin/game-registration-open": `{"message":"Updated"}`,
		"PUT /sadmin/approve/7":              `{"message":"Approved"}`,
		"GET /sadmin/user-registered":        `{"eventRegistrationDetails":[]}`,
	})
	s := NewSuperAdmin(api)
	ctx := context.Background()

	if _, err := s.CreateEventAdmin(ctx, models.EventAdminRequest{Name: "Rahul"}); err == nil {
		t.Error("expected validation error")
	}
	msg, err := s.CreateEventAdmin(ctx, models.EventAdminRequest{
		Name: "Rahul", AdminEmail: "r@example.com", AdminPassword: "pw", Event: "quiz", Fee: "100",
	})
	if err != nil || msg != "Admin Created" {
		t.Fatalf("CreateEventAdmin returned %q %v", msg, err)
	}

	admins, err := s.EventAdmins(ctx)
	if err != nil || len(admins) != 1 || admins[0].Event.Name != "quiz" {
		t.Fatalf("unexpected admins %+v %v", admins, err)
	}

	if open, err := s.RegistrationOpen(ctx); err != nil || !open {
		t.Errorf("expected registration open, got %v %v", open, err)
	}
	if open, err := s.GameRegistrationOpen(ctx); err != nil || open {
		t.Errorf("expected game registration closed, got %v %v", open, err)
	}
	if _, err := s.SetGameRegistrationOpen(ctx, true); err != nil {
		t.Fatalf("SetGameRegistrationOpen returned error: %v", err)
	}
	if body := api.requests["PUT /sadmin/game-registration-open"].(models.GameRegistrationOpenUpdate); !body.GameRegistrationOpen {
		t.Error("expected gameRegistrationOpen=true to be sent")
	}
	if _, err := s.SetRegistrationOpen(ctx, false); err != nil {
		t.Fatalf("SetRegistrationOpen returned error: %v", err)
	}

	if msg, err := s.Approve(ctx, 7, true); err != nil || msg != "Approved" {
		t.Errorf("Approve returned %q %v", msg, err)
	}
	if _, err := s.Approve(ctx, 0, true); err == nil {
		t.Error("expected error for missing id")
	}

	if _, err := s.UpdateEvent(ctx, models.EventUpdate{EventID: 1, Date: "2025-03-14"}); gateway.Message(err) != "Not Found" {
		t.Errorf("expected server error surfaced, got %v", err)
	}
}

func TestSortAndSummarize(t *testing.T) {
	now := time.Now()
	recs := []models.RegistrationRecord{
		{ID: 1, Approved: true, CreatedAt: now.Add(-3 * time.Hour), Event: models.EventDescriptor{Name: "quiz", Fee: "100"}},
		{ID: 2, Approved: false, CreatedAt: now.Add(-2 * time.Hour), Event: models.EventDescriptor{Name: "bgmi", Fee: "200"}},
		{ID: 3, Approved: true, CreatedAt: now.Add(-1 * time.Hour), Event: models.EventDescriptor{Name: "quiz", Fee: "100"}},
		{ID: 4, Approved: false, CreatedAt: now, Event: models.EventDescriptor{Name: "quiz", Fee: "oops"}},
	}

	SortRegistrations(recs)
	order := []uint{4, 2, 3, 1}
	for i, id := range order {
		if recs[i].ID != id {
			t.Fatalf("position %d: expected %d, got %d", i, id, recs[i].ID)
		}
	}

	s := Summarize(recs)
	if s.Total != 4 || s.Approved != 2 || s.Pending != 2 {
		t.Errorf("unexpected counts %+v", s)
	}
	if s.ApprovedFees != 200 || s.PendingFees != 200 {
		t.Errorf("unexpected fee sums %+v", s)
	}
	if s.ByEvent["quiz"] != 3 {
		t.Errorf("expected 3 quiz registrations, got %d", s.ByEvent["quiz"])
	}
}
