package catalog

import (
	"slices"
	"testing"
)

func TestLookup(t *testing.T) {
	bgmi, ok := Lookup(" BGMI ")
	if !ok {
		t.Fatal("expected bgmi to be listed")
	}
	if bgmi.Mode != Team || bgmi.MinPlayers() != 4 || bgmi.MaxPlayers() != 5 {
		t.Errorf("unexpected bgmi schema: %+v", bgmi)
	}
	if !bgmi.Game() || !slices.Equal(bgmi.StatusPaths, []string{StatusPath, GameStatusPath}) {
		t.Errorf("expected bgmi to be gated by both status flags, got %v", bgmi.StatusPaths)
	}

	ml, _ := Lookup("mobilelegend")
	if ml.MinPlayers() != 5 || ml.MaxPlayers() != 6 {
		t.Errorf("expected 5-6 players for mobile legends, got %d-%d", ml.MinPlayers(), ml.MaxPlayers())
	}

	quiz, _ := Lookup("quiz")
	if quiz.Mode != Individual || quiz.Game() || !slices.Equal(quiz.StatusPaths, []string{StatusPath}) {
		t.Errorf("unexpected quiz schema: %+v", quiz)
	}
	if quiz.DisplayName() != "Quiz" {
		t.Errorf("expected display name 'Quiz', got %q", quiz.DisplayName())
	}

	if _, ok := Lookup("chess"); ok {
		t.Error("expected unknown event to be missing")
	}
}

func TestAll(t *testing.T) {
	all := All()
	if len(all) != 25 {
		t.Fatalf("expected 25 events, got %d", len(all))
	}
	seen := map[string]bool{}
	for _, e := range all {
		if seen[e.ID] {
			t.Errorf("duplicate event id %s", e.ID)
		}
		seen[e.ID] = true
		if e.Mode != Offsite && e.AfterSubmit != "/profile" {
			t.Errorf("%s: expected redirect to /profile, got %q", e.ID, e.AfterSubmit)
		}
	}
	all[0].ID = "mutated"
	if _, ok := Lookup("tekken"); !ok {
		t.Error("All must return a copy")
	}
}
