// Package catalog lists the festival's registrable events and the form
// schema each one uses.
package catalog

import (
	"slices"
	"sort"
	"strings"
)

type Mode int

const (
	// Individual events collect one registrant's details.
	Individual Mode = iota
	// Team events collect a team name and a player roster.
	Team
	// Offsite events are registered outside the platform.
	Offsite
)

func (m Mode) String() string {
	switch m {
	case Team:
		return "team"
	case Offsite:
		return "offsite"
	default:
		return "individual"
	}
}

const (
	StatusPath     = "/users/status"
	GameStatusPath = "/users/game-status"
)

// Schema parameterises the registration workflow for one event.
type Schema struct {
	ID       string
	Label    string
	Category string
	Mode     Mode

	// StatusPaths are the endpoints reporting whether registration is open.
	// The event is open only when every one of them says so.
	StatusPaths []string

	// Team roster bounds: RequiredPlayers must be filled, up to Substitutes
	// more are optional.
	RequiredPlayers int
	Substitutes     int

	// TeamAllotted is a manual kill switch. When set the event shows as
	// closed regardless of the server.
	TeamAllotted bool

	// AfterSubmit is the route shown once a registration is accepted.
	AfterSubmit string

	Instructions string
}

// Game reports whether the event is also gated by the game registration flag.
func (s Schema) Game() bool { return slices.Contains(s.StatusPaths, GameStatusPath) }

func (s Schema) MinPlayers() int { return s.RequiredPlayers }
func (s Schema) MaxPlayers() int { return s.RequiredPlayers + s.Substitutes }

// DisplayName is the label without its category suffix.
func (s Schema) DisplayName() string {
	if i := strings.Index(s.Label, " ("); i > 0 {
		return s.Label[:i]
	}
	return s.Label
}

func individual(id, label, category string) Schema {
	return Schema{
		ID:          id,
		Label:       label,
		Category:    category,
		Mode:        Individual,
		StatusPaths: []string{StatusPath},
		AfterSubmit: "/profile",
	}
}

func team(id, label string, required, substitutes int) Schema {
	return Schema{
		ID:              id,
		Label:           label,
		Category:        "Gaming",
		Mode:            Team,
		StatusPaths:     []string{StatusPath, GameStatusPath},
		RequiredPlayers: required,
		Substitutes:     substitutes,
		AfterSubmit:     "/profile",
	}
}

var events = []Schema{
	individual("tekken", "Tekken 7 (Gaming)", "Gaming"),
	team("bgmi", "BGMI (Gaming)", 4, 1),
	team("mobilelegend", "Mobile Legend (Gaming)", 5, 1),
	individual("fifa", "FC25 (Gaming)", "Gaming"),
	individual("structuralmodelling", "Structural Modelling (Technical Event)", "Technical Event"),
	individual("autocaddesign", "Autocad Design (Technical Event)", "Technical Event"),
	individual("codedebugging", "Code Debugging (Technical Event)", "Technical Event"),
	individual("codejumbling", "Code Jumbling (Technical Event)", "Technical Event"),
	individual("projectshowcase", "Project Showcase (Technical Event)", "Technical Event"),
	individual("circuitdesign", "Circuit Design (Technical Event)", "Technical Event"),
	individual("paperwindmill", "Paper Windmill (Technical Event)", "Technical Event"),
	individual("machinedesignautocad", "Machine Design Autocad (Technical Event)", "Technical Event"),
	individual("electricalcomponent", "Electrical Component Identification & Modelling (Technical Event)", "Technical Event"),
	individual("painting", "Painting (Spot Event)", "Spot Event"),
	individual("photography", "Photography (Spot Event)", "Spot Event"),
	individual("treasurehunt", "Treasure Hunt (Spot Event)", "Spot Event"),
	individual("rubikcube", "Rubik's Cube (Spot Event)", "Spot Event"),
	individual("quiz", "Quiz (Literary Event)", "Literary Event"),
	individual("debate", "Debate (Literary Event)", "Literary Event"),
	individual("lightvocal", "Light Vocal Solo (Voice of RESO)", "Voice of RESO"),
	individual("westernsolo", "Western Solo Unplugged (Voice of RESO)", "Voice of RESO"),
	individual("classicalfolk", "Classical & Folk (Dance Contest)", "Dance Contest"),
	individual("dance", "Modern (Dance Contest)", "Dance Contest"),
	individual("cosplay", "Cosplay Contest", "Cosplay Contest"),
	{
		ID:       "reel",
		Label:    "Reel Contest",
		Category: "Reel Contest",
		Mode:     Offsite,
		Instructions: "To register for the Reels contest, send your reel video along with your " +
			"Instagram ID and your full name via WhatsApp to 6009346570. Reel registration is free!",
	},
}

var byID = func() map[string]Schema {
	m := make(map[string]Schema, len(events))
	for _, e := range events {
		m[e.ID] = e
	}
	return m
}()

// Lookup finds an event by id, case-insensitively.
func Lookup(id string) (Schema, bool) {
	s, ok := byID[strings.ToLower(strings.TrimSpace(id))]
	return s, ok
}

// All returns every event in display order.
func All() []Schema {
	out := make([]Schema, len(events))
	copy(out, events)
	return out
}

// Categories returns the distinct event categories, sorted.
func Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range events {
		if !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	sort.Strings(out)
	return out
}
