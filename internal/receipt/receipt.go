// Package receipt turns a confirmed registration into a printable document.
package receipt

import (
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/gdg-garage/reso-client/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	Title         = "Event Registration"
	Watermark     = "RESO 2025"
	DocumentName  = "RegistrationForm-RESO2025"
	CurrencySign  = "₹"
	dateLayout    = "02 January 2006, 03:04:05 pm"
	receiptZoneID = "Asia/Kolkata"
)

var receiptZone = func() *time.Location {
	loc, err := time.LoadLocation(receiptZoneID)
	if err != nil {
		return time.FixedZone("IST", 5*60*60+30*60)
	}
	return loc
}()

type Row struct {
	Label string
	Value string
}

// Document is the layout of a receipt independent of its output format.
type Document struct {
	Title     string
	Watermark string
	Header    []Row
	Details   []Row
	TeamName  string
	Roster    []models.Player
	Rules     []string
}

// Build lays out rec. It has no side effects.
func Build(rec models.RegistrationRecord) Document {
	doc := Document{
		Title:     Title,
		Watermark: Watermark,
		Header: []Row{
			{"Event", cases.Upper(language.Und).String(rec.Event.Name)},
			{"Date of Registration", formatDate(rec.CreatedAt)},
			{"Fee", CurrencySign + string(rec.Event.Fee)},
		},
		Details: []Row{
			{"Register Name", rec.Name},
			{"Email", rec.User.Email},
			{"Contact", rec.Contact},
			{"Address", rec.Address},
			{"Payment ID", rec.TransactionID},
			{"Bank", rec.BankingName},
			{"Payment Status", PaymentStatus(rec.Approved)},
		},
		Rules: ParseRules(rec.Event.Description),
	}
	if rec.Team != nil && len(rec.Team.Players) > 0 {
		doc.TeamName = rec.Team.TeamName
		doc.Roster = append([]models.Player(nil), rec.Team.Players...)
	}
	return doc
}

func PaymentStatus(approved bool) string {
	if approved {
		return "Approved"
	}
	return "Pending"
}

// PlayerRole labels a roster entry.
func PlayerRole(p models.Player) string {
	if p.TeamLeader {
		return "Leader"
	}
	return "Member"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "No date"
	}
	return t.In(receiptZone).Format(dateLayout)
}

// ParseRules splits an event's rule text into rule statements.
//
// Multi-line text is read one rule per line, with any leading bullet
// removed. Single-line text uses the legacy hyphen delimiter, so a rule
// that itself contains a hyphen ("5-a-side") is split apart.
func ParseRules(text string) []string {
	if strings.ContainsAny(text, "\n\r") {
		var rules []string
		for _, line := range strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' }) {
			line = strings.TrimSpace(line)
			line = strings.TrimLeft(line, "-•* \t")
			line = strings.TrimSpace(line)
			if line != "" {
				rules = append(rules, line)
			}
		}
		return rules
	}

	var rules []string
	for _, part := range strings.Split(text, "-") {
		if part = strings.TrimSpace(part); part != "" {
			rules = append(rules, part)
		}
	}
	return rules
}
