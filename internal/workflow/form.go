package workflow

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gdg-garage/reso-client/internal/catalog"
	"github.com/gdg-garage/reso-client/internal/models"
)

// Form is the details step of a registration. Individual events use Name,
// Gender, Address and Contact; team events use Name as the team name and
// fill Players in order, the first one being the team leader.
type Form struct {
	Name    string
	Gender  string
	Address string
	Contact string
	Players []PlayerInput
}

type PlayerInput struct {
	Name   string
	GameID string
	Gender string
}

func (p PlayerInput) empty() bool {
	return strings.TrimSpace(p.Name) == "" && strings.TrimSpace(p.GameID) == "" && strings.TrimSpace(p.Gender) == ""
}

func (p PlayerInput) complete() bool {
	return strings.TrimSpace(p.Name) != "" && strings.TrimSpace(p.GameID) != "" && strings.TrimSpace(p.Gender) != ""
}

// Payment is the payment step of a registration.
type Payment struct {
	TransactionID string
	BankingName   string
}

// ValidationError lists field-level problems found before anything is sent.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

type validator struct {
	fields map[string]string
}

func (v *validator) fail(field, msg string) {
	if v.fields == nil {
		v.fields = map[string]string{}
	}
	if _, ok := v.fields[field]; !ok {
		v.fields[field] = msg
	}
}

func (v *validator) required(field, value, msg string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		v.fail(field, msg)
	}
	return value
}

// number coerces a numeric field to its canonical decimal form.
func (v *validator) number(field, label, value string, required bool) string {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			v.fail(field, label+" is required")
		}
		return ""
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		v.fail(field, label+" must be a number")
		return ""
	}
	return strconv.FormatUint(n, 10)
}

func (v *validator) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}

// details is a validated Form, ready to be combined with a Payment.
type details struct {
	name    string
	gender  string
	address string
	contact string
	players []models.Player
}

func validateDetails(schema catalog.Schema, form Form) (details, error) {
	var v validator
	var d details

	switch schema.Mode {
	case catalog.Team:
		d.name = v.required("name", form.Name, "Team Name is required")
		d.players = validateRoster(&v, schema, form.Players)
	default:
		d.name = v.required("name", form.Name, "Name is required")
		d.gender = v.required("gender", form.Gender, "Gender is required")
	}
	d.address = v.required("address", form.Address, "Address is required")
	d.contact = v.number("contact", "Contact number", form.Contact, true)

	return d, v.err()
}

// validateRoster applies the positional convention: the first player leads,
// RequiredPlayers entries are mandatory and substitutes count only when
// fully filled in.
func validateRoster(v *validator, schema catalog.Schema, inputs []PlayerInput) []models.Player {
	if len(inputs) > schema.MaxPlayers() {
		v.fail("players", fmt.Sprintf("At most %d players are allowed", schema.MaxPlayers()))
	}

	n := min(len(inputs), schema.MaxPlayers())
	n = max(n, schema.MinPlayers())

	var players []models.Player
	for i := 0; i < n; i++ {
		var in PlayerInput
		if i < len(inputs) {
			in = inputs[i]
		}
		field := fmt.Sprintf("player%d", i+1)
		label := playerLabel(i)

		if i >= schema.MinPlayers() {
			if in.empty() {
				continue
			}
			id := v.number(field+"Id", label+" ID", in.GameID, false)
			if !in.complete() || id == "" {
				continue
			}
			players = append(players, models.Player{
				Name:   strings.TrimSpace(in.Name),
				GameID: id,
				Gender: strings.TrimSpace(in.Gender),
			})
			continue
		}

		name := v.required(field, in.Name, label+" Name is required")
		id := v.number(field+"Id", label+" ID", in.GameID, true)
		gender := v.required(fmt.Sprintf("gender%d", i+1), in.Gender, "Gender is required")
		players = append(players, models.Player{
			Name:       name,
			GameID:     id,
			Gender:     gender,
			TeamLeader: i == 0,
		})
	}
	return players
}

func playerLabel(i int) string {
	if i == 0 {
		return "Team Leader"
	}
	return fmt.Sprintf("Player %d", i+1)
}

func validatePayment(p Payment) (Payment, error) {
	var v validator
	out := Payment{
		TransactionID: v.required("transactionId", p.TransactionID, "Transaction ID is required"),
		BankingName:   v.required("bankingName", p.BankingName, "Banking Name is required"),
	}
	return out, v.err()
}

func buildRequest(schema catalog.Schema, d details, p Payment) models.RegisterRequest {
	req := models.RegisterRequest{
		Event:         schema.ID,
		Name:          d.name,
		Contact:       d.contact,
		Address:       d.address,
		TransactionID: p.TransactionID,
		BankingName:   p.BankingName,
	}
	if schema.Mode == catalog.Team {
		req.TeamName = d.name
		req.Players = append([]models.Player(nil), d.players...)
		return req
	}
	req.Gender = d.gender
	req.Individual = true
	return req
}
