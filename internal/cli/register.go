package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/gdg-garage/reso-client/internal/catalog"
	"github.com/gdg-garage/reso-client/internal/models"
	"github.com/gdg-garage/reso-client/internal/receipt"
	"github.com/gdg-garage/reso-client/internal/workflow"
)

// playerList collects repeated -player flags of the form "name,id,gender".
type playerList []workflow.PlayerInput

func (p *playerList) String() string {
	parts := make([]string, 0, len(*p))
	for _, in := range *p {
		parts = append(parts, in.Name+","+in.GameID+","+in.Gender)
	}
	return strings.Join(parts, " ")
}

func (p *playerList) Set(value string) error {
	fields := strings.Split(value, ",")
	if len(fields) > 3 {
		return fmt.Errorf("player %q: expected name,id,gender", value)
	}
	for len(fields) < 3 {
		fields = append(fields, "")
	}
	*p = append(*p, workflow.PlayerInput{
		Name:   strings.TrimSpace(fields[0]),
		GameID: strings.TrimSpace(fields[1]),
		Gender: strings.TrimSpace(fields[2]),
	})
	return nil
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := a.flags("register")
	var (
		form    workflow.Form
		players playerList
		payment workflow.Payment
	)
	fs.StringVar(&form.Name, "name", "", "your name, or the team name for team events")
	fs.StringVar(&form.Gender, "gender", "", "your gender (individual events)")
	fs.StringVar(&form.Address, "address", "", "postal address")
	fs.StringVar(&form.Contact, "contact", "", "contact number")
	fs.Var(&players, "player", "team member as name,id,gender; repeat in order, leader first")
	fs.StringVar(&payment.TransactionID, "txn", "", "payment transaction ID")
	fs.StringVar(&payment.BankingName, "bank", "", "name on the paying bank account")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: reso register [flags] <event>")
	}
	form.Players = players

	schema, ok := catalog.Lookup(fs.Arg(0))
	if !ok {
		return fmt.Errorf("unknown event %q, see reso events", fs.Arg(0))
	}
	if schema.Mode == catalog.Offsite {
		a.notify.Info(schema.Instructions)
		return nil
	}

	w, err := workflow.New(schema, a.store, a.api, a.announce())
	if err != nil {
		return err
	}
	phase, err := w.Start(ctx)
	for _, n := range w.Notices() {
		a.notify.Error(n)
	}
	if err != nil {
		return err
	}

	switch phase {
	case workflow.Closed:
		a.notify.Info(fmt.Sprintf("Registration for %s is closed", schema.DisplayName()))
		return nil
	case workflow.AlreadyRegistered:
		a.notify.Info(fmt.Sprintf("You have already registered for %s", schema.DisplayName()))
		return nil
	}

	fmt.Fprintf(a.out, "%s\n", schema.DisplayName())
	if fee := w.Fee(); fee != "" {
		fmt.Fprintf(a.out, "Fee: %s%s\n", receipt.CurrencySign, fee)
	}
	if rules := w.Rules(); len(rules) > 0 {
		fmt.Fprintln(a.out, "Rules:")
		for _, r := range rules {
			fmt.Fprintf(a.out, "  - %s\n", r)
		}
	}

	if err := w.SubmitDetails(form); err != nil {
		return err
	}
	msg, err := w.SubmitPayment(ctx, payment)
	if err != nil {
		return err
	}
	a.notify.Success(msg)
	if w.AfterSubmit() == "/profile" {
		a.notify.Info("See your registrations with: reso registrations")
	}
	return nil
}

func (a *App) events(ctx context.Context, args []string) error {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEVENT\tCATEGORY\tKIND")
	for _, s := range catalog.All() {
		kind := s.Mode.String()
		if s.Mode == catalog.Team {
			kind = fmt.Sprintf("team of %d-%d", s.MinPlayers(), s.MaxPlayers())
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.DisplayName(), s.Category, kind)
	}
	return tw.Flush()
}

func (a *App) registrations(ctx context.Context, args []string) error {
	recs, err := workflow.Registered(ctx, a.api)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(a.out, "No registrations yet")
		return nil
	}
	return writeRegistrations(a.out, recs, false)
}

func writeRegistrations(w io.Writer, recs []models.RegistrationRecord, withUser bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if withUser {
		fmt.Fprintln(tw, "#\tID\tEVENT\tNAME\tEMAIL\tPAYMENT ID\tSTATUS")
	} else {
		fmt.Fprintln(tw, "#\tEVENT\tNAME\tPAYMENT ID\tSTATUS")
	}
	for i, rec := range recs {
		name := rec.Name
		if rec.Team != nil && rec.Team.TeamName != "" {
			name = rec.Team.TeamName
		}
		if withUser {
			fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t%s\n", i+1, rec.ID, rec.Event.Name, name, rec.User.Email, rec.TransactionID, receipt.PaymentStatus(rec.Approved))
		} else {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, rec.Event.Name, name, rec.TransactionID, receipt.PaymentStatus(rec.Approved))
		}
	}
	return tw.Flush()
}

func (a *App) receipt(ctx context.Context, args []string) error {
	fs := a.flags("receipt")
	format := fs.String("format", "text", "output format: text, html or pdf")
	output := fs.String("o", "", "write to this file instead of standard output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: reso receipt [flags] <number>")
	}
	n, err := strconv.Atoi(fs.Arg(0))
	if err != nil || n < 1 {
		return fmt.Errorf("receipt number must be a positive integer, see reso registrations")
	}

	var write func(io.Writer, receipt.Document) error
	switch *format {
	case "text":
		write = receipt.WriteText
	case "html":
		write = receipt.WriteHTML
	case "pdf":
		write = receipt.WritePDF
	default:
		return fmt.Errorf("unknown format %q", *format)
	}

	recs, err := workflow.Registered(ctx, a.api)
	if err != nil {
		return err
	}
	if n > len(recs) {
		return fmt.Errorf("no registration number %d, you have %d", n, len(recs))
	}
	doc := receipt.Build(recs[n-1])

	if *output == "" {
		return write(a.out, doc)
	}
	f, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("create %s: %w", *output, err)
	}
	if err := write(f, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	a.notify.Success(fmt.Sprintf("Saved %s", *output))
	return nil
}
