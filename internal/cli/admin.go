package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/gdg-garage/reso-client/internal/admin"
	"github.com/gdg-garage/reso-client/internal/models"
	"github.com/gdg-garage/reso-client/internal/receipt"
)

func subcommand(args []string, usage string) (string, []string, error) {
	if len(args) == 0 {
		return "", nil, errors.New(usage)
	}
	return args[0], args[1:], nil
}

func eventUpdateFlags(fs *flag.FlagSet) *models.EventUpdate {
	upd := &models.EventUpdate{}
	fs.UintVar(&upd.EventID, "id", 0, "event id")
	fs.StringVar(&upd.Event, "event", "", "new event name")
	fs.StringVar(&upd.Date, "date", "", "new event date")
	fs.StringVar(&upd.Description, "desc", "", "new rules, one per line or separated by -")
	fs.Func("fee", "new registration fee", func(v string) error {
		upd.Fee = models.Fee(v)
		return nil
	})
	return upd
}

func (a *App) eventAdmin(ctx context.Context, args []string) error {
	sub, rest, err := subcommand(args, "usage: reso admin event|update-event|registered")
	if err != nil {
		return err
	}
	console := admin.NewEventAdmin(a.api)

	switch sub {
	case "event":
		ev, err := console.Event(ctx)
		if err != nil {
			return err
		}
		a.printEvent(ev)
		return nil

	case "update-event":
		fs := a.flags("admin update-event")
		upd := eventUpdateFlags(fs)
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if upd.EventID == 0 {
			ev, err := console.Event(ctx)
			if err != nil {
				return err
			}
			upd.EventID = ev.ID
		}
		msg, err := console.UpdateEvent(ctx, *upd)
		if err != nil {
			return err
		}
		a.notify.Success(msg)
		return nil

	case "registered":
		recs, err := console.Registered(ctx)
		if err != nil {
			return err
		}
		if err := writeRegistrations(a.out, recs, true); err != nil {
			return err
		}
		a.printSummary(admin.Summarize(recs))
		return nil
	}
	return fmt.Errorf("unknown admin command %q", sub)
}

func (a *App) superAdmin(ctx context.Context, args []string) error {
	sub, rest, err := subcommand(args, "usage: reso sadmin create-admin-event|admins|update-event|registration-open|game-registration-open|registrations|approve|summary")
	if err != nil {
		return err
	}
	console := admin.NewSuperAdmin(a.api)

	switch sub {
	case "create-admin-event":
		fs := a.flags("sadmin create-admin-event")
		var req models.EventAdminRequest
		fs.StringVar(&req.Name, "name", "", "admin name")
		fs.StringVar(&req.AdminEmail, "email", "", "admin email")
		fs.StringVar(&req.AdminPassword, "password", "", "admin password")
		fs.StringVar(&req.Event, "event", "", "event name")
		fs.StringVar(&req.Date, "date", "", "event date")
		fs.StringVar(&req.Description, "desc", "", "event rules")
		fs.Func("fee", "registration fee", func(v string) error {
			req.Fee = models.Fee(v)
			return nil
		})
		if err := fs.Parse(rest); err != nil {
			return err
		}
		msg, err := console.CreateEventAdmin(ctx, req)
		if err != nil {
			return err
		}
		a.notify.Success(msg)
		return nil

	case "admins":
		list, err := console.EventAdmins(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "EVENT ID\tEVENT\tADMIN\tEMAIL\tFEE")
		for _, ae := range list {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", ae.Event.ID, ae.Event.Name, ae.Name, ae.AdminEmail, ae.Event.Fee)
		}
		return tw.Flush()

	case "update-event":
		fs := a.flags("sadmin update-event")
		upd := eventUpdateFlags(fs)
		if err := fs.Parse(rest); err != nil {
			return err
		}
		msg, err := console.UpdateEvent(ctx, *upd)
		if err != nil {
			return err
		}
		a.notify.Success(msg)
		return nil

	case "registration-open":
		return a.toggle(rest, "Registration", func() (bool, error) {
			return console.RegistrationOpen(ctx)
		}, func(open bool) (string, error) {
			return console.SetRegistrationOpen(ctx, open)
		})

	case "game-registration-open":
		return a.toggle(rest, "Game registration", func() (bool, error) {
			return console.GameRegistrationOpen(ctx)
		}, func(open bool) (string, error) {
			return console.SetGameRegistrationOpen(ctx, open)
		})

	case "registrations":
		fs := a.flags("sadmin registrations")
		pending := fs.Bool("pending", false, "only list registrations awaiting approval")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		recs, err := console.Registrations(ctx)
		if err != nil {
			return err
		}
		if *pending {
			filtered := recs[:0]
			for _, rec := range recs {
				if !rec.Approved {
					filtered = append(filtered, rec)
				}
			}
			recs = filtered
		}
		return writeRegistrations(a.out, recs, true)

	case "approve":
		fs := a.flags("sadmin approve")
		revoke := fs.Bool("revoke", false, "mark the registration as pending again")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return errors.New("usage: reso sadmin approve [-revoke] <registration id>")
		}
		id, err := strconv.ParseUint(fs.Arg(0), 10, 64)
		if err != nil {
			return fmt.Errorf("registration id must be a number: %w", err)
		}
		msg, err := console.Approve(ctx, uint(id), !*revoke)
		if err != nil {
			return err
		}
		a.notify.Success(msg)
		return nil

	case "summary":
		recs, err := console.Registrations(ctx)
		if err != nil {
			return err
		}
		a.printSummary(admin.Summarize(recs))
		return nil
	}
	return fmt.Errorf("unknown sadmin command %q", sub)
}

// toggle shows a switch, or sets it when given on or off.
func (a *App) toggle(args []string, label string, get func() (bool, error), set func(bool) (string, error)) error {
	if len(args) == 0 {
		open, err := get()
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s is %s\n", label, openWord(open))
		return nil
	}
	var open bool
	switch args[0] {
	case "on", "open", "true":
		open = true
	case "off", "close", "closed", "false":
	default:
		return fmt.Errorf("expected on or off, got %q", args[0])
	}
	msg, err := set(open)
	if err != nil {
		return err
	}
	if msg == "" {
		msg = fmt.Sprintf("%s is now %s", label, openWord(open))
	}
	a.notify.Success(msg)
	return nil
}

func openWord(open bool) string {
	if open {
		return "open"
	}
	return "closed"
}

func (a *App) printEvent(ev models.EventDescriptor) {
	fmt.Fprintf(a.out, "ID:    %d\nEvent: %s\nDate:  %s\nFee:   %s%s\n", ev.ID, ev.Name, ev.Date, receipt.CurrencySign, ev.Fee)
	if rules := receipt.ParseRules(ev.Description); len(rules) > 0 {
		fmt.Fprintln(a.out, "Rules:")
		for _, r := range rules {
			fmt.Fprintf(a.out, "  - %s\n", r)
		}
	}
}

func (a *App) printSummary(s admin.Summary) {
	fmt.Fprintf(a.out, "\nTotal: %d  Approved: %d (%s%.2f)  Pending: %d (%s%.2f)\n",
		s.Total, s.Approved, receipt.CurrencySign, s.ApprovedFees, s.Pending, receipt.CurrencySign, s.PendingFees)
}
