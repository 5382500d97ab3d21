// Package cli is the terminal front end of the registration client. Every
// command belongs to a route and runs only when the resolved role's route
// tree mounts that route.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"sort"

	"github.com/gdg-garage/reso-client/internal/auth"
	"github.com/gdg-garage/reso-client/internal/gateway"
	"github.com/gdg-garage/reso-client/internal/models"
	"github.com/gdg-garage/reso-client/internal/notifier"
	"github.com/gdg-garage/reso-client/internal/roles"
	"github.com/gdg-garage/reso-client/internal/session"
	"github.com/gdg-garage/reso-client/internal/workflow"
)

// ErrNotAvailable is returned for a command the current role cannot reach.
var ErrNotAvailable = errors.New("command not available")

type App struct {
	store     *session.Store
	api       gateway.Requester
	auth      *auth.Service
	resolver  *roles.Resolver
	notify    *notifier.Console
	announcer notifier.RegistrationNotifier
	out       io.Writer
}

type Option func(*App)

func WithOutput(w io.Writer) Option {
	return func(a *App) { a.out = w }
}

// WithAnnouncer announces every accepted registration through n.
func WithAnnouncer(n notifier.RegistrationNotifier) Option {
	return func(a *App) { a.announcer = n }
}

func New(store *session.Store, api gateway.Requester, opts ...Option) *App {
	a := &App{
		store:    store,
		api:      api,
		auth:     auth.NewService(store, api),
		resolver: roles.NewResolver(store, api),
		out:      io.Discard,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.notify = notifier.NewConsole(a.out)
	return a
}

type command struct {
	name  string
	usage string
	// paths lists the routes the command belongs to; any one mounted is enough.
	paths []string
	run   func(a *App, ctx context.Context, args []string) error
}

func commands() []command {
	return []command{
		{"signup", "create a participant account", []string{"/signup"}, (*App).signup},
		{"signin", "sign in as a participant", []string{"/signin"}, (*App).signin},
		{"admin-signin", "sign in as an event admin", []string{"/admin-signin"}, (*App).adminSignin},
		{"sadmin-signin", "sign in as a super admin", []string{"/sadmin-signin"}, (*App).superAdminSignin},
		{"logout", "sign out", []string{"/"}, (*App).logout},
		{"whoami", "show the signed-in account", []string{"/"}, (*App).whoami},
		{"routes", "list the routes available to you", []string{"/"}, (*App).routes},
		{"events", "list the festival events", []string{"/"}, (*App).events},
		{"register", "register for an event", []string{"/register"}, (*App).register},
		{"profile", "show your profile", []string{"/profile", "/admin/profile", "/superadmin/profile"}, (*App).profile},
		{"registrations", "list your registrations", []string{"/profile"}, (*App).registrations},
		{"receipt", "print the receipt of one registration", []string{"/profile"}, (*App).receipt},
		{"admin", "manage your event (event, update-event, registered)", []string{"/admin/event", "/admin/registered"}, (*App).eventAdmin},
		{"sadmin", "manage the festival (create-admin-event, admins, update-event, registration-open, game-registration-open, registrations, approve, summary)", []string{"/superadmin/registered"}, (*App).superAdmin},
	}
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands() {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// Run executes one command line. Failures are reported to the output
// before being returned.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		a.usage()
		return nil
	}

	cmd, ok := lookupCommand(args[0])
	if !ok {
		a.usage()
		err := fmt.Errorf("unknown command %q", args[0])
		a.notify.Error(err.Error())
		return err
	}

	role := a.resolver.Resolve(ctx)
	if !a.allowed(role, cmd) {
		err := fmt.Errorf("%w: %s while %s", ErrNotAvailable, cmd.name, role)
		a.notify.Error(notAvailableMessage(role, cmd))
		return err
	}

	if err := cmd.run(a, ctx, args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		a.notify.Error(Describe(err))
		return err
	}
	return nil
}

func (a *App) allowed(role roles.Role, cmd command) bool {
	tree := roles.RouteTree(role)
	for _, p := range cmd.paths {
		if _, ok := tree.Lookup(p); ok {
			return true
		}
	}
	return false
}

func notAvailableMessage(role roles.Role, cmd command) string {
	if role == roles.Anonymous {
		return fmt.Sprintf("Please sign in to use %s", cmd.name)
	}
	return fmt.Sprintf("%s is not available while signed in as %s", cmd.name, role)
}

func (a *App) usage() {
	fmt.Fprintln(a.out, "Usage: reso <command> [flags]")
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Commands:")
	cmds := commands()
	names := make([]string, 0, len(cmds))
	byName := make(map[string]command, len(cmds))
	for _, c := range cmds {
		names = append(names, c.name)
		byName[c.name] = c
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(a.out, "  %-15s %s\n", n, byName[n].usage)
	}
}

func (a *App) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// Describe renders err for the terminal.
func Describe(err error) string {
	var verr *workflow.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	var redirect *workflow.Redirect
	if errors.As(err, &redirect) {
		return "Please sign in first"
	}
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) || errors.Is(err, gateway.ErrNoCredential) {
		return gateway.Message(err)
	}
	return err.Error()
}

func (a *App) announce() workflow.Option {
	return workflow.OnSubmitted(func(ctx context.Context, req models.RegisterRequest) {
		if a.announcer == nil {
			return
		}
		profile, _ := a.store.Profile()
		if err := a.announcer.NotifyRegistration(ctx, profile, req); err != nil {
			log.Printf("Failed to announce registration: %v", err)
		}
	})
}
