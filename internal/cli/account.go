package cli

import (
	"context"
	"fmt"

	"github.com/gdg-garage/reso-client/internal/models"
	"github.com/gdg-garage/reso-client/internal/roles"
)

type credentials struct {
	name     string
	email    string
	password string
}

func (a *App) credentialFlags(cmd string, args []string, withName bool) (credentials, error) {
	fs := a.flags(cmd)
	var c credentials
	if withName {
		fs.StringVar(&c.name, "name", "", "your full name")
	}
	fs.StringVar(&c.email, "email", "", "account email")
	fs.StringVar(&c.password, "password", "", "account password")
	err := fs.Parse(args)
	return c, err
}

func (a *App) signedIn(resp models.AuthResponse) {
	msg := resp.Message
	if msg == "" {
		msg = "Signed in"
	}
	a.notify.Success(msg)
	if resp.UserData.Name != "" {
		fmt.Fprintf(a.out, "Welcome, %s\n", resp.UserData.Name)
	}
}

func (a *App) signup(ctx context.Context, args []string) error {
	c, err := a.credentialFlags("signup", args, true)
	if err != nil {
		return err
	}
	resp, err := a.auth.Signup(ctx, c.name, c.email, c.password)
	if err != nil {
		return err
	}
	a.signedIn(resp)
	return nil
}

func (a *App) signin(ctx context.Context, args []string) error {
	c, err := a.credentialFlags("signin", args, false)
	if err != nil {
		return err
	}
	resp, err := a.auth.Signin(ctx, c.email, c.password)
	if err != nil {
		return err
	}
	a.signedIn(resp)
	return nil
}

func (a *App) adminSignin(ctx context.Context, args []string) error {
	c, err := a.credentialFlags("admin-signin", args, false)
	if err != nil {
		return err
	}
	resp, err := a.auth.AdminSignin(ctx, c.email, c.password)
	if err != nil {
		return err
	}
	a.signedIn(resp)
	return nil
}

func (a *App) superAdminSignin(ctx context.Context, args []string) error {
	c, err := a.credentialFlags("sadmin-signin", args, false)
	if err != nil {
		return err
	}
	resp, err := a.auth.SuperAdminSignin(ctx, c.email, c.password)
	if err != nil {
		return err
	}
	a.signedIn(resp)
	return nil
}

func (a *App) logout(ctx context.Context, args []string) error {
	if err := a.auth.Logout(); err != nil {
		return err
	}
	a.notify.Success("Logged out")
	return nil
}

func (a *App) whoami(ctx context.Context, args []string) error {
	role := a.resolver.Role()
	if role == roles.Anonymous {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	p, err := a.auth.Profile(ctx, role)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s> (%s)\n", p.Name, p.Email, role)
	return nil
}

func (a *App) routes(ctx context.Context, args []string) error {
	tree := roles.RouteTree(a.resolver.Role())
	fmt.Fprintf(a.out, "Layout: %s\n", tree.Layout)
	for _, r := range tree.Routes {
		fmt.Fprintf(a.out, "  %-36s %s\n", r.Path, r.Page)
	}
	return nil
}

func (a *App) profile(ctx context.Context, args []string) error {
	fs := a.flags("profile")
	refresh := fs.Bool("refresh", false, "ask the server instead of using the cached profile")
	if err := fs.Parse(args); err != nil {
		return err
	}

	role := a.resolver.Role()
	var (
		p   models.Profile
		err error
	)
	if *refresh {
		p, err = a.auth.RefreshProfile(ctx, role)
	} else {
		p, err = a.auth.Profile(ctx, role)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Name:  %s\nEmail: %s\nRole:  %s\n", p.Name, p.Email, role)
	return nil
}
