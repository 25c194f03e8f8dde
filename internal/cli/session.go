package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/finanzas/internal/authevents"
	"github.com/dmitrijs2005/finanzas/internal/common"
	"github.com/dmitrijs2005/finanzas/internal/session"
)

func (a *App) isReady() bool {
	return a.controller.State() == session.Ready
}

func (a *App) getStatus() string {
	s := a.controller.State().String()
	if p := a.controller.Profile(); p != nil {
		s = p.Email + " " + s
	}
	if a.controller.IsDemo() {
		s += " demo"
	}
	return "(" + s + ")"
}

// Login signs in with an access token given as argument or typed hidden.
// With an auth event stream configured the sign-in event is published there.
func (a *App) Login(ctx context.Context, args []string) error {
	if a.controller.IsDemo() {
		return common.ErrDemoSignIn
	}
	var token string
	if len(args) > 0 {
		token = args[0]
	} else {
		var err error
		token, err = GetSecret("Enter access token", a.out)
		if err != nil {
			return err
		}
	}

	delivered, err := a.publishAuth(ctx, authevents.Event{Kind: authevents.SignedIn, Token: token})
	if err != nil {
		return err
	}
	if !delivered {
		fmt.Fprintln(a.out, "Sign-in requested; the session updates when the event arrives")
		return nil
	}
	if p := a.controller.Profile(); p != nil {
		fmt.Fprintf(a.out, "Signed in as %s\n", p.Email)
	}
	return nil
}

func (a *App) Demo(ctx context.Context) error {
	a.controller.StartDemo()
	fmt.Fprintln(a.out, "Demo session started. Changes are kept in memory only.")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if a.controller.IsDemo() {
		a.controller.SignOut()
		fmt.Fprintln(a.out, "Signed out")
		return nil
	}
	delivered, err := a.publishAuth(ctx, authevents.Event{Kind: authevents.SignedOut})
	if err != nil {
		return err
	}
	if !delivered {
		fmt.Fprintln(a.out, "Sign-out requested; the session updates when the event arrives")
		return nil
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *App) Status(ctx context.Context) error {
	c := a.controller
	fmt.Fprintf(a.out, "State:   %s\n", c.State())
	if p := c.Profile(); p != nil {
		fmt.Fprintf(a.out, "Profile: %s", p.Email)
		if p.DisplayName != "" {
			fmt.Fprintf(a.out, " (%s)", p.DisplayName)
		}
		fmt.Fprintln(a.out)
	}
	if c.IsDemo() {
		fmt.Fprintln(a.out, "Mode:    demo")
	}
	fmt.Fprintf(a.out, "Filter:  %s\n", a.describeFilter())
	if err := c.LastError(); err != nil {
		fmt.Fprintf(a.out, "Last error: %v\n", err)
	}
	return nil
}

// Profile updates the email and display name of the signed-in profile.
func (a *App) Profile(ctx context.Context) error {
	p := a.controller.Profile()
	if p == nil {
		return errNotSignedIn
	}

	email, err := GetTextOrDefault(a.reader, "Email", p.Email, a.out)
	if err != nil {
		return err
	}
	name, err := GetTextOrDefault(a.reader, "Nombre", p.DisplayName, a.out)
	if err != nil {
		return err
	}

	updated, err := a.controller.UpdateProfile(ctx, email, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Profile updated: %s\n", updated.Email)
	return nil
}
