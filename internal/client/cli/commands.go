package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/questionnaire/internal/client/session"
)

func (a *App) status() string {
	s := "guest"
	if u := a.session.User(); u != nil {
		s = u.Username
	}
	if m := a.router.Current(); m != nil {
		s += " " + m.Path
	}
	return "(" + s + ")"
}

// Go opens path.
func (a *App) Go(ctx context.Context, path string) error {
	return a.Push(ctx, path)
}

// Back returns to the previous page.
func (a *App) Back(ctx context.Context) error {
	if !a.router.Back() {
		return errors.New("no previous page")
	}
	return nil
}

// ListRoutes prints the route table, marking views that are already loaded.
func (a *App) ListRoutes(w io.Writer) {
	for _, rec := range a.router.Routes() {
		switch {
		case rec.Redirect != "":
			fmt.Fprintf(w, "  %-28s -> %s\n", rec.Path, rec.Redirect)
		case rec.Loaded():
			fmt.Fprintf(w, "  %-28s %s (loaded)\n", rec.Path, rec.Name)
		default:
			fmt.Fprintf(w, "  %-28s %s\n", rec.Path, rec.Name)
		}
	}
}

// WhoAmI prints the logged-in user and, for JWTs, when the token expires.
func (a *App) WhoAmI(w io.Writer) {
	u := a.session.User()
	if !a.session.IsLoggedIn() || u == nil {
		fmt.Fprintln(w, "Not logged in")
		return
	}
	fmt.Fprintf(w, "%s (%s) id=%d", u.Username, u.Nickname, u.ID)
	if u.Email != "" {
		fmt.Fprintf(w, " <%s>", u.Email)
	}
	fmt.Fprintln(w)
	if exp, ok := session.TokenExpiry(a.session.Token()); ok {
		fmt.Fprintf(w, "token expires %s\n", exp.Local().Format(time.RFC1123))
	}
}

// Logout ends the session and shows the login page.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return a.Push(ctx, LoginPath)
}
