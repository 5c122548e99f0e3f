package views

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/questionnaire/internal/client/input"
	"github.com/dmitrijs2005/questionnaire/internal/client/models"
	"github.com/dmitrijs2005/questionnaire/internal/client/router"
)

// Prompt seams, swapped in tests.
var (
	getSimpleText = input.GetSimpleText
	getPassword   = input.GetPassword
)

// Login asks for credentials, stores the session and moves on to the
// "next" query parameter or "/".
func Login(d Deps) router.Factory {
	return func(context.Context) (router.View, error) {
		return router.ViewFunc(func(ctx context.Context, w io.Writer, m *router.Match) error {
			fmt.Fprintln(w, "== Login ==")

			username, err := getSimpleText(d.Input, "Username", w)
			if err != nil {
				return err
			}
			password, err := getPassword(d.Input, w)
			if err != nil {
				return err
			}

			u, err := d.Auth.Login(ctx, username, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "Welcome, %s!\n", displayName(u))

			next := m.Query["next"]
			if next == "" {
				next = "/"
			}
			return d.Nav.Push(ctx, next)
		}), nil
	}
}

// Register creates an account and sends the user to the login page.
func Register(d Deps) router.Factory {
	return func(context.Context) (router.View, error) {
		return router.ViewFunc(func(ctx context.Context, w io.Writer, m *router.Match) error {
			fmt.Fprintln(w, "== Register ==")

			var req models.RegisterRequest
			var err error
			if req.Username, err = getSimpleText(d.Input, "Username", w); err != nil {
				return err
			}
			if req.Nickname, err = getSimpleText(d.Input, "Nickname", w); err != nil {
				return err
			}
			if req.Email, err = getSimpleText(d.Input, "Email (optional)", w); err != nil {
				return err
			}
			if req.Password, err = getPassword(d.Input, w); err != nil {
				return err
			}
			if err := d.Auth.Register(ctx, req); err != nil {
				return err
			}
			fmt.Fprintln(w, "Registered. Please log in.")
			return d.Nav.Push(ctx, "/login")
		}), nil
	}
}

func displayName(u *models.User) string {
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.Username
}
