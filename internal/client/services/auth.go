// Package services contains application services for the questionnaire
// client. This file defines the authentication service: login, register
// and logout, keeping the remote API and the local session in step.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/questionnaire/internal/client/models"
)

// ErrEmptyCredentials is returned when username or password is blank.
var ErrEmptyCredentials = errors.New("username and password are required")

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server and persist token and user.
//   - Register: create a new user on the server; the session is untouched.
//   - Logout: drop the local session.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
	Register(ctx context.Context, req models.RegisterRequest) error
	Logout(ctx context.Context) error
}

// AuthAPI is the remote half of authentication.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*models.AuthResult, error)
	Register(ctx context.Context, req models.RegisterRequest) error
}

// SessionWriter is the local half of authentication.
type SessionWriter interface {
	Login(ctx context.Context, token string, user models.User) error
	Logout(ctx context.Context) error
}

type authService struct {
	api     AuthAPI
	session SessionWriter
}

// NewAuthService constructs an AuthService bound to the given API client and session.
func NewAuthService(api AuthAPI, session SessionWriter) AuthService {
	return &authService{api: api, session: session}
}

// Login authenticates and stores the returned token and user together. On
// any failure the session is left as it was.
func (a *authService) Login(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	res, err := a.api.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if err := a.session.Login(ctx, res.Token, res.User); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	u := res.User
	return &u, nil
}

// Register creates an account. The caller is expected to log in afterwards.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) error {
	if req.Username == "" || req.Password == "" {
		return ErrEmptyCredentials
	}
	if err := a.api.Register(ctx, req); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}
