// Package views implements the pages the route table points at. Views are
// thin: they prompt, call the API and print. Each constructor returns a
// router.Factory so the page is only built when first visited.
package views

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/questionnaire/internal/client/models"
)

// API is the part of api.Client the views call.
type API interface {
	PublicQuestionnaires(ctx context.Context) ([]models.Questionnaire, error)
	MyQuestionnaires(ctx context.Context) ([]models.Questionnaire, error)
	Questionnaire(ctx context.Context, id int64) (*models.Questionnaire, error)
}

// Auth is the part of services.AuthService the views call.
type Auth interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
	Register(ctx context.Context, req models.RegisterRequest) error
}

// Session is the part of session.Store the views use.
type Session interface {
	User() *models.User
}

// Navigator changes the current route.
type Navigator interface {
	Push(ctx context.Context, path string) error
}

// Deps are shared by all views.
type Deps struct {
	API     API
	Auth    Auth
	Session Session
	Nav     Navigator
	Input   *bufio.Reader
}

func questionnaireID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid questionnaire id %q", raw)
	}
	return id, nil
}
