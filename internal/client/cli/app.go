package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/questionnaire/internal/client/api"
	"github.com/dmitrijs2005/questionnaire/internal/client/client"
	"github.com/dmitrijs2005/questionnaire/internal/client/config"
	"github.com/dmitrijs2005/questionnaire/internal/client/httpx"
	"github.com/dmitrijs2005/questionnaire/internal/client/repositories/kv"
	"github.com/dmitrijs2005/questionnaire/internal/client/router"
	"github.com/dmitrijs2005/questionnaire/internal/client/services"
	"github.com/dmitrijs2005/questionnaire/internal/client/session"
	"github.com/dmitrijs2005/questionnaire/internal/client/views"
	"github.com/dmitrijs2005/questionnaire/internal/logging"
)

// renderPasses bounds how many pages a single command may render, e.g. a
// view that fails with 401 and lands on the login page.
const renderPasses = 3

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	session *session.Store
	router  *router.Router
	api     *api.Client
	auth    services.AuthService
	reader  *bufio.Reader
	out     io.Writer

	renderedSeq uint64
}

// NewApp wires the client: it opens the session database, restores the
// session, registers the HTTP interceptors and builds the route table.
// Nothing is rendered until Run.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	db, err := client.InitDatabase(ctx, c.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	store := session.NewStore(kv.NewSQLiteStorage(db), logger)
	if err := store.Initialize(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("restore session: %w", err)
	}

	a := &App{
		config:  c,
		logger:  logger,
		db:      db,
		session: store,
		reader:  bufio.NewReader(in),
		out:     out,
	}

	hc := httpx.NewClient(&http.Client{Timeout: c.RequestTimeout})
	hc.UseRequest(httpx.RequestID(), httpx.BearerToken(store))
	hc.UseResponse(httpx.LogResponses(logger), httpx.Unauthorized(store, a, LoginPath, logger))

	a.api, err = api.NewClient(c.APIBaseURL, hc)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	a.auth = services.NewAuthService(a.api, store)

	a.router, err = router.New(appRoutes(views.Deps{
		API:     a.api,
		Auth:    a.auth,
		Session: store,
		Nav:     a,
		Input:   a.reader,
	}), logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return a, nil
}

// Push navigates the application. Views and the 401 interceptor reach the
// router through it, since both are built before the router exists.
func (a *App) Push(ctx context.Context, path string) error {
	return a.router.Push(ctx, path)
}

// Run opens the start page and serves the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	fmt.Fprintln(a.out, "Questionnaire CLI (type 'help' for commands)")
	if err := a.Push(ctx, a.config.StartPath); err != nil {
		a.logger.Error(ctx, "cannot open start page", "path", a.config.StartPath, "error", err)
	}
	a.renderIfChanged(ctx)

	runREPL(ctx, a, a.reader, a.out)
	return nil
}

func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.IsLoggedIn()
}

// renderIfChanged draws the current page when navigation happened since the
// last render. If rendering navigates elsewhere, the new page is drawn too.
func (a *App) renderIfChanged(ctx context.Context) {
	for i := 0; i < renderPasses; i++ {
		seq := a.router.Seq()
		if seq == a.renderedSeq {
			return
		}
		a.renderedSeq = seq

		m := a.router.Current()
		if m == nil {
			return
		}
		if err := a.render(ctx, m); err != nil {
			fmt.Fprintln(a.out, "error:", err)
		}

		if cur := a.router.Current(); cur != nil && cur.Path == m.Path {
			a.renderedSeq = a.router.Seq()
			return
		}
	}
}

func (a *App) render(ctx context.Context, m *router.Match) error {
	views, err := a.router.Views(ctx, m)
	if err != nil {
		return err
	}
	for _, v := range views {
		if err := v.Render(ctx, a.out, m); err != nil {
			return err
		}
	}
	return nil
}
