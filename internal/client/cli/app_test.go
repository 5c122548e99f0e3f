package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/questionnaire/internal/client/client"
	"github.com/dmitrijs2005/questionnaire/internal/client/config"
	"github.com/dmitrijs2005/questionnaire/internal/client/models"
	"github.com/dmitrijs2005/questionnaire/internal/client/repositories/kv"
	"github.com/dmitrijs2005/questionnaire/internal/logging"
)

type fakeServer struct {
	mu        sync.Mutex
	authHdrs  []string
	validTok  string
	questions []models.Questionnaire
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/questionnaires/my", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.authHdrs = append(f.authHdrs, r.Header.Get("Authorization"))
		valid := r.Header.Get("Authorization") == "Bearer "+f.validTok
		f.mu.Unlock()
		if !valid {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(f.questions)
	})
	mux.HandleFunc("GET /api/questionnaires/public", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})
	return mux
}

func newTestApp(t *testing.T, srv *httptest.Server, storage, input string) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = srv.URL
	cfg.StoragePath = storage
	cfg.RequestTimeout = 5 * time.Second

	var out bytes.Buffer
	app, err := NewApp(context.Background(), cfg, logging.NewTextLogger(io.Discard, slog.LevelDebug),
		strings.NewReader(input), &out)
	require.NoError(t, err)
	return app, &out
}

func seedSession(t *testing.T, path, token string) {
	t.Helper()
	ctx := context.Background()
	db, err := client.InitDatabase(ctx, path)
	require.NoError(t, err)
	defer db.Close()
	s := kv.NewSQLiteStorage(db)
	require.NoError(t, s.Set(ctx, kv.KeyToken, []byte(token)))
	require.NoError(t, s.Set(ctx, kv.KeyUser, []byte(`{"id":1,"username":"alice","nickname":"Alice"}`)))
}

func readKey(t *testing.T, path, key string) []byte {
	t.Helper()
	ctx := context.Background()
	db, err := client.InitDatabase(ctx, path)
	require.NoError(t, err)
	defer db.Close()
	v, err := kv.NewSQLiteStorage(db).Get(ctx, key)
	require.NoError(t, err)
	return v
}

func TestApp_RestoresSessionAndAttachesToken(t *testing.T) {
	fs := &fakeServer{validTok: "good", questions: []models.Questionnaire{{ID: 3, Title: "Team lunch"}}}
	srv := httptest.NewServer(fs.handler())
	defer srv.Close()
	storage := filepath.Join(t.TempDir(), "s.db")
	seedSession(t, storage, "good")

	app, out := newTestApp(t, srv, storage, "go /questionnaire/my\nwhoami\nexit\n")
	require.True(t, app.isLoggedIn())
	require.NoError(t, app.Run(context.Background()))

	assert.Equal(t, []string{"Bearer good"}, fs.authHdrs)
	s := out.String()
	assert.Contains(t, s, "-- New questionnaire --", "start page / redirects to create")
	assert.Contains(t, s, "[Alice]")
	assert.Contains(t, s, "Team lunch")
	assert.Contains(t, s, "alice (Alice) id=1")
}

func TestApp_UnauthorizedLogsOutAndOpensLogin(t *testing.T) {
	fs := &fakeServer{validTok: "fresh"}
	srv := httptest.NewServer(fs.handler())
	defer srv.Close()
	storage := filepath.Join(t.TempDir(), "s.db")
	seedSession(t, storage, "stale")

	app, out := newTestApp(t, srv, storage, "go /questionnaire/my\n")
	require.NoError(t, app.Run(context.Background()))

	assert.False(t, app.session.IsLoggedIn())
	assert.Equal(t, "login", app.router.Current().Name)
	s := out.String()
	assert.Contains(t, s, "error: unauthorized")
	assert.Contains(t, s, "== Login ==")
	assert.Equal(t, 1, strings.Count(s, "== Login =="))

	assert.Nil(t, readKey(t, storage, kv.KeyToken))
	assert.Nil(t, readKey(t, storage, kv.KeyUser))
}

func TestApp_ForbiddenKeepsSession(t *testing.T) {
	fs := &fakeServer{validTok: "good"}
	srv := httptest.NewServer(fs.handler())
	defer srv.Close()
	storage := filepath.Join(t.TempDir(), "s.db")
	seedSession(t, storage, "good")

	app, out := newTestApp(t, srv, storage, "go /questionnaire/public\n")
	require.NoError(t, app.Run(context.Background()))

	assert.NotContains(t, out.String(), "== Login ==")
	assert.Equal(t, []byte("good"), readKey(t, storage, kv.KeyToken))
	assert.True(t, app.session.IsLoggedIn())
}

func TestApp_AnonymousRequestsCarryNoToken(t *testing.T) {
	fs := &fakeServer{validTok: "good"}
	srv := httptest.NewServer(fs.handler())
	defer srv.Close()

	app, _ := newTestApp(t, srv, filepath.Join(t.TempDir(), "s.db"), "go /questionnaire/my\n")
	require.False(t, app.isLoggedIn())
	require.NoError(t, app.Run(context.Background()))

	assert.Equal(t, []string{""}, fs.authHdrs)
}

func TestApp_LogoutCommand(t *testing.T) {
	srv := httptest.NewServer((&fakeServer{}).handler())
	defer srv.Close()
	storage := filepath.Join(t.TempDir(), "s.db")
	seedSession(t, storage, "good")

	app, out := newTestApp(t, srv, storage, "logout\n")
	require.NoError(t, app.Run(context.Background()))

	assert.False(t, app.session.IsLoggedIn())
	assert.Contains(t, out.String(), "Logged out")
	assert.Equal(t, "login", app.router.Current().Name)
	assert.Nil(t, readKey(t, storage, kv.KeyToken))
}

func TestApp_RouteTable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	app, _ := newTestApp(t, srv, filepath.Join(t.TempDir(), "s.db"), "")
	defer app.Close()
	ctx := context.Background()

	tests := []struct {
		path   string
		name   string
		params map[string]string
	}{
		{"/", "questionnaire-create", map[string]string{}},
		{"/questionnaire/create", "questionnaire-create", map[string]string{}},
		{"/questionnaire/edit/42", "questionnaire-edit", map[string]string{"id": "42"}},
		{"/questionnaire/public", "questionnaire-public", map[string]string{}},
		{"/questionnaire/my", "questionnaire-my", map[string]string{}},
		{"/questionnaire/results/9", "questionnaire-results", map[string]string{"id": "9"}},
		{"/questionnaire/fill/abc", "questionnaire-fill", map[string]string{"id": "abc"}},
		{"/login", "login", map[string]string{}},
		{"/register", "register", map[string]string{}},
	}
	for _, tt := range tests {
		m, err := app.router.Resolve(ctx, tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.name, m.Name, tt.path)
		assert.Equal(t, tt.params, m.Params, tt.path)
	}

	for _, rec := range app.router.Routes() {
		assert.False(t, rec.Loaded(), "%s must not load before navigation", rec.Path)
	}

	var buf bytes.Buffer
	app.ListRoutes(&buf)
	assert.Contains(t, buf.String(), "-> /questionnaire/create")
}
