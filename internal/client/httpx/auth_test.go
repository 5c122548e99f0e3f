package httpx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/questionnaire/internal/logging"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

type fakeSession struct {
	logouts int
	err     error
}

func (f *fakeSession) Logout(context.Context) error {
	f.logouts++
	return f.err
}

type fakeNav struct {
	pushed []string
}

func (f *fakeNav) Push(_ context.Context, path string) error {
	f.pushed = append(f.pushed, path)
	return nil
}

func discardLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, slog.LevelDebug)
}

func TestBearerToken(t *testing.T) {
	var got []string
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if v, ok := r.Header["Authorization"]; ok {
			got = append(got, v[0])
		} else {
			got = append(got, "<absent>")
		}
	})

	with := NewClient(srv.Client())
	with.UseRequest(BearerToken(staticToken("abc")))
	resp, err := get(t, with, srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	without := NewClient(srv.Client())
	without.UseRequest(BearerToken(staticToken("")))
	resp, err = get(t, without, srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, []string{"Bearer abc", "<absent>"}, got)
}

func newStatusClient(t *testing.T, status int, sess *fakeSession, nav *fakeNav) (*Client, string) {
	t.Helper()
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})
	c := NewClient(srv.Client())
	c.UseResponse(Unauthorized(sess, nav, "/login", discardLogger()))
	return c, srv.URL
}

func TestUnauthorized_401LogsOutAndRedirects(t *testing.T) {
	sess, nav := &fakeSession{}, &fakeNav{}
	c, url := newStatusClient(t, http.StatusUnauthorized, sess, nav)

	_, err := get(t, c, url)

	var se *StatusError
	require.ErrorAs(t, err, &se, "caller still observes the failure")
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, 1, sess.logouts)
	assert.Equal(t, []string{"/login"}, nav.pushed)
}

func TestUnauthorized_OtherStatusesAreIgnored(t *testing.T) {
	for _, status := range []int{http.StatusForbidden, http.StatusNotFound, http.StatusInternalServerError} {
		sess, nav := &fakeSession{}, &fakeNav{}
		c, url := newStatusClient(t, status, sess, nav)

		_, err := get(t, c, url)

		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, status, se.StatusCode)
		assert.Zero(t, sess.logouts, "status %d", status)
		assert.Empty(t, nav.pushed, "status %d", status)
	}
}

func TestUnauthorized_SuccessIsIgnored(t *testing.T) {
	sess, nav := &fakeSession{}, &fakeNav{}
	c, url := newStatusClient(t, http.StatusOK, sess, nav)

	resp, err := get(t, c, url)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Zero(t, sess.logouts)
	assert.Empty(t, nav.pushed)
}

func TestUnauthorized_TransportErrorPassesThrough(t *testing.T) {
	sess, nav := &fakeSession{}, &fakeNav{}
	i := Unauthorized(sess, nav, "/login", discardLogger())
	boom := errors.New("connection reset")

	resp, err := i.InterceptResponse(nil, boom)

	assert.Nil(t, resp)
	assert.Same(t, boom, err)
	assert.Zero(t, sess.logouts)
}

func TestUnauthorized_LogoutErrorIsJoined(t *testing.T) {
	disk := errors.New("disk full")
	sess, nav := &fakeSession{err: disk}, &fakeNav{}
	c, url := newStatusClient(t, http.StatusUnauthorized, sess, nav)

	_, err := get(t, c, url)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.ErrorIs(t, err, disk)
	assert.Equal(t, []string{"/login"}, nav.pushed)
}
