// Package api is the JSON client of the questionnaire service. Every call
// goes through an httpx.Client, so the registered interceptors (bearer
// token, 401 handling) apply uniformly.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/questionnaire/internal/client/httpx"
	"github.com/dmitrijs2005/questionnaire/internal/client/models"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("server unavailable")
	ErrBadResponse  = errors.New("bad response")
)

// Doer is what Client needs from the transport.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	baseURL *url.URL
	http    Doer
}

func NewClient(baseURL string, doer Doer) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	return &Client{baseURL: u, http: doer}, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*models.AuthResult, error) {
	body := map[string]string{"username": username, "password": password}
	var res models.AuthResult
	if err := c.call(ctx, http.MethodPost, "/api/auth/login", body, &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, fmt.Errorf("%w: login returned no token", ErrBadResponse)
	}
	return &res, nil
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) error {
	return c.call(ctx, http.MethodPost, "/api/auth/register", req, nil)
}

func (c *Client) PublicQuestionnaires(ctx context.Context) ([]models.Questionnaire, error) {
	var list []models.Questionnaire
	if err := c.call(ctx, http.MethodGet, "/api/questionnaires/public", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) MyQuestionnaires(ctx context.Context) ([]models.Questionnaire, error) {
	var list []models.Questionnaire
	if err := c.call(ctx, http.MethodGet, "/api/questionnaires/my", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) Questionnaire(ctx context.Context, id int64) (*models.Questionnaire, error) {
	var q models.Questionnaire
	if err := c.call(ctx, http.MethodGet, "/api/questionnaires/"+strconv.FormatInt(id, 10), nil, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (c *Client) call(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return mapError(err)
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrBadResponse, method, path, err)
	}
	return nil
}

// mapError tags transport failures with a sentinel while keeping the
// original error reachable through errors.As.
func mapError(err error) error {
	var se *httpx.StatusError
	switch {
	case errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	case errors.As(err, &se) && se.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	case errors.As(err, &se):
		return err
	case errors.Is(err, context.Canceled):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
}
