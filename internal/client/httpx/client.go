// Package httpx is a small HTTP client with ordered request and response
// interceptors, plus the interceptors the questionnaire client registers:
// bearer-token attachment, 401 handling and request IDs.
package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const maxErrorBody = 4 << 10

// RequestInterceptor may mutate an outgoing request. A returned error aborts
// the call and reaches the caller unchanged.
type RequestInterceptor interface {
	InterceptRequest(req *http.Request) error
}

// ResponseInterceptor sees every outcome: a successful response (err == nil)
// or a failure. It returns the outcome passed to the next interceptor.
type ResponseInterceptor interface {
	InterceptResponse(resp *http.Response, err error) (*http.Response, error)
}

type RequestInterceptorFunc func(req *http.Request) error

func (f RequestInterceptorFunc) InterceptRequest(req *http.Request) error { return f(req) }

type ResponseInterceptorFunc func(resp *http.Response, err error) (*http.Response, error)

func (f ResponseInterceptorFunc) InterceptResponse(resp *http.Response, err error) (*http.Response, error) {
	return f(resp, err)
}

// StatusError is the failure produced for responses with status >= 400.
// The response body has already been read (up to 4 KiB) and closed; Do
// returns a nil *http.Response alongside it.
type StatusError struct {
	StatusCode int
	Status     string
	Method     string
	URL        string
	Body       string
	Response   *http.Response
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Client dispatches requests through its interceptors. Interceptors are
// registered during startup; Use* must not race with Do.
type Client struct {
	hc       *http.Client
	requests []RequestInterceptor
	replies  []ResponseInterceptor
}

// NewClient wraps hc; nil means http.DefaultClient.
func NewClient(hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{hc: hc}
}

// UseRequest appends request interceptors; they run in the order added.
func (c *Client) UseRequest(i ...RequestInterceptor) {
	c.requests = append(c.requests, i...)
}

// UseResponse appends response interceptors; they run in the order added.
func (c *Client) UseResponse(i ...ResponseInterceptor) {
	c.replies = append(c.replies, i...)
}

// Do runs the request interceptors, sends req and runs the response
// interceptors in registration order. A status >= 400 becomes a
// *StatusError; on success the caller owns resp.Body.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	for _, i := range c.requests {
		if err := i.InterceptRequest(req); err != nil {
			return nil, err
		}
	}

	resp, err := c.hc.Do(req)
	if err == nil && resp.StatusCode >= http.StatusBadRequest {
		err = newStatusError(req, resp)
		resp = nil
	}

	for _, i := range c.replies {
		resp, err = i.InterceptResponse(resp, err)
	}
	return resp, err
}

// Context returns the context of the request that failed.
func (e *StatusError) Context() context.Context {
	if e.Response != nil && e.Response.Request != nil {
		return e.Response.Request.Context()
	}
	return context.Background()
}

func newStatusError(req *http.Request, resp *http.Response) *StatusError {
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Method:     req.Method,
		URL:        req.URL.Redacted(),
		Body:       strings.TrimSpace(string(body)),
		Response:   resp,
	}
}
