// Package router maps client paths to lazily constructed views. Matching is
// delegated to gorilla/mux; the router adds redirects, nested routes,
// per-route view caching and a navigation history.
package router

import (
	"context"
	"errors"
	"io"
)

var (
	ErrRouteNotFound      = errors.New("route not found")
	ErrDuplicateRouteName = errors.New("duplicate route name")
	ErrTooManyRedirects   = errors.New("too many redirects")
)

const maxRedirects = 10

// View renders one route. A parent view renders before its child.
type View interface {
	Render(ctx context.Context, w io.Writer, m *Match) error
}

// ViewFunc adapts a function to View.
type ViewFunc func(ctx context.Context, w io.Writer, m *Match) error

func (f ViewFunc) Render(ctx context.Context, w io.Writer, m *Match) error { return f(ctx, w, m) }

// Factory builds a view. It runs on the first activation of its route.
type Factory func(ctx context.Context) (View, error)

// Route is one entry of the table. Child paths are relative to the parent
// and written without a leading slash. A route either redirects or has a
// view; redirect-only routes may be unnamed.
type Route struct {
	Path     string
	Name     string
	Redirect string
	View     Factory
	Children []Route
}

// Record is a matched table entry.
type Record struct {
	Name     string
	Path     string
	Redirect string

	factory Factory
	parent  *Record
	cache   *viewCache
}

// Match is the result of resolving a path.
type Match struct {
	// Path is the final path after redirects.
	Path string
	// Name of the deepest matched route.
	Name string
	// Params holds path parameters such as "id".
	Params map[string]string
	// Query holds the first value of each query parameter.
	Query map[string]string
	// RedirectedFrom is the originally requested path, if a redirect applied.
	RedirectedFrom string
	// Records lists matched routes from the outermost parent to the leaf.
	Records []*Record
}

// Param returns a path parameter or "".
func (m *Match) Param(name string) string {
	return m.Params[name]
}
