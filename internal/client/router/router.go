package router

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/questionnaire/internal/logging"
)

// Router resolves paths against a fixed route table and keeps the
// navigation history. It is safe for concurrent use.
type Router struct {
	mux     *mux.Router
	records map[*mux.Route]*Record
	table   []*Record
	logger  logging.Logger

	mu      sync.Mutex
	history []*Match
	seq     uint64
}

// New validates the table and builds the matcher. Route names must be
// unique, and every route needs a view or a redirect.
func New(routes []Route, logger logging.Logger) (*Router, error) {
	r := &Router{
		mux:     mux.NewRouter(),
		records: make(map[*mux.Route]*Record),
		logger:  logger.With("component", "router"),
	}
	if err := r.build(r.mux, routes, nil, make(map[string]struct{})); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Router) build(m *mux.Router, routes []Route, parent *Record, names map[string]struct{}) error {
	for _, rt := range routes {
		if rt.Name != "" {
			if _, dup := names[rt.Name]; dup {
				return fmt.Errorf("%w: %q", ErrDuplicateRouteName, rt.Name)
			}
			names[rt.Name] = struct{}{}
		}
		if rt.View == nil && rt.Redirect == "" {
			return fmt.Errorf("route %q (%s) has neither a view nor a redirect", rt.Name, rt.Path)
		}

		template := rt.Path
		full := rt.Path
		if parent != nil {
			template = "/" + strings.TrimPrefix(rt.Path, "/")
			full = strings.TrimSuffix(parent.Path, "/") + template
		}
		template = muxTemplate(template)

		rec := &Record{
			Name:     rt.Name,
			Path:     full,
			Redirect: rt.Redirect,
			factory:  rt.View,
			parent:   parent,
			cache:    &viewCache{},
		}
		r.table = append(r.table, rec)

		route := m.Path(template)
		if err := route.GetError(); err != nil {
			return fmt.Errorf("route %q: %w", full, err)
		}
		r.records[route] = rec

		if len(rt.Children) > 0 {
			sub := m.PathPrefix(template).Subrouter()
			if err := r.build(sub, rt.Children, rec, names); err != nil {
				return err
			}
		}
	}
	return nil
}

// muxTemplate turns ":id" segments into gorilla/mux "{id}" variables.
func muxTemplate(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		if strings.HasPrefix(s, ":") && len(s) > 1 {
			segments[i] = "{" + s[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

// Resolve matches path, following redirects. It neither loads views nor
// touches the history.
func (r *Router) Resolve(ctx context.Context, path string) (*Match, error) {
	requested := path
	for hops := 0; ; hops++ {
		if hops > maxRedirects {
			return nil, fmt.Errorf("%w: %s", ErrTooManyRedirects, requested)
		}

		u, err := url.Parse(path)
		if err != nil || !strings.HasPrefix(u.Path, "/") {
			return nil, fmt.Errorf("%w: %q", ErrRouteNotFound, path)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrRouteNotFound, path)
		}

		var rm mux.RouteMatch
		if !r.mux.Match(req, &rm) || rm.MatchErr != nil {
			return nil, fmt.Errorf("%w: %s", ErrRouteNotFound, u.Path)
		}
		rec, ok := r.records[rm.Route]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrRouteNotFound, u.Path)
		}

		if rec.Redirect != "" {
			path = rec.Redirect
			continue
		}

		m := &Match{
			Path:    u.Path,
			Name:    rec.Name,
			Params:  rm.Vars,
			Query:   make(map[string]string),
			Records: chain(rec),
		}
		if m.Params == nil {
			m.Params = make(map[string]string)
		}
		for k, v := range u.Query() {
			m.Query[k] = v[0]
		}
		if hops > 0 {
			m.RedirectedFrom = requested
		}
		return m, nil
	}
}

func chain(rec *Record) []*Record {
	var out []*Record
	for r := rec; r != nil; r = r.parent {
		out = append(out, r)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Views returns the views of m from outermost to innermost, building each
// one on its first use. A factory error is returned as is.
func (r *Router) Views(ctx context.Context, m *Match) ([]View, error) {
	views := make([]View, 0, len(m.Records))
	for _, rec := range m.Records {
		if rec.factory == nil {
			continue
		}
		first := !rec.cache.loaded()
		v, err := rec.cache.get(ctx, rec.factory)
		if err != nil {
			return nil, fmt.Errorf("load view %q: %w", rec.Name, err)
		}
		if first {
			r.logger.Debug(ctx, "view loaded", "route", rec.Name)
		}
		views = append(views, v)
	}
	return views, nil
}

// Push resolves path, loads its views and makes it the current location.
// On error the location does not change.
func (r *Router) Push(ctx context.Context, path string) error {
	m, err := r.Resolve(ctx, path)
	if err != nil {
		return err
	}
	if _, err := r.Views(ctx, m); err != nil {
		return err
	}

	r.mu.Lock()
	r.history = append(r.history, m)
	r.seq++
	r.mu.Unlock()

	r.logger.Debug(ctx, "navigated", "path", m.Path, "route", m.Name)
	return nil
}

// Back returns to the previous location. It reports false when there is
// nothing to go back to.
func (r *Router) Back() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) < 2 {
		return false
	}
	r.history = r.history[:len(r.history)-1]
	r.seq++
	return true
}

// Current returns the current location, or nil before the first Push.
func (r *Router) Current() *Match {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) == 0 {
		return nil
	}
	return r.history[len(r.history)-1]
}

// Seq increases with every change of location.
func (r *Router) Seq() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq
}

// Routes lists the table in declaration order, parents before children.
func (r *Router) Routes() []*Record {
	out := make([]*Record, len(r.table))
	copy(out, r.table)
	return out
}

// Loaded reports whether the route's view has been built.
func (rec *Record) Loaded() bool {
	return rec.cache.loaded()
}
