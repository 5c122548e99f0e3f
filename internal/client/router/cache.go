package router

import (
	"context"
	"sync"
)

// viewCache holds the view of one route for the process lifetime. Only
// successful builds are kept, so a failing factory is retried on the next
// activation.
type viewCache struct {
	mu   sync.Mutex
	view View
}

func (c *viewCache) get(ctx context.Context, f Factory) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view != nil {
		return c.view, nil
	}
	v, err := f(ctx)
	if err != nil {
		return nil, err
	}
	c.view = v
	return v, nil
}

func (c *viewCache) loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view != nil
}
