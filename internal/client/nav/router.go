// Package nav moves the client between screens. Each screen's access check
// runs exactly once per transition into it.
package nav

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophprofile/internal/logging"
)

// maxRedirects bounds a chain of guard redirects.
const maxRedirects = 4

var (
	ErrUnknownRoute     = errors.New("unknown route")
	ErrTooManyRedirects = errors.New("too many redirects")
)

// Screen is a navigable destination. Enter is called once per transition;
// it returns "" to accept or another path to redirect to.
type Screen interface {
	Enter(ctx context.Context) (redirect string)
}

// ScreenFunc adapts a function to Screen.
type ScreenFunc func(ctx context.Context) string

func (f ScreenFunc) Enter(ctx context.Context) string { return f(ctx) }

type Router struct {
	mu      sync.Mutex
	screens map[string]Screen
	current string
	log     logging.Logger
}

func NewRouter(log logging.Logger) *Router {
	return &Router{screens: make(map[string]Screen), log: log}
}

func (r *Router) Register(path string, s Screen) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.screens[path] = s
}

// Current returns the path of the active screen, "" before the first
// successful navigation.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Navigate enters path, following redirects. It returns the path that was
// finally entered. On error the current screen is unchanged.
func (r *Router) Navigate(ctx context.Context, path string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	from := r.current
	for hops := 0; hops <= maxRedirects; hops++ {
		s, ok := r.screens[path]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownRoute, path)
		}

		redirect := s.Enter(ctx)
		if redirect == "" {
			r.current = path
			r.log.Debug(ctx, "navigated", "from", from, "to", path, "redirects", hops)
			return path, nil
		}

		r.log.Info(ctx, "redirected", "from", path, "to", redirect)
		path = redirect
	}
	return "", ErrTooManyRedirects
}
