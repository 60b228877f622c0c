// Package router maps client-side paths to page controllers and gates
// the authenticated pages behind the session.
package router

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/classboard/internal/session"
)

// Page is a routable page controller.
type Page interface {
	Open(ctx context.Context) error
}

// Dependencies groups the router's pages and the session used for
// gating.
type Dependencies struct {
	Landing Page
	Courses Page
	Review  Page
	Session *session.Manager
}

// Router dispatches paths to pages. "/" is public; "/courses" and
// "/review" require a session and redirect to "/" when anonymous.
type Router struct {
	deps    Dependencies
	logger  zerolog.Logger
	current string
}

// New builds a router starting at "/".
func New(deps Dependencies, logger zerolog.Logger) *Router {
	return &Router{
		deps:    deps,
		logger:  logger.With().Str("component", "router").Logger(),
		current: "/",
	}
}

// Current returns the path of the page last navigated to.
func (r *Router) Current() string {
	return r.current
}

// Navigate opens the page behind the path. Unknown paths and gated paths
// hit while anonymous fall back to the landing page.
func (r *Router) Navigate(ctx context.Context, path string) error {
	page, gated := r.resolve(path)

	if gated && !r.deps.Session.Authenticated() {
		r.logger.Info().Str("path", path).Msg("not authenticated, redirecting to landing")
		path, page = "/", r.deps.Landing
	}

	r.current = path
	return page.Open(ctx)
}

// ForceHome hard-redirects to the landing path without opening it. The
// global 401 handler uses this from inside an unwinding request; the
// dispatch loop re-opens the landing page afterwards.
func (r *Router) ForceHome() {
	r.current = "/"
}

func (r *Router) resolve(path string) (Page, bool) {
	switch path {
	case "/courses":
		return r.deps.Courses, true
	case "/review":
		return r.deps.Review, true
	case "/":
		return r.deps.Landing, false
	default:
		r.logger.Debug().Str("path", path).Msg("unknown path, using landing")
		return r.deps.Landing, false
	}
}
