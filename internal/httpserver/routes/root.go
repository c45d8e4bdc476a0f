package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/mw"
)

func init() { Register(registerRoot) }

func registerRoot(r chi.Router, d deps.Deps) {
	r.With(mw.BearerAuth(d.APIToken, d.Logger)).Get("/", handlers.Root(d))
}

// registerFallbacks puts the token check in front of chi's 404 and 405
// answers so unknown paths cannot be probed anonymously. It must run after
// every route is declared: chi copies the handlers into mounted subrouters.
func registerFallbacks(r chi.Router, d deps.Deps) {
	auth := mw.BearerAuth(d.APIToken, d.Logger)
	r.NotFound(auth(handlers.NotFound(d)).ServeHTTP)
	r.MethodNotAllowed(auth(handlers.MethodNotAllowed(d)).ServeHTTP)
}
