package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/bookmarks/internal/httpserver/mw"
)

// BookmarkPrefixes are the mount points of the bookmark resource.
var BookmarkPrefixes = []string{"/bookmarks", "/api/bookmarks"}

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	guards := protected(d)
	for _, prefix := range BookmarkPrefixes {
		r.With(guards...).Route(prefix, func(r chi.Router) {
			r.Get("/", handlers.ListBookmarks(d))
			r.Post("/", handlers.CreateBookmark(d))
			r.Get("/{id}", handlers.GetBookmark(d))
			r.Delete("/{id}", handlers.DeleteBookmark(d))
			r.Patch("/{id}", handlers.UpdateBookmark(d))
		})
	}
}

// protected is the middleware chain shared by every token-protected route.
// The rate limiter is built once so both prefixes share the same buckets.
func protected(d deps.Deps) []Middleware {
	return []Middleware{
		mw.EnforceHost(d.AllowedHosts, d.Logger),
		mw.RateLimit(mw.RateLimitConfig{
			Burst:             d.RateLimitBurst,
			RefillPerIPPerMin: d.RateLimitPerMinute,
			TrustProxy:        d.TrustProxy,
		}, d.Logger),
		mw.BearerAuth(d.APIToken, d.Logger),
	}
}
