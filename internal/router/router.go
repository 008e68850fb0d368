// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/recetario/backend/internal/handler"
	"github.com/recetario/backend/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication and
// no handler dependencies. Currently that is only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Register,
// login and logout all work without an established principal.
// Logout is deliberately open since revoking an already-revoked token
// must stay a 204 rather than turning into a 401. The login limiter
// caps how much bcrypt work an anonymous client can force.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, loginLimiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login, loginLimiter)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.RequireAuth())
	auth.GET("/me", a.Me)
}

// RegisterPublic registers unauthenticated browse endpoints. Recipe
// browsing goes through the Redis response cache; follower listings
// are public in this API but cheap enough to skip caching.
func RegisterPublic(e *echo.Echo, r *handler.RecipeHandler, s *handler.SocialHandler, eng *handler.EngagementHandler, cache echo.MiddlewareFunc) {
	e.GET("/v1/recipes", r.List, cache)
	e.GET("/v1/recipes/:id", r.Get, cache)
	e.GET("/v1/recipes/:id/comments", eng.ListComments, cache)
	e.GET("/v1/users/:id/followers", s.Followers)
	e.GET("/v1/users/:id/following", s.Following)
}

// RegisterProtected registers every endpoint that requires an
// authenticated principal. Identity resolution happens globally; the
// RequireAuth gate on this group is what turns an anonymous request
// into a 401.
func RegisterProtected(e *echo.Echo, r *handler.RecipeHandler, s *handler.SocialHandler, eng *handler.EngagementHandler, n *handler.NotificationHandler) {
	auth := e.Group("/v1", middleware.RequireAuth())

	auth.POST("/recipes", r.Create)
	auth.DELETE("/recipes/:id", r.Delete)

	auth.POST("/users/:id/follow", s.Follow)
	auth.DELETE("/users/:id/follow", s.Unfollow)

	auth.POST("/recipes/:id/like", eng.ToggleLike)
	auth.POST("/recipes/:id/rating", eng.Rate)
	auth.POST("/recipes/:id/comments", eng.Comment)
	auth.DELETE("/comments/:id", eng.DeleteComment)

	auth.GET("/notifications", n.List)
	auth.POST("/notifications/:id/read", n.MarkRead)
	auth.DELETE("/notifications/:id", n.Delete)
}
