package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // the Echo web framework handles routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/homestay-ledger/internal/config"
	"github.com/iliyamo/homestay-ledger/internal/handler"
	"github.com/iliyamo/homestay-ledger/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring systems use this endpoint to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware.  Unauthenticated operations live under
// /v1/auth, while protected endpoints live under /v1.  The demo session
// endpoint is only mounted when demo mode is on.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, demo bool) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token: the presented token is revoked and a
	// fresh pair is returned.
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)
	if demo {
		g.POST("/demo", a.DemoSession)
	}

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/auth/me", a.Me)
}

// RegisterPublic registers unauthenticated browse endpoints.  These are
// the hottest routes, so they sit behind the Redis response cache and
// the token-bucket rate limiter when a Redis client is available.
func RegisterPublic(e *echo.Echo, b *handler.BrowseHandler, r *handler.ReviewHandler, rdb *redis.Client) {
	g := e.Group("/v1")
	if rdb != nil {
		g.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
		g.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	}
	// Every active listing, then per-listing detail and review reads.
	g.GET("/listings", b.ActiveListings)
	g.GET("/listings/:id", b.GetListing)
	g.GET("/listings/:id/reviews", r.ListingReviews)
	g.GET("/listings/:id/rating", r.ListingRating)
	// Marketplace totals for dashboards.
	g.GET("/stats", b.Stats)
}
