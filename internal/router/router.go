package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/quai-antique/restaurant-reservation/internal/handler"
    "github.com/quai-antique/restaurant-reservation/internal/middleware"
    "github.com/quai-antique/restaurant-reservation/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    // Load balancers and monitors hit this to verify the service is up.
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    // Operations that do not require an existing session: register, login,
    // refresh, and logout by refresh token.
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    g.POST("/refresh", a.Refresh)
    // Logout accepts either a refresh_token in the body (no JWT needed) or
    // a bearer token to revoke every session of the account.
    g.POST("/logout", a.Logout, middleware.JWTAuthOptional(jwtSecret))

    // Protected identity and profile endpoints.
    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.GET("/me", a.Me)
    auth.GET("/profile", a.GetProfile)
    auth.PUT("/profile", a.UpdateProfile)
    auth.DELETE("/account", a.DeleteAccount)
}

// RegisterPublic registers unauthenticated browse endpoints: availability,
// settings, menu and gallery.  cache may be a pass-through middleware when
// Redis is not configured.
func RegisterPublic(e *echo.Echo, r *handler.ReservationHandler, s *handler.SettingsHandler, m *handler.MenuHandler, g *handler.GalleryHandler, cache echo.MiddlewareFunc) {
    // Availability is the hot read path: cache it.  The snapshot is
    // advisory anyway, so a short TTL of staleness is acceptable.
    e.GET("/v1/reservations/availability", r.GetAvailability, cache)
    e.GET("/v1/settings", s.Get, cache)
    e.GET("/v1/settings/services", s.ListServices, cache)
    e.GET("/v1/menu/categories", m.ListCategories, cache)
    e.GET("/v1/menu/dishes", m.ListDishes, cache)
    e.GET("/v1/gallery", g.List, cache)
}

// RegisterReservations registers the guest booking lifecycle under the
// /v1/reservations base.  All routes require a valid access token; any
// access level may book.
func RegisterReservations(e *echo.Echo, r *handler.ReservationHandler, jwtSecret string) {
    auth := e.Group("/v1/reservations")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.POST("", r.Create)
    auth.GET("/my-reservations", r.List)
    auth.PUT("/:id", r.Update)
    auth.DELETE("/:id", r.Delete)
}

// RegisterAdmin registers the administrative surface: reservation
// management under /v1/reservations/admin and everything else under
// /v1/admin.  Every route requires the "admin" access level.
func RegisterAdmin(e *echo.Echo, r *handler.ReservationHandler, s *handler.SettingsHandler, m *handler.MenuHandler, g *handler.GalleryHandler, jwtSecret string) {
    // Reservation administration lives under the /v1/reservations base
    // alongside the guest lifecycle; the static "admin" segment takes
    // precedence over the guest ":id" parameter routes.
    resAdmin := e.Group("/v1/reservations/admin")
    resAdmin.Use(middleware.JWTAuth(jwtSecret))
    resAdmin.Use(middleware.RequireAccess(model.AccessAdmin))
    resAdmin.GET("/all", r.AdminListReservations)
    resAdmin.PUT("/:id", r.AdminUpdateReservation)
    resAdmin.DELETE("/:id", r.AdminDeleteReservation)

    admin := e.Group("/v1/admin")
    admin.Use(middleware.JWTAuth(jwtSecret))
    admin.Use(middleware.RequireAccess(model.AccessAdmin))

    admin.PUT("/settings/capacity", s.UpdateCapacity)
    admin.PUT("/settings/services/:id", s.UpdateServiceWindow)

    admin.POST("/menu/categories", m.CreateCategory)
    admin.PUT("/menu/categories/:id", m.UpdateCategory)
    admin.DELETE("/menu/categories/:id", m.DeleteCategory)
    admin.POST("/menu/dishes", m.CreateDish)
    admin.PUT("/menu/dishes/:id", m.UpdateDish)
    admin.DELETE("/menu/dishes/:id", m.DeleteDish)

    admin.POST("/gallery", g.Create)
    admin.PUT("/gallery/:id", g.Update)
    admin.DELETE("/gallery/:id", g.Delete)
}
