// Package router wires handlers, middleware and route groups onto the
// Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/cphva/cphva-connect/internal/config"
	"github.com/cphva/cphva-connect/internal/handler"
	"github.com/cphva/cphva-connect/internal/middleware"
	"github.com/cphva/cphva-connect/internal/model"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	Users       *handler.UserHandler
	Tickets     *handler.TicketHandler
	TicketTypes *handler.TicketTypeHandler
	CheckIn     *handler.CheckInHandler
	Speakers    *handler.SpeakerHandler
	Locations   *handler.LocationHandler
	Schedule    *handler.ScheduleHandler
	Exhibitors  *handler.ExhibitorHandler
	Polls       *handler.PollHandler
	Settings    *handler.SettingsHandler
	Reports     *handler.ReportHandler
}

// Register mounts all routes. Route groups, outermost first:
//
//	/healthz, /metrics    unauthenticated operational endpoints
//	/v1/auth              register/login/refresh/logout (rate limited)
//	/v1                   any authenticated user
//	/v1/staff             staff, organiser and admin
//	/v1/admin             admin only
func Register(e *echo.Echo, cfg config.Config, h Handlers, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	auth := e.Group("/v1/auth", limiter)
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)

	// Everything below requires a valid access token.
	v1 := e.Group("/v1")
	v1.Use(middleware.JWTAuth(cfg.JWTSecret))

	v1.GET("/me", h.Auth.Me)
	v1.PUT("/me", h.Users.UpdateProfile)
	v1.POST("/logout", h.Auth.Logout)
	v1.GET("/users/:id/profile", h.Users.PublicProfile)

	v1.GET("/settings", h.Settings.Get)
	v1.GET("/ticket-types", h.TicketTypes.List)
	v1.GET("/tickets", h.Tickets.ListMine)
	v1.POST("/tickets/purchase", h.Tickets.Purchase)

	v1.GET("/speakers", h.Speakers.List)
	v1.GET("/speakers/:id", h.Speakers.Get)
	v1.GET("/locations", h.Locations.List)
	v1.GET("/schedule", h.Schedule.List)
	v1.GET("/schedule/:id", h.Schedule.Get)
	v1.GET("/exhibitors", h.Exhibitors.List)
	v1.GET("/exhibitors/:id", h.Exhibitors.Get)

	v1.GET("/polls", h.Polls.List)
	v1.GET("/polls/:id", h.Polls.Get)
	v1.POST("/polls/:id/vote", h.Polls.Vote)

	// Door staff scan badges here; the rate limiter shields the
	// endpoint from runaway scanner loops.
	staff := v1.Group("/staff")
	staff.Use(middleware.RequireRole(model.RoleStaff, model.RoleOrganiser, model.RoleAdmin))
	staff.POST("/checkin", h.CheckIn.Validate, limiter)
	staff.POST("/tickets/:id/toggle-checkin", h.Tickets.ToggleCheckIn)

	admin := v1.Group("/admin")
	admin.Use(middleware.RequireRole(model.RoleAdmin))

	admin.GET("/users", h.Users.List)
	admin.POST("/users", h.Users.Create)
	admin.GET("/users/:id", h.Users.Get)
	admin.PUT("/users/:id", h.Users.Update)
	admin.DELETE("/users/:id", h.Users.Delete)

	admin.GET("/tickets", h.Tickets.ListAll)
	admin.POST("/tickets", h.Tickets.Issue)
	admin.POST("/tickets/with-user", h.Tickets.IssueForNewUser)
	admin.DELETE("/tickets/:id", h.Tickets.Delete)

	admin.POST("/ticket-types", h.TicketTypes.Create)
	admin.PUT("/ticket-types/:id", h.TicketTypes.Update)
	admin.DELETE("/ticket-types/:id", h.TicketTypes.Delete)

	admin.PUT("/settings", h.Settings.Update)
	admin.GET("/reports/attendance", h.Reports.Attendance)
	admin.GET("/reports/sales", h.Reports.Sales)

	// Content management is open to organisers as well as admins.
	org := v1.Group("/manage")
	org.Use(middleware.RequireRole(model.RoleOrganiser, model.RoleAdmin))

	org.POST("/speakers", h.Speakers.Create)
	org.PUT("/speakers/:id", h.Speakers.Update)
	org.DELETE("/speakers/:id", h.Speakers.Delete)

	org.POST("/locations", h.Locations.Create)
	org.PUT("/locations/:id", h.Locations.Update)
	org.DELETE("/locations/:id", h.Locations.Delete)

	org.POST("/schedule", h.Schedule.Create)
	org.PUT("/schedule/:id", h.Schedule.Update)
	org.DELETE("/schedule/:id", h.Schedule.Delete)

	org.POST("/exhibitors", h.Exhibitors.Create)
	org.PUT("/exhibitors/:id", h.Exhibitors.Update)
	org.DELETE("/exhibitors/:id", h.Exhibitors.Delete)

	org.POST("/polls", h.Polls.Create)
	org.PUT("/polls/:id/open", h.Polls.SetOpen)
	org.DELETE("/polls/:id", h.Polls.Delete)
}
