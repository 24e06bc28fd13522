package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/lexisware/portfolio-backend/internal/auth"
	"github.com/lexisware/portfolio-backend/internal/config"
	"github.com/lexisware/portfolio-backend/internal/handler"
	"github.com/lexisware/portfolio-backend/internal/middleware"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth       *handler.AuthHandler
	Users      *handler.UserHandler
	Portfolios *handler.PortfolioHandler
	Projects   *handler.ProjectHandler
	Advisories *handler.AdvisoryHandler
	Dashboard  *handler.DashboardHandler
	Reports    *handler.ReportHandler
}

// Register wires all routes onto the Echo instance.  The authentication gate
// runs globally and only attaches identity; rejection happens per group via
// RequireAuth / RequireRole.  Public GETs sit behind the Redis response
// cache, and the token bucket rate limiter covers everything.
func Register(e *echo.Echo, h Handlers, tokens *auth.TokenService, rdb *redis.Client) {
	e.Validator = handler.NewValidator()

	e.Use(echomw.Recover())
	e.Use(middleware.Metrics())
	// The gate runs before the limiter so user-keyed strategies see identity.
	e.Use(middleware.Authenticate(tokens))
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// ----- public -----
	pub := e.Group("/api/public")
	pub.GET("/health", handler.Health)
	pub.GET("/info", handler.Info)
	pub.GET("/programmers", h.Users.ListProgrammers, cache)
	pub.GET("/programmers/:uid", h.Users.Get, cache)
	pub.GET("/portfolios", h.Portfolios.ListPublic, cache)
	pub.GET("/portfolios/:id", h.Portfolios.Get, cache)
	pub.GET("/portfolios/user/:uid", h.Portfolios.GetByUser, cache)
	pub.GET("/projects", h.Projects.List, cache)
	pub.GET("/projects/:id", h.Projects.Get, cache)

	// Booking creation is public: requesters need no account.
	pub.POST("/advisories", h.Advisories.Create)

	// ----- auth -----
	a := e.Group("/api/auth")
	a.POST("/register", h.Auth.Register)
	a.POST("/login", h.Auth.Login)
	a.GET("/me", h.Auth.Me, middleware.RequireAuth())

	// ----- authenticated -----
	api := e.Group("/api", middleware.RequireAuth())

	api.PATCH("/users/:uid", h.Users.UpdateProfile)
	api.PATCH("/users/:uid/availability", h.Users.SetAvailability)
	api.DELETE("/users/:uid", h.Users.Delete)

	api.POST("/portfolios", h.Portfolios.Create, middleware.RequireRole(auth.RoleProgrammer, auth.RoleAdmin))
	api.PUT("/portfolios/:id", h.Portfolios.Update)
	api.DELETE("/portfolios/:id", h.Portfolios.Delete)

	api.POST("/projects", h.Projects.Create, middleware.RequireRole(auth.RoleProgrammer, auth.RoleAdmin))
	api.PUT("/projects/:id", h.Projects.Update)
	api.DELETE("/projects/:id", h.Projects.Delete)

	adv := api.Group("/advisories")
	adv.GET("", h.Advisories.List, middleware.RequireRole(auth.RoleAdmin))
	adv.GET("/my-advisories", h.Advisories.ListMine, middleware.RequireRole(auth.RoleProgrammer, auth.RoleAdmin))
	adv.GET("/programmer/:uid", h.Advisories.ListByProgrammer)
	adv.GET("/requester/:email", h.Advisories.ListByRequester)
	adv.GET("/status/:status", h.Advisories.ListByStatus)
	adv.GET("/:id", h.Advisories.Get)
	adv.PATCH("/:id/approve", h.Advisories.Approve)
	adv.PATCH("/:id/reject", h.Advisories.Reject)
	adv.PATCH("/:id/status", h.Advisories.UpdateStatus)
	adv.DELETE("/:id", h.Advisories.Delete)

	// ----- admin -----
	admin := e.Group("/api/admin", middleware.RequireRole(auth.RoleAdmin))
	admin.GET("/users", h.Users.List)
	admin.GET("/dashboard/totals", h.Dashboard.Totals)
	admin.GET("/dashboard/advisories-by-month", h.Dashboard.AdvisoriesByMonth)
	admin.GET("/dashboard/user-growth", h.Dashboard.UserGrowth)
	admin.GET("/dashboard/advisories-by-programmer", h.Dashboard.AdvisoriesByProgrammer)
	admin.GET("/dashboard/projects-by-user", h.Dashboard.ProjectsByUser)
	admin.GET("/reports/advisories", h.Reports.AdvisoriesPDF)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
