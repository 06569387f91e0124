package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"cityhelp-be/controllers"
	"cityhelp-be/middlewares"
	"cityhelp-be/services"
)

// Deps is everything the router needs.
type Deps struct {
	Auth   *services.AuthService
	Issues *services.IssueService
	Stats  *services.StatsService
	Authz  services.Authorizer
	Redis  *redis.Client

	CORSOrigins     []string
	Cookie          controllers.CookieConfig
	MaxUploadBytes  int64
	ReportsPerDay   int
	RateLimitPrefix string
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger(), middlewares.Metrics())

	corsConfig := cors.DefaultConfig()
	if len(d.CORSOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = d.CORSOrigins
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", middlewares.RequestIDHeader)
	corsConfig.ExposeHeaders = []string{middlewares.RequestIDHeader, "Retry-After"}
	r.Use(cors.New(corsConfig))

	authGate := middlewares.AuthMiddleware(d.Auth)
	optionalAuth := middlewares.OptionalAuth(d.Auth)
	limiter := middlewares.IssueRateLimiter(d.Redis, d.RateLimitPrefix, d.ReportsPerDay)

	ic := controllers.NewIssueController(d.Issues, d.MaxUploadBytes)
	api := r.Group("/api")
	AuthRoutes(api, controllers.NewAuthController(d.Auth, d.Cookie), authGate)
	IssueRoutes(api, ic, authGate, optionalAuth, limiter)
	AdminRoutes(api, ic, controllers.NewUserController(d.Auth), d.Authz, authGate)
	StatsRoutes(api, controllers.NewStatsController(d.Stats), authGate)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// WithTimeout bounds every request to d. The classifier timeout must stay
// well under d so a slow classifier still leaves time for the keyword fallback.
func WithTimeout(h http.Handler, d time.Duration) http.Handler {
	if d <= 0 {
		return h
	}
	return http.TimeoutHandler(h, d, `{"error":"request timed out"}`)
}
