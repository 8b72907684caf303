package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"nest/internal/domain/auth"
	"nest/internal/handler/api"
	"nest/internal/handler/middleware"
	"nest/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

type Handlers struct {
	Webhook     *api.WebhookHandler
	Entitlement *api.EntitlementHandler
	Delivery    *api.DeliveryHandler
	Greenlight  *api.GreenlightHandler
}

type RouterParams struct {
	Config   config.Config
	Logger   *middleware.Logger
	Auth     *middleware.AuthMiddleware
	Gate     middleware.Gate
	Gatherer prometheus.Gatherer
	Checks   map[string]HealthCheck
	Handlers Handlers
}

func NewRouter(engine *gin.Engine, p RouterParams) {
	setupMiddleware(engine, p)
	setupRoutes(engine, p)
}

func setupMiddleware(engine *gin.Engine, p RouterParams) {
	engine.Use(middleware.Recovery(p.Logger.Slog()))
	engine.Use(middleware.NewCORSMiddleware(p.Config.CORS, p.Logger.Slog()))
	engine.Use(p.Logger.Middleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, p RouterParams) {
	engine.GET("/health", healthCheck(p.Checks, p.Logger.Slog()))
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{})))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	var gate middleware.Gate
	if p.Config.Webhook.GreenlightEnabled {
		gate = p.Gate
	}
	webhooks := engine.Group("/webhooks")
	addRoutes(webhooks, []route{
		{Method: http.MethodPost, Path: "/fastspring", Handler: p.Handlers.Webhook.Receive, Mw: []gin.HandlerFunc{middleware.Greenlight(gate)}},
	})

	apiGroup := engine.Group("/api")
	apiGroup.Use(p.Auth.RequireAuth())
	{
		addRoutes(apiGroup.Group("/users"), []route{
			{Method: http.MethodGet, Path: "/:email/entitlements", Handler: p.Handlers.Entitlement.Get},
		})

		addRoutes(apiGroup.Group("/deliveries"), []route{
			{Method: http.MethodGet, Path: "", Handler: p.Handlers.Delivery.List},
			{Method: http.MethodGet, Path: "/:id", Handler: p.Handlers.Delivery.Get},
			{Method: http.MethodPost, Path: "/:id/replay", Handler: p.Handlers.Delivery.Replay, Mw: []gin.HandlerFunc{p.Auth.RequireRoleAtLeast(auth.RoleOperator)}},
		})

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/greenlight", Handler: p.Handlers.Greenlight.Get},
			{Method: http.MethodPut, Path: "/greenlight", Handler: p.Handlers.Greenlight.Put, Mw: []gin.HandlerFunc{p.Auth.RequireRoleAtLeast(auth.RoleAdmin)}},
		})
	}
}

// @Summary Health check
// @Description Reports the reachability of the database and Redis
// @Tags health
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 503 {object} map[string]any
// @Router /health [get]
func healthCheck(checks map[string]HealthCheck, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				logger.Warn("health check failed", "dependency", name, "error", err)
				results[name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		c.JSON(status, gin.H{"status": overall, "checks": results})
	}
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
