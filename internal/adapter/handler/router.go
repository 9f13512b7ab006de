package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/snakanz/adviceApp-sub002/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg      *config.Config
	webhooks *WebhookHandler
	outputs  *OutputsController
	auth     echo.MiddlewareFunc
	gatherer prometheus.Gatherer
}

// NewRouter creates a new router with all handlers. outputs and auth may be
// nil, in which case the regeneration route answers 501.
func NewRouter(cfg *config.Config, webhooks *WebhookHandler, outputs *OutputsController, auth echo.MiddlewareFunc, gatherer prometheus.Gatherer) *Router {
	return &Router{
		cfg:      cfg,
		webhooks: webhooks,
		outputs:  outputs,
		auth:     auth,
		gatherer: gatherer,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	if rt.gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(rt.gatherer, promhttp.HandlerOpts{})))
	}

	v1 := e.Group("/v1")
	rt.setupWebhookRoutes(v1)
	rt.setupMeetingRoutes(v1)
}

// setupWebhookRoutes configures provider webhook routes. They are
// authenticated by signature, not by bearer token.
func (rt *Router) setupWebhookRoutes(g *echo.Group) {
	webhookGroup := g.Group("/webhooks")
	if rt.webhooks != nil {
		webhookGroup.POST("/recall", rt.webhooks.HandleRecallWebhook)
	} else {
		webhookGroup.POST("/recall", rt.notImplemented)
	}
}

// setupMeetingRoutes configures meeting routes behind bearer auth
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	if rt.outputs == nil || rt.auth == nil {
		g.POST("/meetings/:id/outputs", rt.notImplemented)
		return
	}
	meetingGroup := g.Group("/meetings", rt.auth)
	meetingGroup.POST("/:id/outputs", rt.outputs.RegenerateOutputs)
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	env := ""
	if rt.cfg != nil {
		env = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": env,
	})
}
