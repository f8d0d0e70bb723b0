package controllers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Tharoon321/event-attendance/metrics"
	"github.com/Tharoon321/event-attendance/middleware"
)

// Router builds the gin engine with every endpoint registered.
func (h *Handler) Router() *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = h.maxUploadMemory
	router.Use(
		gin.Recovery(),
		middleware.Metrics(),
		middleware.RequestLogging(h.logger),
		cors.New(h.corsConfig()),
	)

	admin := middleware.AdminAuth(h.tokens)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "hi")
	})
	router.GET("/healthz", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	router.GET("/socket", gin.WrapF(h.hub.ServeWS))
	router.Static(h.images.PublicPath(), h.images.Dir())

	router.POST("/admin/login", middleware.RateLimit(h.loginRate), h.AdminLogin)

	// active event
	router.POST("/create-event", admin, h.CreateActiveEvent)
	router.GET("/api/active-event", h.GetActiveEvent)
	router.GET("/get-active-event", h.GetActiveEventOrEmpty)
	router.DELETE("/delete-event", h.DeleteActiveEvent)

	api := router.Group("/api")
	{
		api.POST("/events", admin, h.CreateEvent)
		api.GET("/events", h.ListEvents)
		api.POST("/attend", h.MarkAttendance)
		api.GET("/users", h.ListUsers)
	}

	router.POST("/add-user", h.AddUser)
	router.GET("/get-user", h.GetUser)

	return router
}

// Health reports whether the store answers a ping.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := h.dbContext(c)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if h.cors.AllowAll() {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = h.cors.AllowedOrigins
	}
	return cfg
}
