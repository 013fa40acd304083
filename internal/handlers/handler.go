package handlers

import (
	"stepping_debug/internal/logger"
	"stepping_debug/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// Range session over WebSocket; browsers pass the token as ?access_token=.
	ws := router.Group("/ws", h.userIdMiddleware, h.requireScope(service.ScopeRead))
	{
		ws.GET("/timeline", h.wsTimeline)
	}

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerSteppingRoutes(api)
	}
}

func (h *Handler) registerSteppingRoutes(api *gin.RouterGroup) {
	stepping := api.Group("/stepping")
	{
		// Body: one event or {"events":[...]}
		stepping.POST("/events", h.requireScope(service.ScopeWrite), h.recordEvents)

		tl := stepping.Group("/timeline", h.requireScope(service.ScopeRead))
		{
			tl.GET("", h.getTimeline)
			tl.GET("/datatable", h.getDataTable)
			tl.GET("/chart.png", h.getChartPNG)
		}
	}
}
