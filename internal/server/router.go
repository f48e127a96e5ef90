package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Tetraslam/onemonth-dev/internal/handlers"
	"github.com/Tetraslam/onemonth-dev/internal/middleware"
)

type RouterConfig struct {
	ServiceName        string
	AllowOrigins       []string
	CurriculumHandler  *handlers.CurriculumHandler
	ChatHandler        *handlers.ChatHandler
	EventsHandler      *handlers.EventsHandler
	IdentityMiddleware *middleware.IdentityMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(otelgin.Middleware(cfg.ServiceName))

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", middleware.IdentityHeader},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)

	// ===============
	// || Protected ||
	// ===============
	api := router.Group("/api")
	api.Use(cfg.IdentityMiddleware.RequireIdentity())

	// Curricula
	api.POST("/curricula", cfg.CurriculumHandler.Create)
	api.GET("/curricula", cfg.CurriculumHandler.List)
	api.GET("/curricula/:id", cfg.CurriculumHandler.Get)
	api.GET("/curricula/:id/status", cfg.CurriculumHandler.Status)
	api.POST("/curricula/:id/retry", cfg.CurriculumHandler.Retry)
	api.POST("/curricula/:id/days/:day_id/regenerate", cfg.CurriculumHandler.RegenerateDay)
	api.DELETE("/curricula/:id", cfg.CurriculumHandler.Delete)

	// Chat
	api.POST("/chat", cfg.ChatHandler.Chat)
	api.POST("/chat/stream", cfg.ChatHandler.ChatStream)
	api.GET("/chat/history/:curriculum_id", cfg.ChatHandler.History)

	// SSE
	api.GET("/events/stream", cfg.EventsHandler.Stream)

	return router
}
