package app

import (
	"github.com/gin-gonic/gin"

	"github.com/Tetraslam/onemonth-dev/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers, mw Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		ServiceName:        cfg.ServiceName,
		AllowOrigins:       cfg.AllowOrigins,
		CurriculumHandler:  handlerset.Curriculum,
		ChatHandler:        handlerset.Chat,
		EventsHandler:      handlerset.Events,
		IdentityMiddleware: mw.Identity,
	})
}
