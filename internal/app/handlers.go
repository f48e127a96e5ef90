package app

import (
	"github.com/Tetraslam/onemonth-dev/internal/handlers"
	"github.com/Tetraslam/onemonth-dev/internal/logger"
	"github.com/Tetraslam/onemonth-dev/internal/sse"
)

type Handlers struct {
	Curriculum *handlers.CurriculumHandler
	Chat       *handlers.ChatHandler
	Events     *handlers.EventsHandler
}

func wireHandlers(log *logger.Logger, serviceset Services, sseHub *sse.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Curriculum: handlers.NewCurriculumHandler(log, serviceset.Curriculum, serviceset.Generation),
		Chat:       handlers.NewChatHandler(log, serviceset.Chat),
		Events:     handlers.NewEventsHandler(log, sseHub),
	}
}
