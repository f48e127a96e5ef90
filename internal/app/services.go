package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Tetraslam/onemonth-dev/internal/agent"
	"github.com/Tetraslam/onemonth-dev/internal/logger"
	"github.com/Tetraslam/onemonth-dev/internal/services"
	"github.com/Tetraslam/onemonth-dev/internal/sse"
	"github.com/Tetraslam/onemonth-dev/internal/validation"
)

type Services struct {
	Curriculum services.CurriculumService
	Generation services.GenerationService
	Chat       services.ChatService
}

func wireServices(db *gorm.DB, log *logger.Logger, clients Clients, reposet Repos, sseHub *sse.SSEHub) (Services, error) {
	log.Info("Wiring services...")

	pipelineAgent := agent.NewAgent(clients.LLM, clients.Research, log)

	validator, err := validation.NewValidator(log)
	if err != nil {
		return Services{}, fmt.Errorf("init validator: %w", err)
	}

	generation := services.NewGenerationService(
		db,
		log,
		sseHub,
		clients.SSEBus,
		reposet.Curriculum,
		reposet.CurriculumDay,
		reposet.GenerationRun,
		pipelineAgent,
		validator,
	)
	curriculum := services.NewCurriculumService(log, reposet.Curriculum, reposet.CurriculumDay)
	chat := services.NewChatService(log, reposet.ChatSession, pipelineAgent)

	return Services{
		Curriculum: curriculum,
		Generation: generation,
		Chat:       chat,
	}, nil
}
