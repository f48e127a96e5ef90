package app

import (
	"gorm.io/gorm"

	"github.com/Tetraslam/onemonth-dev/internal/logger"
	"github.com/Tetraslam/onemonth-dev/internal/repos"
)

type Repos struct {
	Curriculum    repos.CurriculumRepo
	CurriculumDay repos.CurriculumDayRepo
	ChatSession   repos.ChatSessionRepo
	GenerationRun repos.GenerationRunRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Curriculum:    repos.NewCurriculumRepo(db, log),
		CurriculumDay: repos.NewCurriculumDayRepo(db, log),
		ChatSession:   repos.NewChatSessionRepo(db, log),
		GenerationRun: repos.NewGenerationRunRepo(db, log),
	}
}
