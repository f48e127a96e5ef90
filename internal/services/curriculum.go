package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Tetraslam/onemonth-dev/internal/logger"
	"github.com/Tetraslam/onemonth-dev/internal/repos"
	"github.com/Tetraslam/onemonth-dev/internal/types"
)

type CurriculumService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*types.Curriculum, error)
	Get(ctx context.Context, userID uuid.UUID, curriculumID uuid.UUID) (*types.Curriculum, []*types.CurriculumDay, error)
	Delete(ctx context.Context, userID uuid.UUID, curriculumID uuid.UUID) error
}

type curriculumService struct {
	log            *logger.Logger
	curriculumRepo repos.CurriculumRepo
	dayRepo        repos.CurriculumDayRepo
}

func NewCurriculumService(baseLog *logger.Logger, curriculumRepo repos.CurriculumRepo, dayRepo repos.CurriculumDayRepo) CurriculumService {
	return &curriculumService{
		log:            baseLog.With("service", "CurriculumService"),
		curriculumRepo: curriculumRepo,
		dayRepo:        dayRepo,
	}
}

func (cs *curriculumService) List(ctx context.Context, userID uuid.UUID) ([]*types.Curriculum, error) {
	return cs.curriculumRepo.ListByUserID(ctx, nil, userID)
}

// Get returns the curriculum with its days ordered by day number. Public
// curricula are readable by anyone.
func (cs *curriculumService) Get(ctx context.Context, userID uuid.UUID, curriculumID uuid.UUID) (*types.Curriculum, []*types.CurriculumDay, error) {
	curriculum, err := cs.curriculumRepo.GetByID(ctx, nil, curriculumID)
	if err != nil {
		return nil, nil, err
	}
	if curriculum == nil || (curriculum.UserID != userID && !curriculum.IsPublic) {
		return nil, nil, fmt.Errorf("curriculum not found")
	}
	days, err := cs.dayRepo.ListByCurriculumID(ctx, nil, curriculumID)
	if err != nil {
		return nil, nil, err
	}
	return curriculum, days, nil
}

func (cs *curriculumService) Delete(ctx context.Context, userID uuid.UUID, curriculumID uuid.UUID) error {
	curriculum, err := cs.curriculumRepo.GetByID(ctx, nil, curriculumID)
	if err != nil {
		return err
	}
	if curriculum == nil || curriculum.UserID != userID {
		return fmt.Errorf("curriculum not found")
	}
	return cs.curriculumRepo.Delete(ctx, nil, curriculumID)
}
