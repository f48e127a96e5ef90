package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Tetraslam/onemonth-dev/internal/logger"
	"github.com/Tetraslam/onemonth-dev/internal/types"
)

type CurriculumRepo interface {
	Create(ctx context.Context, tx *gorm.DB, curricula []*types.Curriculum) ([]*types.Curriculum, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Curriculum, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Curriculum, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type curriculumRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCurriculumRepo(db *gorm.DB, baseLog *logger.Logger) CurriculumRepo {
	repoLog := baseLog.With("repo", "CurriculumRepo")
	return &curriculumRepo{db: db, log: repoLog}
}

func (r *curriculumRepo) Create(ctx context.Context, tx *gorm.DB, curricula []*types.Curriculum) ([]*types.Curriculum, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(curricula) == 0 {
		return []*types.Curriculum{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&curricula).Error; err != nil {
		return nil, err
	}
	return curricula, nil
}

func (r *curriculumRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Curriculum, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var curriculum types.Curriculum
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&curriculum).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &curriculum, nil
}

func (r *curriculumRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Curriculum, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Curriculum
	if userID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *curriculumRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}
	return transaction.WithContext(ctx).
		Model(&types.Curriculum{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *curriculumRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Curriculum{}).Error
}
