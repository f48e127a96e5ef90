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

type CurriculumDayRepo interface {
	Create(ctx context.Context, tx *gorm.DB, days []*types.CurriculumDay) ([]*types.CurriculumDay, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CurriculumDay, error)
	ListByCurriculumID(ctx context.Context, tx *gorm.DB, curriculumID uuid.UUID) ([]*types.CurriculumDay, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	DeleteByCurriculumID(ctx context.Context, tx *gorm.DB, curriculumID uuid.UUID) error
}

type curriculumDayRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCurriculumDayRepo(db *gorm.DB, baseLog *logger.Logger) CurriculumDayRepo {
	repoLog := baseLog.With("repo", "CurriculumDayRepo")
	return &curriculumDayRepo{db: db, log: repoLog}
}

func (r *curriculumDayRepo) Create(ctx context.Context, tx *gorm.DB, days []*types.CurriculumDay) ([]*types.CurriculumDay, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(days) == 0 {
		return []*types.CurriculumDay{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (r *curriculumDayRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CurriculumDay, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var day types.CurriculumDay
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (r *curriculumDayRepo) ListByCurriculumID(ctx context.Context, tx *gorm.DB, curriculumID uuid.UUID) ([]*types.CurriculumDay, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.CurriculumDay
	if curriculumID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("curriculum_id = ?", curriculumID).
		Order("day_number ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *curriculumDayRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.CurriculumDay{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *curriculumDayRepo) DeleteByCurriculumID(ctx context.Context, tx *gorm.DB, curriculumID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if curriculumID == uuid.Nil {
		return nil
	}
	// Hard delete: a soft-deleted row would still occupy the unique
	// (curriculum_id, day_number) index and block the rerun's inserts.
	return transaction.WithContext(ctx).
		Unscoped().
		Where("curriculum_id = ?", curriculumID).
		Delete(&types.CurriculumDay{}).Error
}
