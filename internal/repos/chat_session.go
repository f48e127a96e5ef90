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

type ChatSessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sessions []*types.ChatSession) ([]*types.ChatSession, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ChatSession, error)
	GetByUserAndCurriculum(ctx context.Context, tx *gorm.DB, userID, curriculumID uuid.UUID) (*types.ChatSession, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
}

type chatSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChatSessionRepo(db *gorm.DB, baseLog *logger.Logger) ChatSessionRepo {
	repoLog := baseLog.With("repo", "ChatSessionRepo")
	return &chatSessionRepo{db: db, log: repoLog}
}

func (r *chatSessionRepo) Create(ctx context.Context, tx *gorm.DB, sessions []*types.ChatSession) ([]*types.ChatSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(sessions) == 0 {
		return []*types.ChatSession{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *chatSessionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ChatSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var session types.ChatSession
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *chatSessionRepo) GetByUserAndCurriculum(ctx context.Context, tx *gorm.DB, userID, curriculumID uuid.UUID) (*types.ChatSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if userID == uuid.Nil || curriculumID == uuid.Nil {
		return nil, nil
	}
	var session types.ChatSession
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND curriculum_id = ?", userID, curriculumID).
		Order("created_at DESC").
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *chatSessionRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.ChatSession{}).
		Where("id = ?", id).
		Updates(updates).Error
}
