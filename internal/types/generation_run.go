package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Run status values for GenerationRun.Status.
const (
	RunStatusQueued    = "queued"
	RunStatusRunning   = "running"
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)

// Run stages, in pipeline order.
const (
	RunStageResearch = "research"
	RunStageGenerate = "generate"
	RunStageValidate = "validate"
	RunStagePersist  = "persist"
	RunStageDone     = "done"
)

type GenerationRun struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	CurriculumID uuid.UUID      `gorm:"type:uuid;not null;index" json:"curriculum_id"`
	Status       string         `gorm:"column:status;not null;index" json:"status"`
	Stage        string         `gorm:"column:stage;not null" json:"stage"`
	Progress     int            `gorm:"column:progress;not null;default:0" json:"progress"`
	Error        string         `gorm:"column:error" json:"error"`
	LastErrorAt  *time.Time     `gorm:"column:last_error_at" json:"last_error_at,omitempty"`
	LockedAt     *time.Time     `gorm:"column:locked_at;index" json:"locked_at,omitempty"`
	HeartbeatAt  *time.Time     `gorm:"column:heartbeat_at;index" json:"heartbeat_at,omitempty"`
	Metadata     datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata"`
	CreatedAt    time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (GenerationRun) TableName() string { return "generation_runs" }
