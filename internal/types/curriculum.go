package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Generation status values for Curriculum.GenerationStatus.
const (
	GenerationStatusGenerating = "generating"
	GenerationStatusCompleted  = "completed"
	GenerationStatusFailed     = "failed"
)

type Curriculum struct {
	ID                    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title                 string         `gorm:"column:title;not null" json:"title"`
	Description           string         `gorm:"column:description" json:"description"`
	LearningGoal          string         `gorm:"column:learning_goal;not null" json:"learning_goal"`
	DifficultyLevel       string         `gorm:"column:difficulty_level;not null;default:beginner" json:"difficulty_level"`
	EstimatedDurationDays int            `gorm:"column:estimated_duration_days;not null;default:30" json:"estimated_duration_days"`
	NumProjects           int            `gorm:"column:num_projects;not null;default:0" json:"num_projects"`
	GenerationStatus      string         `gorm:"column:generation_status;not null;index" json:"generation_status"`
	GenerationProgress    string         `gorm:"column:generation_progress" json:"generation_progress"`
	IsPublic              bool           `gorm:"column:is_public;not null;default:false" json:"is_public"`
	Metadata              datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata"`
	CreatedAt             time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Curriculum) TableName() string { return "curricula" }
