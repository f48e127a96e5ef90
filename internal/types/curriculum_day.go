package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CurriculumDay struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CurriculumID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_curriculum_day_number,priority:1" json:"curriculum_id"`
	Curriculum     *Curriculum    `gorm:"constraint:OnDelete:CASCADE;foreignKey:CurriculumID;references:ID" json:"curriculum,omitempty"`
	DayNumber      int            `gorm:"column:day_number;not null;uniqueIndex:idx_curriculum_day_number,priority:2" json:"day_number"`
	Title          string         `gorm:"column:title;not null" json:"title"`
	Content        datatypes.JSON `gorm:"column:content;type:jsonb;not null" json:"content"`
	Resources      datatypes.JSON `gorm:"column:resources;type:jsonb" json:"resources"`
	IsProjectDay   bool           `gorm:"column:is_project_day;not null;default:false" json:"is_project_day"`
	ProjectData    datatypes.JSON `gorm:"column:project_data;type:jsonb" json:"project_data,omitempty"`
	EstimatedHours *float64       `gorm:"column:estimated_hours" json:"estimated_hours,omitempty"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CurriculumDay) TableName() string { return "curriculum_days" }
