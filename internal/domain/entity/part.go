package entity

import (
	"time"

	"github.com/google/uuid"
)

// Part 项目下的部
type Part struct {
	ID         string     `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID  string     `json:"project_id" gorm:"type:uuid;not null;uniqueIndex:idx_parts_project_order,priority:1"`
	Project    *Project   `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Name       string     `json:"name" gorm:"type:varchar(255);not null"`
	OrderIndex int        `json:"order_index" gorm:"not null;uniqueIndex:idx_parts_project_order,priority:2"`
	Status     WorkStatus `json:"status" gorm:"type:varchar(32);not null;default:'draft'"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	Chapters []*Chapter `json:"chapters,omitempty" gorm:"-"`
}

// TableName 指定表名
func (Part) TableName() string {
	return "parts"
}

// NewPart 创建新部
func NewPart(projectID, name string, orderIndex int) *Part {
	now := time.Now()
	return &Part{
		ID:         uuid.NewString(),
		ProjectID:  projectID,
		Name:       name,
		OrderIndex: orderIndex,
		Status:     WorkStatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
