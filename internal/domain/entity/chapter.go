package entity

import (
	"time"

	"github.com/google/uuid"
)

// Chapter 部下的章节
type Chapter struct {
	ID         string     `json:"id" gorm:"type:uuid;primaryKey"`
	PartID     string     `json:"part_id" gorm:"type:uuid;not null;uniqueIndex:idx_chapters_part_order,priority:1"`
	Part       *Part      `json:"-" gorm:"foreignKey:PartID;constraint:OnDelete:CASCADE"`
	Name       string     `json:"name" gorm:"type:varchar(255);not null"`
	OrderIndex int        `json:"order_index" gorm:"not null;uniqueIndex:idx_chapters_part_order,priority:2"`
	Status     WorkStatus `json:"status" gorm:"type:varchar(32);not null;default:'draft'"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Chapter) TableName() string {
	return "chapters"
}

// NewChapter 创建新章节
func NewChapter(partID, name string, orderIndex int) *Chapter {
	now := time.Now()
	return &Chapter{
		ID:         uuid.NewString(),
		PartID:     partID,
		Name:       name,
		OrderIndex: orderIndex,
		Status:     WorkStatusDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
