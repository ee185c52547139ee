package entity

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Paragraph 章节段落，ApprovedAt 为空表示待审
type Paragraph struct {
	ID         string     `json:"id" gorm:"type:uuid;primaryKey"`
	ChapterID  string     `json:"chapter_id" gorm:"type:uuid;not null;uniqueIndex:idx_paragraphs_chapter_order,priority:1"`
	Chapter    *Chapter   `json:"-" gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE"`
	Content    string     `json:"content" gorm:"type:text;not null"`
	OrderIndex int        `json:"order_index" gorm:"not null;uniqueIndex:idx_paragraphs_chapter_order,priority:2"`
	ApprovedAt *time.Time `json:"approved_at" gorm:"index"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Paragraph) TableName() string {
	return "paragraphs"
}

// NewParagraph 创建段落，approvedAt 为 nil 时为待审
func NewParagraph(chapterID, content string, orderIndex int, approvedAt *time.Time) *Paragraph {
	now := time.Now()
	return &Paragraph{
		ID:         uuid.NewString(),
		ChapterID:  chapterID,
		Content:    content,
		OrderIndex: orderIndex,
		ApprovedAt: approvedAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsApproved 是否已审核通过
func (p *Paragraph) IsApproved() bool {
	return p.ApprovedAt != nil
}

// Approve 标记审核通过
func (p *Paragraph) Approve(at time.Time) {
	p.ApprovedAt = &at
	p.UpdatedAt = at
}

// JoinApproved 按排序号拼接已审核段落，段落间以空行分隔
func JoinApproved(paragraphs []*Paragraph) string {
	approved := make([]*Paragraph, 0, len(paragraphs))
	for _, p := range paragraphs {
		if p.IsApproved() {
			approved = append(approved, p)
		}
	}
	sort.SliceStable(approved, func(i, j int) bool {
		return approved[i].OrderIndex < approved[j].OrderIndex
	})

	parts := make([]string, len(approved))
	for i, p := range approved {
		parts[i] = p.Content
	}
	return strings.Join(parts, "\n\n")
}
