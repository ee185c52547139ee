package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProjectDocument 项目参考文档，创建后不可修改
type ProjectDocument struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID string    `json:"project_id" gorm:"type:uuid;not null;index"`
	Project   *Project  `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Filename  string    `json:"filename" gorm:"type:varchar(255);not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (ProjectDocument) TableName() string {
	return "project_documents"
}

// NewProjectDocument 创建项目文档
func NewProjectDocument(projectID, filename, content string) *ProjectDocument {
	return &ProjectDocument{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Filename:  filename,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// ChapterDocument 章节参考文档，创建后不可修改
type ChapterDocument struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	ChapterID string    `json:"chapter_id" gorm:"type:uuid;not null;index"`
	Chapter   *Chapter  `json:"-" gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE"`
	Filename  string    `json:"filename" gorm:"type:varchar(255);not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (ChapterDocument) TableName() string {
	return "chapter_documents"
}

// NewChapterDocument 创建章节文档
func NewChapterDocument(chapterID, filename, content string) *ChapterDocument {
	return &ChapterDocument{
		ID:        uuid.NewString(),
		ChapterID: chapterID,
		Filename:  filename,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// DocumentBlock 文档在生成上下文中的文本块形式
func DocumentBlock(filename, content string) string {
	return fmt.Sprintf("--- %s ---\n%s", filename, content)
}
