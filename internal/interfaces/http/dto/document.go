package dto

import (
	"time"

	"ghostwriter-api/internal/domain/entity"
)

// CreateDocumentRequest 上传参考文档
type CreateDocumentRequest struct {
	Filename string `json:"filename" binding:"required,max=255"`
	Content  string `json:"content"`
}

// DocumentResponse 文档响应，project_id 与 chapter_id 二选一
type DocumentResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id,omitempty"`
	ChapterID string    `json:"chapter_id,omitempty"`
	Filename  string    `json:"filename"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ToProjectDocumentResponse 转换项目文档
func ToProjectDocumentResponse(d *entity.ProjectDocument) *DocumentResponse {
	return &DocumentResponse{
		ID:        d.ID,
		ProjectID: d.ProjectID,
		Filename:  d.Filename,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
	}
}

// ToChapterDocumentResponse 转换章节文档
func ToChapterDocumentResponse(d *entity.ChapterDocument) *DocumentResponse {
	return &DocumentResponse{
		ID:        d.ID,
		ChapterID: d.ChapterID,
		Filename:  d.Filename,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
	}
}

// ToProjectDocumentList 转换项目文档列表
func ToProjectDocumentList(docs []*entity.ProjectDocument) []*DocumentResponse {
	out := make([]*DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, ToProjectDocumentResponse(d))
	}
	return out
}

// ToChapterDocumentList 转换章节文档列表
func ToChapterDocumentList(docs []*entity.ChapterDocument) []*DocumentResponse {
	out := make([]*DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, ToChapterDocumentResponse(d))
	}
	return out
}

// DeletedResponse 删除结果
type DeletedResponse struct {
	Success bool `json:"success"`
}
