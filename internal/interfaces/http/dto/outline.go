package dto

import (
	"time"

	"ghostwriter-api/internal/application/story/outline"
	"ghostwriter-api/internal/domain/entity"
)

// CreateOutlineItemRequest 创建部或章节
type CreateOutlineItemRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// UpdateOutlineItemRequest 部分更新部或章节
type UpdateOutlineItemRequest struct {
	Name   *string `json:"name,omitempty"`
	Status *string `json:"status,omitempty"`
}

// ToPatch 转换为大纲更新
func (r *UpdateOutlineItemRequest) ToPatch() outline.Patch {
	return outline.Patch{Name: r.Name, Status: r.Status}
}

// ChapterResponse 章节响应
type ChapterResponse struct {
	ID         string    `json:"id"`
	PartID     string    `json:"part_id"`
	Name       string    `json:"name"`
	OrderIndex int       `json:"order_index"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PartResponse 部响应
type PartResponse struct {
	ID         string             `json:"id"`
	ProjectID  string             `json:"project_id"`
	Name       string             `json:"name"`
	OrderIndex int                `json:"order_index"`
	Status     string             `json:"status"`
	Chapters   []*ChapterResponse `json:"chapters"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// ToChapterResponse 转换章节
func ToChapterResponse(c *entity.Chapter) *ChapterResponse {
	return &ChapterResponse{
		ID:         c.ID,
		PartID:     c.PartID,
		Name:       c.Name,
		OrderIndex: c.OrderIndex,
		Status:     string(c.Status),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ToChapterList 转换章节列表
func ToChapterList(chapters []*entity.Chapter) []*ChapterResponse {
	out := make([]*ChapterResponse, 0, len(chapters))
	for _, c := range chapters {
		out = append(out, ToChapterResponse(c))
	}
	return out
}

// ToPartResponse 转换部，chapters 始终输出为数组
func ToPartResponse(p *entity.Part) *PartResponse {
	resp := &PartResponse{
		ID:         p.ID,
		ProjectID:  p.ProjectID,
		Name:       p.Name,
		OrderIndex: p.OrderIndex,
		Status:     string(p.Status),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	resp.Chapters = ToChapterList(p.Chapters)
	return resp
}

// ToPartList 转换部列表
func ToPartList(parts []*entity.Part) []*PartResponse {
	out := make([]*PartResponse, 0, len(parts))
	for _, p := range parts {
		out = append(out, ToPartResponse(p))
	}
	return out
}

// ChapterDetailResponse 章节详情
type ChapterDetailResponse struct {
	*ChapterResponse
	ProjectID        string               `json:"project_id"`
	Documents        []*DocumentResponse  `json:"chapter_documents"`
	Paragraphs       []*ParagraphResponse `json:"paragraphs"`
	ProjectDocuments []*DocumentResponse  `json:"project_documents"`
	TokenEstimate    int                  `json:"token_estimate"`
}

// ToChapterDetailResponse 转换章节详情
func ToChapterDetailResponse(d *outline.ChapterDetail) *ChapterDetailResponse {
	return &ChapterDetailResponse{
		ChapterResponse:  ToChapterResponse(d.Chapter),
		ProjectID:        d.ProjectID,
		Documents:        ToChapterDocumentList(d.Documents),
		Paragraphs:       ToParagraphList(d.Paragraphs),
		ProjectDocuments: ToProjectDocumentList(d.ProjectDocuments),
		TokenEstimate:    d.TokenEstimate,
	}
}

// ChapterTextResponse 章节已审核正文
type ChapterTextResponse struct {
	ChapterID     string `json:"chapter_id"`
	Content       string `json:"content"`
	TokenEstimate int    `json:"token_estimate"`
}
