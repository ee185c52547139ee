package dto

import (
	"time"

	"ghostwriter-api/internal/application/story/paragraph"
	"ghostwriter-api/internal/domain/entity"
)

// AppendParagraphsRequest 追加段落，pending 为 true 时保持待审
type AppendParagraphsRequest struct {
	Paragraphs []string `json:"paragraphs" binding:"required,min=1"`
	Pending    bool     `json:"pending,omitempty"`
}

// UpdateParagraphRequest 修改段落内容
type UpdateParagraphRequest struct {
	Content string `json:"content" binding:"required"`
}

// ParagraphResponse 段落响应
type ParagraphResponse struct {
	ID         string     `json:"id"`
	ChapterID  string     `json:"chapter_id"`
	Content    string     `json:"content"`
	OrderIndex int        `json:"order_index"`
	ApprovedAt *time.Time `json:"approved_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ToParagraphResponse 转换段落
func ToParagraphResponse(p *entity.Paragraph) *ParagraphResponse {
	return &ParagraphResponse{
		ID:         p.ID,
		ChapterID:  p.ChapterID,
		Content:    p.Content,
		OrderIndex: p.OrderIndex,
		ApprovedAt: p.ApprovedAt,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// ToParagraphList 转换段落列表
func ToParagraphList(paragraphs []*entity.Paragraph) []*ParagraphResponse {
	out := make([]*ParagraphResponse, 0, len(paragraphs))
	for _, p := range paragraphs {
		out = append(out, ToParagraphResponse(p))
	}
	return out
}

// GenerateParagraphsRequest 生成请求，指令可省略
type GenerateParagraphsRequest struct {
	Instruction string `json:"instruction,omitempty"`
}

// GenerateParagraphsResponse 生成结果，段落尚未保存
type GenerateParagraphsResponse struct {
	Paragraphs    []string `json:"paragraphs"`
	Explanation   string   `json:"explanation"`
	TokenEstimate int      `json:"token_estimate"`
	MaxTokens     int      `json:"max_tokens"`
}

// ToGenerateParagraphsResponse 转换生成结果
func ToGenerateParagraphsResponse(r *paragraph.GenerateResult) *GenerateParagraphsResponse {
	paragraphs := r.Paragraphs
	if paragraphs == nil {
		paragraphs = []string{}
	}
	return &GenerateParagraphsResponse{
		Paragraphs:    paragraphs,
		Explanation:   r.Explanation,
		TokenEstimate: r.TokenEstimate,
		MaxTokens:     r.MaxTokens,
	}
}
