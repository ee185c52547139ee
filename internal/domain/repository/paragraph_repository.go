package repository

import (
	"context"

	"ghostwriter-api/internal/domain/entity"
)

// ParagraphRepository 段落仓储接口
type ParagraphRepository interface {
	// CreateBatch 批量插入段落，排序号冲突时返回 ErrOrderIndexConflict
	CreateBatch(ctx context.Context, paragraphs []*entity.Paragraph) error

	// GetByID 根据 ID 获取段落，不存在时返回 nil, nil
	GetByID(ctx context.Context, id string) (*entity.Paragraph, error)

	// Update 更新内容与审核时间
	Update(ctx context.Context, paragraph *entity.Paragraph) error

	Delete(ctx context.Context, id string) error

	// ListByChapter 全部段落，按排序号升序
	ListByChapter(ctx context.Context, chapterID string) ([]*entity.Paragraph, error)

	// ListApprovedByChapter 仅已审核段落，按排序号升序
	ListApprovedByChapter(ctx context.Context, chapterID string) ([]*entity.Paragraph, error)

	// MaxOrderIndex 章节下最大排序号，没有段落时返回 nil
	MaxOrderIndex(ctx context.Context, chapterID string) (*int, error)
}
