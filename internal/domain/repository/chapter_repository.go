package repository

import (
	"context"

	"ghostwriter-api/internal/domain/entity"
)

// ChapterRepository 章节仓储接口
type ChapterRepository interface {
	// Create 创建章节，排序号冲突时返回 ErrOrderIndexConflict
	Create(ctx context.Context, chapter *entity.Chapter) error

	// GetByID 根据 ID 获取章节，不存在时返回 nil, nil
	GetByID(ctx context.Context, id string) (*entity.Chapter, error)

	// Update 更新名称与状态
	Update(ctx context.Context, chapter *entity.Chapter) error

	// Delete 删除章节，级联删除段落和章节文档
	Delete(ctx context.Context, id string) error

	// ListByPart 按排序号升序
	ListByPart(ctx context.Context, partID string) ([]*entity.Chapter, error)

	// ListByParts 批量获取多个部的章节，按部与排序号升序
	ListByParts(ctx context.Context, partIDs []string) ([]*entity.Chapter, error)

	// MaxOrderIndex 部下最大排序号，没有章节时返回 nil
	MaxOrderIndex(ctx context.Context, partID string) (*int, error)

	// GetProjectID 通过所属部解析章节的项目 ID，章节不存在时返回空串
	GetProjectID(ctx context.Context, chapterID string) (string, error)
}
