package repository

import (
	"context"

	"ghostwriter-api/internal/domain/entity"
)

// PartRepository 部仓储接口
type PartRepository interface {
	// Create 创建部，排序号冲突时返回 ErrOrderIndexConflict
	Create(ctx context.Context, part *entity.Part) error

	// GetByID 根据 ID 获取部，不存在时返回 nil, nil
	GetByID(ctx context.Context, id string) (*entity.Part, error)

	// Update 更新名称与状态
	Update(ctx context.Context, part *entity.Part) error

	// Delete 删除部，级联删除章节
	Delete(ctx context.Context, id string) error

	// ListByProject 按排序号升序
	ListByProject(ctx context.Context, projectID string) ([]*entity.Part, error)

	// MaxOrderIndex 项目下最大排序号，没有部时返回 nil
	MaxOrderIndex(ctx context.Context, projectID string) (*int, error)
}
