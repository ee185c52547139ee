package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"ghostwriter-api/internal/domain/entity"
)

// PartRepository 部仓储实现
type PartRepository struct {
	client *Client
}

// NewPartRepository 创建部仓储
func NewPartRepository(client *Client) *PartRepository {
	return &PartRepository{client: client}
}

// Create 创建部
func (r *PartRepository) Create(ctx context.Context, part *entity.Part) error {
	ctx, span := tracer.Start(ctx, "postgres.PartRepository.Create")
	defer span.End()

	if err := getDB(ctx, r.client.db).Omit("Project").Create(part).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create part: %w", translateInsertErr(err))
	}
	return nil
}

// GetByID 根据 ID 获取部
func (r *PartRepository) GetByID(ctx context.Context, id string) (*entity.Part, error) {
	ctx, span := tracer.Start(ctx, "postgres.PartRepository.GetByID")
	defer span.End()

	var part entity.Part
	if err := getDB(ctx, r.client.db).First(&part, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get part: %w", err)
	}
	return &part, nil
}

// Update 更新部名称与状态
func (r *PartRepository) Update(ctx context.Context, part *entity.Part) error {
	ctx, span := tracer.Start(ctx, "postgres.PartRepository.Update")
	defer span.End()

	part.UpdatedAt = time.Now()
	result := getDB(ctx, r.client.db).Model(&entity.Part{}).
		Where("id = ?", part.ID).
		Updates(map[string]any{
			"name":       part.Name,
			"status":     part.Status,
			"updated_at": part.UpdatedAt,
		})
	if err := affected(result); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update part: %w", err)
	}
	return nil
}

// Delete 删除部
func (r *PartRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.PartRepository.Delete")
	defer span.End()

	if err := affected(getDB(ctx, r.client.db).Delete(&entity.Part{}, "id = ?", id)); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete part: %w", err)
	}
	return nil
}

// ListByProject 获取项目的部列表
func (r *PartRepository) ListByProject(ctx context.Context, projectID string) ([]*entity.Part, error) {
	ctx, span := tracer.Start(ctx, "postgres.PartRepository.ListByProject")
	defer span.End()

	var parts []*entity.Part
	if err := getDB(ctx, r.client.db).
		Where("project_id = ?", projectID).
		Order("order_index ASC").
		Find(&parts).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list parts: %w", err)
	}
	return parts, nil
}

// MaxOrderIndex 获取项目下最大排序号
func (r *PartRepository) MaxOrderIndex(ctx context.Context, projectID string) (*int, error) {
	ctx, span := tracer.Start(ctx, "postgres.PartRepository.MaxOrderIndex")
	defer span.End()

	max, err := maxOrderIndex(getDB(ctx, r.client.db), &entity.Part{}, "project_id", projectID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get max part order index: %w", err)
	}
	return max, nil
}
