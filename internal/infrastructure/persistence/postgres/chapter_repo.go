package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"ghostwriter-api/internal/domain/entity"
)

// ChapterRepository 章节仓储实现
type ChapterRepository struct {
	client *Client
}

// NewChapterRepository 创建章节仓储
func NewChapterRepository(client *Client) *ChapterRepository {
	return &ChapterRepository{client: client}
}

// Create 创建章节
func (r *ChapterRepository) Create(ctx context.Context, chapter *entity.Chapter) error {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.Create")
	defer span.End()

	if err := getDB(ctx, r.client.db).Omit("Part").Create(chapter).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create chapter: %w", translateInsertErr(err))
	}
	return nil
}

// GetByID 根据 ID 获取章节
func (r *ChapterRepository) GetByID(ctx context.Context, id string) (*entity.Chapter, error) {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.GetByID")
	defer span.End()

	var chapter entity.Chapter
	if err := getDB(ctx, r.client.db).First(&chapter, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get chapter: %w", err)
	}
	return &chapter, nil
}

// Update 更新章节名称与状态
func (r *ChapterRepository) Update(ctx context.Context, chapter *entity.Chapter) error {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.Update")
	defer span.End()

	chapter.UpdatedAt = time.Now()
	result := getDB(ctx, r.client.db).Model(&entity.Chapter{}).
		Where("id = ?", chapter.ID).
		Updates(map[string]any{
			"name":       chapter.Name,
			"status":     chapter.Status,
			"updated_at": chapter.UpdatedAt,
		})
	if err := affected(result); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update chapter: %w", err)
	}
	return nil
}

// Delete 删除章节
func (r *ChapterRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.Delete")
	defer span.End()

	if err := affected(getDB(ctx, r.client.db).Delete(&entity.Chapter{}, "id = ?", id)); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete chapter: %w", err)
	}
	return nil
}

// ListByPart 获取部的章节列表
func (r *ChapterRepository) ListByPart(ctx context.Context, partID string) ([]*entity.Chapter, error) {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.ListByPart")
	defer span.End()

	var chapters []*entity.Chapter
	if err := getDB(ctx, r.client.db).
		Where("part_id = ?", partID).
		Order("order_index ASC").
		Find(&chapters).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list chapters by part: %w", err)
	}
	return chapters, nil
}

// ListByParts 批量获取章节
func (r *ChapterRepository) ListByParts(ctx context.Context, partIDs []string) ([]*entity.Chapter, error) {
	if len(partIDs) == 0 {
		return nil, nil
	}

	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.ListByParts")
	defer span.End()

	var chapters []*entity.Chapter
	if err := getDB(ctx, r.client.db).
		Where("part_id IN ?", partIDs).
		Order("part_id, order_index ASC").
		Find(&chapters).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list chapters by parts: %w", err)
	}
	return chapters, nil
}

// MaxOrderIndex 获取部下最大排序号
func (r *ChapterRepository) MaxOrderIndex(ctx context.Context, partID string) (*int, error) {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.MaxOrderIndex")
	defer span.End()

	max, err := maxOrderIndex(getDB(ctx, r.client.db), &entity.Chapter{}, "part_id", partID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get max chapter order index: %w", err)
	}
	return max, nil
}

// GetProjectID 解析章节所属项目
func (r *ChapterRepository) GetProjectID(ctx context.Context, chapterID string) (string, error) {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.GetProjectID")
	defer span.End()

	var projectID string
	row := getDB(ctx, r.client.db).
		Table("chapters").
		Select("parts.project_id").
		Joins("JOIN parts ON parts.id = chapters.part_id").
		Where("chapters.id = ?", chapterID).
		Row()
	if err := row.Scan(&projectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		span.RecordError(err)
		return "", fmt.Errorf("failed to resolve chapter project: %w", err)
	}
	return projectID, nil
}
