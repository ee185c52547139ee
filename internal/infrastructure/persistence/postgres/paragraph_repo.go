package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"ghostwriter-api/internal/domain/entity"
)

// ParagraphRepository 段落仓储实现
type ParagraphRepository struct {
	client *Client
}

// NewParagraphRepository 创建段落仓储
func NewParagraphRepository(client *Client) *ParagraphRepository {
	return &ParagraphRepository{client: client}
}

// CreateBatch 批量插入段落
func (r *ParagraphRepository) CreateBatch(ctx context.Context, paragraphs []*entity.Paragraph) error {
	if len(paragraphs) == 0 {
		return nil
	}

	ctx, span := tracer.Start(ctx, "postgres.ParagraphRepository.CreateBatch")
	span.SetAttributes(attribute.Int("paragraph.count", len(paragraphs)))
	defer span.End()

	if err := getDB(ctx, r.client.db).Omit("Chapter").Create(&paragraphs).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create paragraphs: %w", translateInsertErr(err))
	}
	return nil
}

// GetByID 根据 ID 获取段落
func (r *ParagraphRepository) GetByID(ctx context.Context, id string) (*entity.Paragraph, error) {
	ctx, span := tracer.Start(ctx, "postgres.ParagraphRepository.GetByID")
	defer span.End()

	var paragraph entity.Paragraph
	if err := getDB(ctx, r.client.db).First(&paragraph, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get paragraph: %w", err)
	}
	return &paragraph, nil
}

// Update 更新段落内容与审核时间
func (r *ParagraphRepository) Update(ctx context.Context, paragraph *entity.Paragraph) error {
	ctx, span := tracer.Start(ctx, "postgres.ParagraphRepository.Update")
	defer span.End()

	paragraph.UpdatedAt = time.Now()
	result := getDB(ctx, r.client.db).Model(&entity.Paragraph{}).
		Where("id = ?", paragraph.ID).
		Updates(map[string]any{
			"content":     paragraph.Content,
			"approved_at": paragraph.ApprovedAt,
			"updated_at":  paragraph.UpdatedAt,
		})
	if err := affected(result); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update paragraph: %w", err)
	}
	return nil
}

// Delete 删除段落
func (r *ParagraphRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.ParagraphRepository.Delete")
	defer span.End()

	if err := affected(getDB(ctx, r.client.db).Delete(&entity.Paragraph{}, "id = ?", id)); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete paragraph: %w", err)
	}
	return nil
}

// ListByChapter 获取章节全部段落
func (r *ParagraphRepository) ListByChapter(ctx context.Context, chapterID string) ([]*entity.Paragraph, error) {
	ctx, span := tracer.Start(ctx, "postgres.ParagraphRepository.ListByChapter")
	defer span.End()

	var paragraphs []*entity.Paragraph
	if err := getDB(ctx, r.client.db).
		Where("chapter_id = ?", chapterID).
		Order("order_index ASC").
		Find(&paragraphs).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list paragraphs: %w", err)
	}
	return paragraphs, nil
}

// ListApprovedByChapter 获取章节已审核段落
func (r *ParagraphRepository) ListApprovedByChapter(ctx context.Context, chapterID string) ([]*entity.Paragraph, error) {
	ctx, span := tracer.Start(ctx, "postgres.ParagraphRepository.ListApprovedByChapter")
	defer span.End()

	var paragraphs []*entity.Paragraph
	if err := getDB(ctx, r.client.db).
		Where("chapter_id = ? AND approved_at IS NOT NULL", chapterID).
		Order("order_index ASC").
		Find(&paragraphs).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list approved paragraphs: %w", err)
	}
	return paragraphs, nil
}

// MaxOrderIndex 获取章节下最大排序号
func (r *ParagraphRepository) MaxOrderIndex(ctx context.Context, chapterID string) (*int, error) {
	ctx, span := tracer.Start(ctx, "postgres.ParagraphRepository.MaxOrderIndex")
	defer span.End()

	max, err := maxOrderIndex(getDB(ctx, r.client.db), &entity.Paragraph{}, "chapter_id", chapterID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get max paragraph order index: %w", err)
	}
	return max, nil
}
