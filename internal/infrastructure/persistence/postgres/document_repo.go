package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ghostwriter-api/internal/domain/entity"
)

// ProjectDocumentRepository 项目文档仓储实现
type ProjectDocumentRepository struct {
	client *Client
}

// NewProjectDocumentRepository 创建项目文档仓储
func NewProjectDocumentRepository(client *Client) *ProjectDocumentRepository {
	return &ProjectDocumentRepository{client: client}
}

// Create 创建项目文档
func (r *ProjectDocumentRepository) Create(ctx context.Context, doc *entity.ProjectDocument) error {
	ctx, span := tracer.Start(ctx, "postgres.ProjectDocumentRepository.Create")
	defer span.End()

	if err := getDB(ctx, r.client.db).Create(doc).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create project document: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取项目文档
func (r *ProjectDocumentRepository) GetByID(ctx context.Context, id string) (*entity.ProjectDocument, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProjectDocumentRepository.GetByID")
	defer span.End()

	var doc entity.ProjectDocument
	if err := getDB(ctx, r.client.db).First(&doc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get project document: %w", err)
	}
	return &doc, nil
}

// Delete 删除项目文档
func (r *ProjectDocumentRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.ProjectDocumentRepository.Delete")
	defer span.End()

	if err := affected(getDB(ctx, r.client.db).Delete(&entity.ProjectDocument{}, "id = ?", id)); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete project document: %w", err)
	}
	return nil
}

// ListByProject 获取项目文档列表
func (r *ProjectDocumentRepository) ListByProject(ctx context.Context, projectID string) ([]*entity.ProjectDocument, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProjectDocumentRepository.ListByProject")
	defer span.End()

	var docs []*entity.ProjectDocument
	if err := getDB(ctx, r.client.db).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&docs).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list project documents: %w", err)
	}
	return docs, nil
}

// ChapterDocumentRepository 章节文档仓储实现
type ChapterDocumentRepository struct {
	client *Client
}

// NewChapterDocumentRepository 创建章节文档仓储
func NewChapterDocumentRepository(client *Client) *ChapterDocumentRepository {
	return &ChapterDocumentRepository{client: client}
}

// Create 创建章节文档
func (r *ChapterDocumentRepository) Create(ctx context.Context, doc *entity.ChapterDocument) error {
	ctx, span := tracer.Start(ctx, "postgres.ChapterDocumentRepository.Create")
	defer span.End()

	if err := getDB(ctx, r.client.db).Create(doc).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create chapter document: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取章节文档
func (r *ChapterDocumentRepository) GetByID(ctx context.Context, id string) (*entity.ChapterDocument, error) {
	ctx, span := tracer.Start(ctx, "postgres.ChapterDocumentRepository.GetByID")
	defer span.End()

	var doc entity.ChapterDocument
	if err := getDB(ctx, r.client.db).First(&doc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get chapter document: %w", err)
	}
	return &doc, nil
}

// Delete 删除章节文档
func (r *ChapterDocumentRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.ChapterDocumentRepository.Delete")
	defer span.End()

	if err := affected(getDB(ctx, r.client.db).Delete(&entity.ChapterDocument{}, "id = ?", id)); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete chapter document: %w", err)
	}
	return nil
}

// ListByChapter 获取章节文档列表
func (r *ChapterDocumentRepository) ListByChapter(ctx context.Context, chapterID string) ([]*entity.ChapterDocument, error) {
	ctx, span := tracer.Start(ctx, "postgres.ChapterDocumentRepository.ListByChapter")
	defer span.End()

	var docs []*entity.ChapterDocument
	if err := getDB(ctx, r.client.db).
		Where("chapter_id = ?", chapterID).
		Order("created_at ASC").
		Find(&docs).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list chapter documents: %w", err)
	}
	return docs, nil
}
