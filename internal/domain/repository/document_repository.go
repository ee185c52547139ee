package repository

import (
	"context"

	"ghostwriter-api/internal/domain/entity"
)

// ProjectDocumentRepository 项目文档仓储接口
type ProjectDocumentRepository interface {
	Create(ctx context.Context, doc *entity.ProjectDocument) error
	GetByID(ctx context.Context, id string) (*entity.ProjectDocument, error)
	Delete(ctx context.Context, id string) error

	// ListByProject 按创建时间升序
	ListByProject(ctx context.Context, projectID string) ([]*entity.ProjectDocument, error)
}

// ChapterDocumentRepository 章节文档仓储接口
type ChapterDocumentRepository interface {
	Create(ctx context.Context, doc *entity.ChapterDocument) error
	GetByID(ctx context.Context, id string) (*entity.ChapterDocument, error)
	Delete(ctx context.Context, id string) error

	// ListByChapter 按创建时间升序
	ListByChapter(ctx context.Context, chapterID string) ([]*entity.ChapterDocument, error)
}
