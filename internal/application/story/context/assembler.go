// Package context 组装段落生成所需的上下文
package context

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"ghostwriter-api/internal/domain/entity"
	"ghostwriter-api/internal/domain/repository"
	"ghostwriter-api/internal/workflow/node"
	apperrors "ghostwriter-api/pkg/errors"
	"ghostwriter-api/pkg/tracer"
)

const documentSeparator = "\n\n"

// GenerationContext 一次生成请求的上下文快照
type GenerationContext struct {
	ProjectID        string
	Chapter          *entity.Chapter
	ProjectDocuments []*entity.ProjectDocument
	ChapterDocuments []*entity.ChapterDocument
	// ApprovedContent 已审核段落按排序号拼接
	ApprovedContent string
}

// ProjectContext 项目文档文本块
func (g *GenerationContext) ProjectContext() string {
	return joinProjectDocuments(g.ProjectDocuments)
}

// ChapterContext 章节文档文本块
func (g *GenerationContext) ChapterContext() string {
	blocks := make([]string, len(g.ChapterDocuments))
	for i, d := range g.ChapterDocuments {
		blocks[i] = entity.DocumentBlock(d.Filename, d.Content)
	}
	return strings.Join(blocks, documentSeparator)
}

// SystemContext 作为 PROJECT_CONTEXT 注入模板的系统上下文
func (g *GenerationContext) SystemContext() string {
	return fmt.Sprintf("DOCUMENTOS DO PROJETO:\n%s\n\nDOCUMENTOS DO CAPÍTULO:\n%s", g.ProjectContext(), g.ChapterContext())
}

// TokenEstimate 估算系统上下文、已审核正文与指令的 token 数
func (g *GenerationContext) TokenEstimate(instruction string) int {
	return node.EstimateTokens(g.SystemContext() + g.ApprovedContent + instruction)
}

// Assembler 从仓储读取文档与已审核段落
type Assembler struct {
	chapterRepo    repository.ChapterRepository
	projectDocRepo repository.ProjectDocumentRepository
	chapterDocRepo repository.ChapterDocumentRepository
	paragraphRepo  repository.ParagraphRepository
}

// NewAssembler 创建上下文组装器
func NewAssembler(
	chapterRepo repository.ChapterRepository,
	projectDocRepo repository.ProjectDocumentRepository,
	chapterDocRepo repository.ChapterDocumentRepository,
	paragraphRepo repository.ParagraphRepository,
) *Assembler {
	return &Assembler{
		chapterRepo:    chapterRepo,
		projectDocRepo: projectDocRepo,
		chapterDocRepo: chapterDocRepo,
		paragraphRepo:  paragraphRepo,
	}
}

// LoadProjectContext 章节所属项目的文档，按创建时间升序拼接
func (a *Assembler) LoadProjectContext(ctx context.Context, chapterID string) (string, error) {
	ctx, span := tracer.Start(ctx, "context.LoadProjectContext")
	defer span.End()

	projectID, err := a.projectIDOf(ctx, chapterID)
	if err != nil {
		return "", tracer.Fail(span, err)
	}
	docs, err := a.projectDocRepo.ListByProject(ctx, projectID)
	if err != nil {
		return "", tracer.Fail(span, apperrors.ContextLoadFailure(err))
	}
	return joinProjectDocuments(docs), nil
}

// LoadApprovedContent 已审核段落按排序号拼接，待审段落一律排除
func (a *Assembler) LoadApprovedContent(ctx context.Context, chapterID string) (string, error) {
	ctx, span := tracer.Start(ctx, "context.LoadApprovedContent")
	defer span.End()

	paragraphs, err := a.paragraphRepo.ListApprovedByChapter(ctx, chapterID)
	if err != nil {
		return "", tracer.Fail(span, apperrors.ContextLoadFailure(err))
	}
	return entity.JoinApproved(paragraphs), nil
}

// Assemble 一次性加载章节、项目文档、章节文档与已审核正文
func (a *Assembler) Assemble(ctx context.Context, chapterID string) (*GenerationContext, error) {
	ctx, span := tracer.Start(ctx, "context.Assemble")
	defer span.End()

	chapter, err := a.chapterRepo.GetByID(ctx, chapterID)
	if err != nil {
		return nil, tracer.Fail(span, apperrors.ContextLoadFailure(err))
	}
	if chapter == nil {
		return nil, tracer.Fail(span, chapterMissing(chapterID))
	}

	projectID, err := a.projectIDOf(ctx, chapterID)
	if err != nil {
		return nil, tracer.Fail(span, err)
	}

	projectDocs, err := a.projectDocRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, tracer.Fail(span, apperrors.ContextLoadFailure(err))
	}
	chapterDocs, err := a.chapterDocRepo.ListByChapter(ctx, chapterID)
	if err != nil {
		return nil, tracer.Fail(span, apperrors.ContextLoadFailure(err))
	}
	approved, err := a.LoadApprovedContent(ctx, chapterID)
	if err != nil {
		return nil, tracer.Fail(span, err)
	}

	return &GenerationContext{
		ProjectID:        projectID,
		Chapter:          chapter,
		ProjectDocuments: projectDocs,
		ChapterDocuments: chapterDocs,
		ApprovedContent:  approved,
	}, nil
}

func (a *Assembler) projectIDOf(ctx context.Context, chapterID string) (string, error) {
	projectID, err := a.chapterRepo.GetProjectID(ctx, chapterID)
	if err != nil {
		return "", apperrors.ContextLoadFailure(err)
	}
	if projectID == "" {
		return "", chapterMissing(chapterID)
	}
	return projectID, nil
}

func chapterMissing(chapterID string) error {
	return apperrors.ContextLoadFailure(fmt.Errorf("chapter %s not found", chapterID)).WithStatus(http.StatusNotFound)
}

func joinProjectDocuments(docs []*entity.ProjectDocument) string {
	blocks := make([]string, len(docs))
	for i, d := range docs {
		blocks[i] = entity.DocumentBlock(d.Filename, d.Content)
	}
	return strings.Join(blocks, documentSeparator)
}
