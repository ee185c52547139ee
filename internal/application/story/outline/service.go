// Package outline 管理项目下的部、章节与章节文档
package outline

import (
	"context"
	"errors"
	"strings"

	storycontext "ghostwriter-api/internal/application/story/context"
	"ghostwriter-api/internal/application/story/storyutil"
	"ghostwriter-api/internal/domain/entity"
	"ghostwriter-api/internal/domain/repository"
	apperrors "ghostwriter-api/pkg/errors"
)

// Patch 部/章节的部分更新，nil 字段保持不变
type Patch struct {
	Name   *string
	Status *string
}

// ChapterDetail 章节详情聚合
type ChapterDetail struct {
	Chapter          *entity.Chapter
	ProjectID        string
	Documents        []*entity.ChapterDocument
	Paragraphs       []*entity.Paragraph
	ProjectDocuments []*entity.ProjectDocument
	// TokenEstimate 以当前上下文发起生成时的估算值
	TokenEstimate int
}

// ChapterText 已审核正文
type ChapterText struct {
	ChapterID     string
	Content       string
	TokenEstimate int
}

// Service 大纲服务
type Service struct {
	tx             repository.Transactor
	projectRepo    repository.ProjectRepository
	partRepo       repository.PartRepository
	chapterRepo    repository.ChapterRepository
	chapterDocRepo repository.ChapterDocumentRepository
	paragraphRepo  repository.ParagraphRepository
	assembler      *storycontext.Assembler
}

// NewService 创建大纲服务
func NewService(
	tx repository.Transactor,
	projectRepo repository.ProjectRepository,
	partRepo repository.PartRepository,
	chapterRepo repository.ChapterRepository,
	chapterDocRepo repository.ChapterDocumentRepository,
	paragraphRepo repository.ParagraphRepository,
	assembler *storycontext.Assembler,
) *Service {
	return &Service{
		tx:             tx,
		projectRepo:    projectRepo,
		partRepo:       partRepo,
		chapterRepo:    chapterRepo,
		chapterDocRepo: chapterDocRepo,
		paragraphRepo:  paragraphRepo,
		assembler:      assembler,
	}
}

// ListParts 项目下的部，各自附带按排序号升序的章节
func (s *Service) ListParts(ctx context.Context, projectID string) ([]*entity.Part, error) {
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}

	parts, err := s.partRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, dbError(err, "failed to list parts")
	}
	if len(parts) == 0 {
		return parts, nil
	}

	ids := make([]string, len(parts))
	byID := make(map[string]*entity.Part, len(parts))
	for i, p := range parts {
		ids[i] = p.ID
		p.Chapters = []*entity.Chapter{}
		byID[p.ID] = p
	}
	chapters, err := s.chapterRepo.ListByParts(ctx, ids)
	if err != nil {
		return nil, dbError(err, "failed to list chapters")
	}
	for _, c := range chapters {
		if p, ok := byID[c.PartID]; ok {
			p.Chapters = append(p.Chapters, c)
		}
	}
	return parts, nil
}

// CreatePart 在项目末尾追加一部
func (s *Service) CreatePart(ctx context.Context, projectID, name string) (*entity.Part, error) {
	name, err := requireName(name)
	if err != nil {
		return nil, err
	}
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}

	var part *entity.Part
	err = storyutil.WithOrderIndexRetry(ctx, s.tx, func(ctx context.Context) error {
		max, err := s.partRepo.MaxOrderIndex(ctx, projectID)
		if err != nil {
			return err
		}
		p := entity.NewPart(projectID, name, entity.NextOrderIndex(max))
		if err := s.partRepo.Create(ctx, p); err != nil {
			return err
		}
		part = p
		return nil
	})
	if err != nil {
		return nil, dbError(err, "failed to create part")
	}
	return part, nil
}

// UpdatePart 部分更新部的名称与状态
func (s *Service) UpdatePart(ctx context.Context, id string, patch Patch) (*entity.Part, error) {
	part, err := s.partRepo.GetByID(ctx, id)
	if err != nil {
		return nil, dbError(err, "failed to get part")
	}
	if part == nil {
		return nil, apperrors.ErrPartNotFound
	}
	if err := applyPatch(patch, &part.Name, &part.Status); err != nil {
		return nil, err
	}
	if err := s.partRepo.Update(ctx, part); err != nil {
		return nil, notFoundOr(err, apperrors.ErrPartNotFound, "failed to update part")
	}
	return part, nil
}

// DeletePart 删除部及其章节
func (s *Service) DeletePart(ctx context.Context, id string) error {
	if err := s.partRepo.Delete(ctx, id); err != nil {
		return notFoundOr(err, apperrors.ErrPartNotFound, "failed to delete part")
	}
	return nil
}

// ListChapters 部下章节，按排序号升序
func (s *Service) ListChapters(ctx context.Context, partID string) ([]*entity.Chapter, error) {
	if err := s.requirePart(ctx, partID); err != nil {
		return nil, err
	}
	chapters, err := s.chapterRepo.ListByPart(ctx, partID)
	if err != nil {
		return nil, dbError(err, "failed to list chapters")
	}
	return chapters, nil
}

// CreateChapter 在部末尾追加章节
func (s *Service) CreateChapter(ctx context.Context, partID, name string) (*entity.Chapter, error) {
	name, err := requireName(name)
	if err != nil {
		return nil, err
	}
	if err := s.requirePart(ctx, partID); err != nil {
		return nil, err
	}

	var chapter *entity.Chapter
	err = storyutil.WithOrderIndexRetry(ctx, s.tx, func(ctx context.Context) error {
		max, err := s.chapterRepo.MaxOrderIndex(ctx, partID)
		if err != nil {
			return err
		}
		c := entity.NewChapter(partID, name, entity.NextOrderIndex(max))
		if err := s.chapterRepo.Create(ctx, c); err != nil {
			return err
		}
		chapter = c
		return nil
	})
	if err != nil {
		return nil, dbError(err, "failed to create chapter")
	}
	return chapter, nil
}

// UpdateChapter 部分更新章节的名称与状态
func (s *Service) UpdateChapter(ctx context.Context, id string, patch Patch) (*entity.Chapter, error) {
	chapter, err := s.getChapter(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyPatch(patch, &chapter.Name, &chapter.Status); err != nil {
		return nil, err
	}
	if err := s.chapterRepo.Update(ctx, chapter); err != nil {
		return nil, notFoundOr(err, apperrors.ErrChapterNotFound, "failed to update chapter")
	}
	return chapter, nil
}

// DeleteChapter 删除章节及其段落与文档
func (s *Service) DeleteChapter(ctx context.Context, id string) error {
	if err := s.chapterRepo.Delete(ctx, id); err != nil {
		return notFoundOr(err, apperrors.ErrChapterNotFound, "failed to delete chapter")
	}
	return nil
}

// GetChapterDetail 章节、文档、全部段落与所属项目文档
func (s *Service) GetChapterDetail(ctx context.Context, id string) (*ChapterDetail, error) {
	if _, err := s.getChapter(ctx, id); err != nil {
		return nil, err
	}

	gc, err := s.assembler.Assemble(ctx, id)
	if err != nil {
		return nil, err
	}
	paragraphs, err := s.paragraphRepo.ListByChapter(ctx, id)
	if err != nil {
		return nil, dbError(err, "failed to list paragraphs")
	}

	return &ChapterDetail{
		Chapter:          gc.Chapter,
		ProjectID:        gc.ProjectID,
		Documents:        gc.ChapterDocuments,
		Paragraphs:       paragraphs,
		ProjectDocuments: gc.ProjectDocuments,
		TokenEstimate:    gc.TokenEstimate(""),
	}, nil
}

// GetChapterText 章节已审核正文
func (s *Service) GetChapterText(ctx context.Context, id string) (*ChapterText, error) {
	if _, err := s.getChapter(ctx, id); err != nil {
		return nil, err
	}
	gc, err := s.assembler.Assemble(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ChapterText{
		ChapterID:     id,
		Content:       gc.ApprovedContent,
		TokenEstimate: gc.TokenEstimate(""),
	}, nil
}

// ListChapterDocuments 章节文档，按创建时间升序
func (s *Service) ListChapterDocuments(ctx context.Context, chapterID string) ([]*entity.ChapterDocument, error) {
	if _, err := s.getChapter(ctx, chapterID); err != nil {
		return nil, err
	}
	docs, err := s.chapterDocRepo.ListByChapter(ctx, chapterID)
	if err != nil {
		return nil, dbError(err, "failed to list chapter documents")
	}
	return docs, nil
}

// CreateChapterDocument 添加章节文档
func (s *Service) CreateChapterDocument(ctx context.Context, chapterID, filename, content string) (*entity.ChapterDocument, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "filename is required")
	}
	if _, err := s.getChapter(ctx, chapterID); err != nil {
		return nil, err
	}
	doc := entity.NewChapterDocument(chapterID, filename, content)
	if err := s.chapterDocRepo.Create(ctx, doc); err != nil {
		return nil, dbError(err, "failed to create chapter document")
	}
	return doc, nil
}

// DeleteChapterDocument 删除属于该章节的文档
func (s *Service) DeleteChapterDocument(ctx context.Context, chapterID, docID string) error {
	doc, err := s.chapterDocRepo.GetByID(ctx, docID)
	if err != nil {
		return dbError(err, "failed to get chapter document")
	}
	if doc == nil || doc.ChapterID != chapterID {
		return apperrors.ErrDocumentNotFound
	}
	if err := s.chapterDocRepo.Delete(ctx, docID); err != nil {
		return notFoundOr(err, apperrors.ErrDocumentNotFound, "failed to delete chapter document")
	}
	return nil
}

func (s *Service) requireProject(ctx context.Context, id string) error {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return dbError(err, "failed to get project")
	}
	if project == nil {
		return apperrors.ErrProjectNotFound
	}
	return nil
}

func (s *Service) requirePart(ctx context.Context, id string) error {
	part, err := s.partRepo.GetByID(ctx, id)
	if err != nil {
		return dbError(err, "failed to get part")
	}
	if part == nil {
		return apperrors.ErrPartNotFound
	}
	return nil
}

func (s *Service) getChapter(ctx context.Context, id string) (*entity.Chapter, error) {
	chapter, err := s.chapterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, dbError(err, "failed to get chapter")
	}
	if chapter == nil {
		return nil, apperrors.ErrChapterNotFound
	}
	return chapter, nil
}

func requireName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.New(apperrors.CodeInvalidParam, "name is required")
	}
	return name, nil
}

func applyPatch(patch Patch, name *string, status *entity.WorkStatus) error {
	if patch.Name != nil {
		n, err := requireName(*patch.Name)
		if err != nil {
			return err
		}
		*name = n
	}
	if patch.Status != nil {
		st := entity.WorkStatus(*patch.Status)
		if !st.IsValid() {
			return apperrors.New(apperrors.CodeValidationFailed, "invalid status").
				WithDetail("status must be one of draft, in_progress, review, done")
		}
		*status = st
	}
	return nil
}

func notFoundOr(err error, notFound *apperrors.AppError, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return dbError(err, msg)
}

func dbError(err error, msg string) error {
	if errors.Is(err, repository.ErrOrderIndexConflict) {
		return apperrors.Wrap(err, apperrors.CodeConflict, msg)
	}
	return apperrors.Wrap(err, apperrors.CodeDatabaseError, msg)
}
