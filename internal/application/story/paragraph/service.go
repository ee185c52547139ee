package paragraph

import (
	"context"
	"errors"
	"fmt"
	"time"

	storycontext "ghostwriter-api/internal/application/story/context"
	"ghostwriter-api/internal/application/story/storyutil"
	"ghostwriter-api/internal/domain/entity"
	"ghostwriter-api/internal/domain/repository"
	wfmodel "ghostwriter-api/internal/workflow/model"
	apperrors "ghostwriter-api/pkg/errors"
	"ghostwriter-api/pkg/logger"
)

// SettingsReader 读取生效中的全局设置
type SettingsReader interface {
	Get(ctx context.Context) (*entity.Settings, error)
}

// GenerateResult 生成接口返回内容
type GenerateResult struct {
	Paragraphs    []string
	Explanation   string
	TokenEstimate int
	MaxTokens     int
}

// Service 段落生成、追加与审核
type Service struct {
	tx            repository.Transactor
	chapterRepo   repository.ChapterRepository
	paragraphRepo repository.ParagraphRepository
	assembler     *storycontext.Assembler
	generator     *Generator
	settings      SettingsReader
	now           func() time.Time
}

// NewService 创建段落服务
func NewService(
	tx repository.Transactor,
	chapterRepo repository.ChapterRepository,
	paragraphRepo repository.ParagraphRepository,
	assembler *storycontext.Assembler,
	generator *Generator,
	settings SettingsReader,
) *Service {
	return &Service{
		tx:            tx,
		chapterRepo:   chapterRepo,
		paragraphRepo: paragraphRepo,
		assembler:     assembler,
		generator:     generator,
		settings:      settings,
		now:           time.Now,
	}
}

// Generate 组装上下文并生成候选段落，结果不落库
func (s *Service) Generate(ctx context.Context, chapterID, instruction string) (*GenerateResult, error) {
	ctx = logger.WithContext(ctx, logger.ChapterIDKey, chapterID)

	gc, err := s.assembler.Assemble(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	ctx = logger.WithContext(ctx, logger.ProjectIDKey, gc.ProjectID)

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, apperrors.ContextLoadFailure(err)
	}

	out, err := s.generator.Generate(ctx, &wfmodel.ParagraphGenerateInput{
		ProjectContext: gc.SystemContext(),
		ChapterContent: gc.ApprovedContent,
		Instruction:    instruction,
		Template:       settings.Template(),
	})
	if err != nil {
		logger.Error(ctx, "paragraph generation failed", err,
			"instruction", storyutil.TruncateByRunes(instruction, 80))
		return nil, err
	}

	logger.Info(ctx, "paragraphs generated",
		"count", len(out.Paragraphs),
		"format", out.Format,
		"prompt_tokens", out.Meta.PromptTokens,
		"completion_tokens", out.Meta.CompletionTokens)

	return &GenerateResult{
		Paragraphs:    out.Paragraphs,
		Explanation:   out.Explanation,
		TokenEstimate: gc.TokenEstimate(instruction),
		MaxTokens:     s.generator.factory.Describe("").ContextWindow,
	}, nil
}

// Append 以连续排序号追加段落，pending 为 false 时立即审核通过
func (s *Service) Append(ctx context.Context, chapterID string, contents []string, pending bool) ([]*entity.Paragraph, error) {
	contents = storyutil.TrimNonEmpty(contents)
	if len(contents) == 0 {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "paragraphs must not be empty")
	}

	chapter, err := s.chapterRepo.GetByID(ctx, chapterID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to get chapter")
	}
	if chapter == nil {
		return nil, apperrors.ErrChapterNotFound
	}

	var created []*entity.Paragraph
	err = storyutil.WithOrderIndexRetry(ctx, s.tx, func(ctx context.Context) error {
		max, err := s.paragraphRepo.MaxOrderIndex(ctx, chapterID)
		if err != nil {
			return err
		}
		next := entity.NextOrderIndex(max)

		var approvedAt *time.Time
		if !pending {
			now := s.now()
			approvedAt = &now
		}
		batch := make([]*entity.Paragraph, len(contents))
		for i, content := range contents {
			batch[i] = entity.NewParagraph(chapterID, content, next+i, approvedAt)
		}
		if err := s.paragraphRepo.CreateBatch(ctx, batch); err != nil {
			return err
		}
		created = batch
		return nil
	})
	if err != nil {
		return nil, dbError(err, "failed to append paragraphs")
	}
	return created, nil
}

// Update 修改段落内容，审核状态不变
func (s *Service) Update(ctx context.Context, id, content string) (*entity.Paragraph, error) {
	p, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Content = content
	if err := s.paragraphRepo.Update(ctx, p); err != nil {
		return nil, dbError(err, "failed to update paragraph")
	}
	return p, nil
}

// Approve 标记段落审核通过，已审核的段落保持原审核时间
func (s *Service) Approve(ctx context.Context, id string) (*entity.Paragraph, error) {
	p, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsApproved() {
		return p, nil
	}
	p.Approve(s.now())
	if err := s.paragraphRepo.Update(ctx, p); err != nil {
		return nil, dbError(err, "failed to approve paragraph")
	}
	return p, nil
}

// Delete 删除段落，排序号不回收
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.paragraphRepo.Delete(ctx, id); err != nil {
		return dbError(err, "failed to delete paragraph")
	}
	return nil
}

func (s *Service) get(ctx context.Context, id string) (*entity.Paragraph, error) {
	p, err := s.paragraphRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to get paragraph")
	}
	if p == nil {
		return nil, apperrors.ErrParagraphNotFound
	}
	return p, nil
}

func dbError(err error, msg string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.ErrParagraphNotFound
	case errors.Is(err, repository.ErrOrderIndexConflict):
		return apperrors.Wrap(err, apperrors.CodeConflict, fmt.Sprintf("%s: concurrent append", msg))
	default:
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, msg)
	}
}
