package context

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghostwriter-api/internal/domain/entity"
	"ghostwriter-api/internal/infrastructure/persistence/memory"
	apperrors "ghostwriter-api/pkg/errors"
)

type fixture struct {
	store     *memory.Store
	assembler *Assembler
	project   *entity.Project
	chapter   *entity.Chapter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()

	project := entity.NewProject("Romance", nil)
	require.NoError(t, s.Projects().Create(ctx, project))
	part := entity.NewPart(project.ID, "Parte I", 0)
	require.NoError(t, s.Parts().Create(ctx, part))
	chapter := entity.NewChapter(part.ID, "Capítulo 1", 0)
	require.NoError(t, s.Chapters().Create(ctx, chapter))

	return &fixture{
		store:     s,
		assembler: NewAssembler(s.Chapters(), s.ProjectDocuments(), s.ChapterDocuments(), s.Paragraphs()),
		project:   project,
		chapter:   chapter,
	}
}

func TestAssemble_EmptyChapter(t *testing.T) {
	f := newFixture(t)

	gc, err := f.assembler.Assemble(context.Background(), f.chapter.ID)
	require.NoError(t, err)

	assert.Equal(t, f.project.ID, gc.ProjectID)
	assert.Equal(t, "", gc.ApprovedContent)
	assert.Equal(t, "DOCUMENTOS DO PROJETO:\n\n\nDOCUMENTOS DO CAPÍTULO:\n", gc.SystemContext())
}

func TestAssemble_DocumentsAndApprovedOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	older := entity.NewProjectDocument(f.project.ID, "personagens.md", "Ana")
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := entity.NewProjectDocument(f.project.ID, "mundo.md", "Lisboa")
	require.NoError(t, f.store.ProjectDocuments().Create(ctx, newer))
	require.NoError(t, f.store.ProjectDocuments().Create(ctx, older))
	require.NoError(t, f.store.ChapterDocuments().Create(ctx, entity.NewChapterDocument(f.chapter.ID, "notas", "chuva")))

	now := time.Now()
	require.NoError(t, f.store.Paragraphs().CreateBatch(ctx, []*entity.Paragraph{
		entity.NewParagraph(f.chapter.ID, "B", 1, &now),
		entity.NewParagraph(f.chapter.ID, "pendente", 2, nil),
		entity.NewParagraph(f.chapter.ID, "A", 0, &now),
	}))

	gc, err := f.assembler.Assemble(ctx, f.chapter.ID)
	require.NoError(t, err)

	assert.Equal(t, "A\n\nB", gc.ApprovedContent)
	assert.Equal(t,
		"DOCUMENTOS DO PROJETO:\n--- personagens.md ---\nAna\n\n--- mundo.md ---\nLisboa\n\nDOCUMENTOS DO CAPÍTULO:\n--- notas ---\nchuva",
		gc.SystemContext())

	projectContext, err := f.assembler.LoadProjectContext(ctx, f.chapter.ID)
	require.NoError(t, err)
	assert.Equal(t, "--- personagens.md ---\nAna\n\n--- mundo.md ---\nLisboa", projectContext)

	approved, err := f.assembler.LoadApprovedContent(ctx, f.chapter.ID)
	require.NoError(t, err)
	assert.Equal(t, "A\n\nB", approved)
}

func TestAssemble_TokenEstimateGrowsWithInstruction(t *testing.T) {
	f := newFixture(t)

	gc, err := f.assembler.Assemble(context.Background(), f.chapter.ID)
	require.NoError(t, err)

	assert.LessOrEqual(t, gc.TokenEstimate(""), gc.TokenEstimate("escreva mais"))
}

func TestAssemble_MissingChapter(t *testing.T) {
	f := newFixture(t)

	_, err := f.assembler.Assemble(context.Background(), "missing")
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeContextLoadFailed, appErr.Code)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
}

func TestAssemble_RepositoryFailure(t *testing.T) {
	f := newFixture(t)
	f.store.FailNext(errors.New("connection reset"))

	_, err := f.assembler.Assemble(context.Background(), f.chapter.ID)
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeContextLoadFailed, appErr.Code)
	assert.ErrorContains(t, err, "connection reset")
}

func TestLoadApprovedContent_Failure(t *testing.T) {
	f := newFixture(t)
	f.store.FailNext(errors.New("timeout"))

	_, err := f.assembler.LoadApprovedContent(context.Background(), f.chapter.ID)
	assert.Equal(t, apperrors.CodeContextLoadFailed, apperrors.AsAppError(err).Code)
}
