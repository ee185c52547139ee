package outline

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storycontext "ghostwriter-api/internal/application/story/context"
	"ghostwriter-api/internal/domain/entity"
	"ghostwriter-api/internal/infrastructure/persistence/memory"
	apperrors "ghostwriter-api/pkg/errors"
)

func newService(t *testing.T) (*Service, *memory.Store, *entity.Project) {
	t.Helper()
	s := memory.NewStore()
	project := entity.NewProject("Saga", nil)
	require.NoError(t, s.Projects().Create(context.Background(), project))

	svc := NewService(s, s.Projects(), s.Parts(), s.Chapters(), s.ChapterDocuments(), s.Paragraphs(),
		storycontext.NewAssembler(s.Chapters(), s.ProjectDocuments(), s.ChapterDocuments(), s.Paragraphs()))
	return svc, s, project
}

func strPtr(s string) *string { return &s }

func TestCreatePart_OrderIndexNeverReused(t *testing.T) {
	svc, _, project := newService(t)
	ctx := context.Background()

	p0, err := svc.CreatePart(ctx, project.ID, "Um")
	require.NoError(t, err)
	p1, err := svc.CreatePart(ctx, project.ID, "Dois")
	require.NoError(t, err)
	assert.Equal(t, 0, p0.OrderIndex)
	assert.Equal(t, 1, p1.OrderIndex)
	assert.Equal(t, entity.WorkStatusDraft, p0.Status)

	require.NoError(t, svc.DeletePart(ctx, p0.ID))
	p2, err := svc.CreatePart(ctx, project.ID, "Três")
	require.NoError(t, err)
	assert.Equal(t, 2, p2.OrderIndex)
}

func TestCreateChapter_GapAfterDeleteMiddle(t *testing.T) {
	svc, _, project := newService(t)
	ctx := context.Background()

	part, err := svc.CreatePart(ctx, project.ID, "Parte")
	require.NoError(t, err)

	var chapters []*entity.Chapter
	for _, name := range []string{"A", "B", "C"} {
		c, err := svc.CreateChapter(ctx, part.ID, name)
		require.NoError(t, err)
		chapters = append(chapters, c)
	}
	assert.Equal(t, []int{0, 1, 2}, []int{chapters[0].OrderIndex, chapters[1].OrderIndex, chapters[2].OrderIndex})

	require.NoError(t, svc.DeleteChapter(ctx, chapters[1].ID))
	d, err := svc.CreateChapter(ctx, part.ID, "D")
	require.NoError(t, err)
	assert.Equal(t, 3, d.OrderIndex)
}

func TestCreatePart_Validation(t *testing.T) {
	svc, _, project := newService(t)

	_, err := svc.CreatePart(context.Background(), project.ID, "  ")
	assert.Equal(t, http.StatusBadRequest, apperrors.AsAppError(err).HTTPStatus)

	_, err = svc.CreatePart(context.Background(), "missing", "x")
	assert.Equal(t, apperrors.CodeProjectNotFound, apperrors.AsAppError(err).Code)
}

func TestListParts_WithChapters(t *testing.T) {
	svc, _, project := newService(t)
	ctx := context.Background()

	a, err := svc.CreatePart(ctx, project.ID, "A")
	require.NoError(t, err)
	b, err := svc.CreatePart(ctx, project.ID, "B")
	require.NoError(t, err)
	_, err = svc.CreateChapter(ctx, a.ID, "a1")
	require.NoError(t, err)
	_, err = svc.CreateChapter(ctx, a.ID, "a2")
	require.NoError(t, err)

	parts, err := svc.ListParts(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, a.ID, parts[0].ID)
	require.Len(t, parts[0].Chapters, 2)
	assert.Equal(t, "a1", parts[0].Chapters[0].Name)
	assert.Equal(t, 1, parts[0].Chapters[1].OrderIndex)
	assert.Equal(t, b.ID, parts[1].ID)
	assert.NotNil(t, parts[1].Chapters)
	assert.Empty(t, parts[1].Chapters)
}

func TestUpdateChapter_PartialAndStatusValidation(t *testing.T) {
	svc, _, project := newService(t)
	ctx := context.Background()

	part, err := svc.CreatePart(ctx, project.ID, "P")
	require.NoError(t, err)
	ch, err := svc.CreateChapter(ctx, part.ID, "velho")
	require.NoError(t, err)

	updated, err := svc.UpdateChapter(ctx, ch.ID, Patch{Status: strPtr("review")})
	require.NoError(t, err)
	assert.Equal(t, "velho", updated.Name)
	assert.Equal(t, entity.WorkStatusReview, updated.Status)

	_, err = svc.UpdateChapter(ctx, ch.ID, Patch{Status: strPtr("published")})
	assert.Equal(t, http.StatusBadRequest, apperrors.AsAppError(err).HTTPStatus)

	_, err = svc.UpdateChapter(ctx, "missing", Patch{Name: strPtr("x")})
	assert.Equal(t, apperrors.CodeChapterNotFound, apperrors.AsAppError(err).Code)

	updatedPart, err := svc.UpdatePart(ctx, part.ID, Patch{Name: strPtr("novo")})
	require.NoError(t, err)
	assert.Equal(t, "novo", updatedPart.Name)
	assert.Equal(t, entity.WorkStatusDraft, updatedPart.Status)
}

func TestGetChapterDetail(t *testing.T) {
	svc, s, project := newService(t)
	ctx := context.Background()

	part, err := svc.CreatePart(ctx, project.ID, "P")
	require.NoError(t, err)
	ch, err := svc.CreateChapter(ctx, part.ID, "C")
	require.NoError(t, err)

	require.NoError(t, s.ProjectDocuments().Create(ctx, entity.NewProjectDocument(project.ID, "bible.md", "mundo")))
	_, err = svc.CreateChapterDocument(ctx, ch.ID, "cena.md", "chuva")
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, s.Paragraphs().CreateBatch(ctx, []*entity.Paragraph{
		entity.NewParagraph(ch.ID, "segundo", 1, nil),
		entity.NewParagraph(ch.ID, "primeiro", 0, &now),
	}))

	detail, err := svc.GetChapterDetail(ctx, ch.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, detail.ProjectID)
	require.Len(t, detail.Paragraphs, 2)
	assert.Equal(t, "primeiro", detail.Paragraphs[0].Content)
	assert.Equal(t, "segundo", detail.Paragraphs[1].Content)
	require.Len(t, detail.Documents, 1)
	require.Len(t, detail.ProjectDocuments, 1)
	assert.Greater(t, detail.TokenEstimate, 0)

	text, err := svc.GetChapterText(ctx, ch.ID)
	require.NoError(t, err)
	assert.Equal(t, "primeiro", text.Content)

	_, err = svc.GetChapterDetail(ctx, "missing")
	assert.Equal(t, apperrors.CodeChapterNotFound, apperrors.AsAppError(err).Code)
}

func TestDeleteChapterDocument_ScopedToChapter(t *testing.T) {
	svc, _, project := newService(t)
	ctx := context.Background()

	part, err := svc.CreatePart(ctx, project.ID, "P")
	require.NoError(t, err)
	c1, err := svc.CreateChapter(ctx, part.ID, "1")
	require.NoError(t, err)
	c2, err := svc.CreateChapter(ctx, part.ID, "2")
	require.NoError(t, err)

	doc, err := svc.CreateChapterDocument(ctx, c1.ID, "notas", "x")
	require.NoError(t, err)

	err = svc.DeleteChapterDocument(ctx, c2.ID, doc.ID)
	assert.Equal(t, apperrors.CodeDocumentNotFound, apperrors.AsAppError(err).Code)

	require.NoError(t, svc.DeleteChapterDocument(ctx, c1.ID, doc.ID))
	docs, err := svc.ListChapterDocuments(ctx, c1.ID)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDeletePart_Cascades(t *testing.T) {
	svc, _, project := newService(t)
	ctx := context.Background()

	part, err := svc.CreatePart(ctx, project.ID, "P")
	require.NoError(t, err)
	ch, err := svc.CreateChapter(ctx, part.ID, "C")
	require.NoError(t, err)

	require.NoError(t, svc.DeletePart(ctx, part.ID))

	_, err = svc.GetChapterDetail(ctx, ch.ID)
	assert.Equal(t, apperrors.CodeChapterNotFound, apperrors.AsAppError(err).Code)

	err = svc.DeletePart(ctx, part.ID)
	assert.Equal(t, apperrors.CodePartNotFound, apperrors.AsAppError(err).Code)
}
