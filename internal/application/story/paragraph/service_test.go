package paragraph

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storycontext "ghostwriter-api/internal/application/story/context"
	"ghostwriter-api/internal/domain/entity"
	"ghostwriter-api/internal/infrastructure/persistence/memory"
	wfmodel "ghostwriter-api/internal/workflow/model"
	workflowport "ghostwriter-api/internal/workflow/port"
	workflowprompt "ghostwriter-api/internal/workflow/prompt"
	apperrors "ghostwriter-api/pkg/errors"
)

type scriptedModel struct {
	calls int
	msgs  []*schema.Message
	reply *schema.Message
	err   error
}

func (m *scriptedModel) Generate(_ context.Context, in []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.calls++
	m.msgs = in
	return m.reply, m.err
}

func (m *scriptedModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not supported")
}

type fakeFactory struct{ m model.BaseChatModel }

func (f fakeFactory) Get(context.Context, string) (model.BaseChatModel, error) { return f.m, nil }

func (f fakeFactory) Describe(string) workflowport.ProviderInfo {
	return workflowport.ProviderInfo{Provider: "openai", Model: "gpt-4o-2024-11-20", ContextWindow: 128000}
}

type fakeSettings struct {
	s   *entity.Settings
	err error
}

func (f fakeSettings) Get(context.Context) (*entity.Settings, error) { return f.s, f.err }

type env struct {
	store   *memory.Store
	model   *scriptedModel
	svc     *Service
	chapter *entity.Chapter
}

func newEnv(t *testing.T, settings SettingsReader) *env {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()

	project := entity.NewProject("Livro", nil)
	require.NoError(t, s.Projects().Create(ctx, project))
	part := entity.NewPart(project.ID, "Parte", 0)
	require.NoError(t, s.Parts().Create(ctx, part))
	chapter := entity.NewChapter(part.ID, "Cap", 0)
	require.NoError(t, s.Chapters().Create(ctx, chapter))

	m := &scriptedModel{}
	if settings == nil {
		settings = fakeSettings{s: entity.DefaultSettings()}
	}
	svc := NewService(
		s, s.Chapters(), s.Paragraphs(),
		storycontext.NewAssembler(s.Chapters(), s.ProjectDocuments(), s.ChapterDocuments(), s.Paragraphs()),
		NewGenerator(fakeFactory{m: m}),
		settings,
	)
	return &env{store: s, model: m, svc: svc, chapter: chapter}
}

func TestGenerate_StructuredReply(t *testing.T) {
	e := newEnv(t, nil)
	e.model.reply = schema.AssistantMessage("---EXPLICACAO---\nsegui o tom\n---PARAGRAFOS---\nUm.\n\nDois.", nil)

	res, err := e.svc.Generate(context.Background(), e.chapter.ID, "continue")
	require.NoError(t, err)

	assert.Equal(t, []string{"Um.", "Dois."}, res.Paragraphs)
	assert.Equal(t, "segui o tom", res.Explanation)
	assert.Equal(t, 128000, res.MaxTokens)
	assert.Greater(t, res.TokenEstimate, 0)
	assert.Equal(t, 1, e.model.calls)

	// nothing persisted until approval
	list, err := e.store.Paragraphs().ListByChapter(context.Background(), e.chapter.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGenerate_UsesSettingsTemplateAndApprovedContent(t *testing.T) {
	custom := "CTX={{PROJECT_CONTEXT}} BODY={{CHAPTER_CONTENT}}"
	e := newEnv(t, fakeSettings{s: &entity.Settings{ID: entity.SettingsID, PromptTemplate: &custom}})
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, e.store.Paragraphs().CreateBatch(ctx, []*entity.Paragraph{
		entity.NewParagraph(e.chapter.ID, "aprovado", 0, &now),
		entity.NewParagraph(e.chapter.ID, "rascunho", 1, nil),
	}))
	e.model.reply = schema.AssistantMessage("texto livre", nil)

	res, err := e.svc.Generate(ctx, e.chapter.ID, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"texto livre"}, res.Paragraphs)
	assert.Equal(t, "", res.Explanation)

	require.Len(t, e.model.msgs, 2)
	assert.Equal(t, "CTX=DOCUMENTOS DO PROJETO:\n\n\nDOCUMENTOS DO CAPÍTULO:\n BODY=aprovado", e.model.msgs[0].Content)
	assert.NotContains(t, e.model.msgs[0].Content, "rascunho")
}

func TestGenerate_EmptyChapterUsesPlaceholder(t *testing.T) {
	e := newEnv(t, nil)
	e.model.reply = schema.AssistantMessage("x", nil)

	_, err := e.svc.Generate(context.Background(), e.chapter.ID, "")
	require.NoError(t, err)
	assert.Contains(t, e.model.msgs[0].Content, workflowprompt.EmptyChapterContent)
}

func TestGenerate_ModelErrorPassesMessageThrough(t *testing.T) {
	e := newEnv(t, nil)
	e.model.err = errors.New("rate limit exceeded")

	_, err := e.svc.Generate(context.Background(), e.chapter.ID, "")
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeGenerationFailed, appErr.Code)
	assert.Equal(t, "rate limit exceeded", appErr.Message)
}

func TestGenerate_BlankCompletionFails(t *testing.T) {
	e := newEnv(t, nil)
	e.model.reply = schema.AssistantMessage("  \n ", nil)

	_, err := e.svc.Generate(context.Background(), e.chapter.ID, "")
	assert.Equal(t, apperrors.CodeGenerationFailed, apperrors.AsAppError(err).Code)
}

func TestGenerator_NilFactory(t *testing.T) {
	g := NewGenerator(nil)

	out, err := g.Generate(context.Background(), &wfmodel.ParagraphGenerateInput{Instruction: "x"})
	assert.Nil(t, out)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeGenerationFailed, apperrors.AsAppError(err).Code)
}

func TestGenerate_MissingChapter(t *testing.T) {
	e := newEnv(t, nil)

	_, err := e.svc.Generate(context.Background(), "nope", "")
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeContextLoadFailed, appErr.Code)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
	assert.Zero(t, e.model.calls)
}

func TestGenerate_SettingsFailure(t *testing.T) {
	e := newEnv(t, fakeSettings{err: errors.New("redis down")})

	_, err := e.svc.Generate(context.Background(), e.chapter.ID, "")
	assert.Equal(t, apperrors.CodeContextLoadFailed, apperrors.AsAppError(err).Code)
	assert.Zero(t, e.model.calls)
}

func TestAppend_ConsecutiveIndices(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()

	first, err := e.svc.Append(ctx, e.chapter.ID, []string{"a", "b"}, false)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, 0, first[0].OrderIndex)
	assert.Equal(t, 1, first[1].OrderIndex)
	assert.True(t, first[0].IsApproved())

	require.NoError(t, e.svc.Delete(ctx, first[1].ID))

	second, err := e.svc.Append(ctx, e.chapter.ID, []string{" c ", "", "d"}, true)
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, "c", second[0].Content)
	assert.Equal(t, 1, second[0].OrderIndex)
	assert.Equal(t, 2, second[1].OrderIndex)
	assert.False(t, second[0].IsApproved())
}

func TestAppend_Validation(t *testing.T) {
	e := newEnv(t, nil)

	_, err := e.svc.Append(context.Background(), e.chapter.ID, []string{" "}, false)
	assert.Equal(t, http.StatusBadRequest, apperrors.AsAppError(err).HTTPStatus)

	_, err = e.svc.Append(context.Background(), "missing", []string{"x"}, false)
	assert.Equal(t, apperrors.CodeChapterNotFound, apperrors.AsAppError(err).Code)
}

func TestApproveAndUpdate(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	e.svc.now = func() time.Time { return fixed }

	created, err := e.svc.Append(ctx, e.chapter.ID, []string{"rascunho"}, true)
	require.NoError(t, err)
	id := created[0].ID

	approved, err := e.svc.Approve(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, approved.ApprovedAt)
	assert.True(t, fixed.Equal(*approved.ApprovedAt))

	updated, err := e.svc.Update(ctx, id, "final")
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Content)
	assert.True(t, updated.IsApproved())

	_, err = e.svc.Approve(ctx, "missing")
	assert.Equal(t, apperrors.CodeParagraphNotFound, apperrors.AsAppError(err).Code)

	err = e.svc.Delete(ctx, "missing")
	assert.Equal(t, apperrors.CodeParagraphNotFound, apperrors.AsAppError(err).Code)
}
