package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wfmodel "ghostwriter-api/internal/workflow/model"
	workflowport "ghostwriter-api/internal/workflow/port"
	workflowprompt "ghostwriter-api/internal/workflow/prompt"
)

type recordingModel struct {
	calls int
	msgs  []*schema.Message
	opts  *model.Options
	reply *schema.Message
	err   error
}

func (m *recordingModel) Generate(_ context.Context, in []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.calls++
	m.msgs = in
	m.opts = model.GetCommonOptions(&model.Options{}, opts...)
	return m.reply, m.err
}

func (m *recordingModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not supported")
}

type staticFactory struct {
	m   model.BaseChatModel
	err error
	got string
}

func (f *staticFactory) Get(_ context.Context, name string) (model.BaseChatModel, error) {
	f.got = name
	return f.m, f.err
}

func (f *staticFactory) Describe(name string) workflowport.ProviderInfo {
	return workflowport.ProviderInfo{Provider: "openai", Model: "gpt-4o-2024-11-20", ContextWindow: 128000}
}

func TestParagraphChain_Invoke_BuildsMessagesAndOptions(t *testing.T) {
	m := &recordingModel{reply: schema.AssistantMessage("ok", nil)}
	c := NewParagraphChain(&staticFactory{m: m})

	out, err := c.Invoke(context.Background(), &wfmodel.ParagraphGenerateInput{
		ProjectContext: "DOCS",
		ChapterContent: "",
		Instruction:    "   ",
		Template:       "S:{{PROJECT_CONTEXT}}|{{CHAPTER_CONTENT}}",
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Content)
	assert.Equal(t, 1, m.calls)

	require.Len(t, m.msgs, 2)
	assert.Equal(t, schema.System, m.msgs[0].Role)
	assert.Equal(t, "S:DOCS|"+workflowprompt.EmptyChapterContent, m.msgs[0].Content)
	assert.Equal(t, schema.User, m.msgs[1].Role)
	assert.Equal(t, DefaultInstruction, m.msgs[1].Content)

	require.NotNil(t, m.opts.Temperature)
	assert.InDelta(t, 0.8, *m.opts.Temperature, 1e-6)
	require.NotNil(t, m.opts.MaxTokens)
	assert.Equal(t, 2000, *m.opts.MaxTokens)
	assert.Nil(t, m.opts.Model)
}

func TestParagraphChain_Invoke_DefaultTemplateAndModelOverride(t *testing.T) {
	m := &recordingModel{reply: schema.AssistantMessage("ok", nil)}
	f := &staticFactory{m: m}
	c := NewParagraphChain(f)

	_, err := c.Invoke(context.Background(), &wfmodel.ParagraphGenerateInput{
		ProjectContext: "P",
		ChapterContent: "C",
		Instruction:    "Escreva uma luta.",
		Provider:       " openai ",
		Model:          "gpt-4o-mini",
	})
	require.NoError(t, err)

	assert.Equal(t, "openai", f.got)
	assert.Contains(t, m.msgs[0].Content, "CONTEXTO DO PROJETO:\nP")
	assert.Contains(t, m.msgs[0].Content, "CONTEÚDO JÁ ESCRITO NESTE CAPÍTULO:\nC")
	assert.Equal(t, "Escreva uma luta.", m.msgs[1].Content)
	require.NotNil(t, m.opts.Model)
	assert.Equal(t, "gpt-4o-mini", *m.opts.Model)
}

func TestParagraphChain_Invoke_Errors(t *testing.T) {
	_, err := NewParagraphChain(nil).Invoke(context.Background(), &wfmodel.ParagraphGenerateInput{})
	assert.Error(t, err)

	_, err = NewParagraphChain(&staticFactory{err: errors.New("provider x not found")}).
		Invoke(context.Background(), &wfmodel.ParagraphGenerateInput{})
	assert.EqualError(t, err, "provider x not found")

	m := &recordingModel{err: errors.New("429 rate limited")}
	_, err = NewParagraphChain(&staticFactory{m: m}).Invoke(context.Background(), &wfmodel.ParagraphGenerateInput{})
	assert.EqualError(t, err, "429 rate limited")
	assert.Equal(t, 1, m.calls)

	_, err = NewParagraphChain(&staticFactory{m: &recordingModel{}}).Invoke(context.Background(), &wfmodel.ParagraphGenerateInput{})
	assert.EqualError(t, err, "empty llm response")
}
