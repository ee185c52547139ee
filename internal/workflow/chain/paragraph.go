package chain

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	wfmodel "ghostwriter-api/internal/workflow/model"
	workflowport "ghostwriter-api/internal/workflow/port"
	workflowprompt "ghostwriter-api/internal/workflow/prompt"
)

const (
	// DefaultInstruction 指令为空时使用
	DefaultInstruction = "Continue a narrativa com os próximos 4 parágrafos."

	Temperature     float32 = 0.8
	MaxOutputTokens         = 2000
)

// ParagraphChain 组装提示词并调用一次模型
type ParagraphChain struct {
	factory workflowport.ChatModelFactory
}

func NewParagraphChain(factory workflowport.ChatModelFactory) *ParagraphChain {
	return &ParagraphChain{factory: factory}
}

// Invoke 单次非流式调用，不重试
func (c *ParagraphChain) Invoke(ctx context.Context, in *wfmodel.ParagraphGenerateInput) (*schema.Message, error) {
	if c == nil || c.factory == nil {
		return nil, fmt.Errorf("llm factory not configured")
	}
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}

	chatModel, err := c.factory.Get(ctx, strings.TrimSpace(in.Provider))
	if err != nil {
		return nil, err
	}

	outMsg, err := chatModel.Generate(ctx, FormatParagraphMessages(in), buildParagraphModelOptions(in)...)
	if err != nil {
		return nil, err
	}
	if outMsg == nil {
		return nil, fmt.Errorf("empty llm response")
	}
	return outMsg, nil
}

// FormatParagraphMessages 构造 [system, user] 消息
func FormatParagraphMessages(in *wfmodel.ParagraphGenerateInput) []*schema.Message {
	system := workflowprompt.Render(workflowprompt.Resolve(in.Template), workflowprompt.TemplateVars{
		ProjectContext: in.ProjectContext,
		ChapterContent: in.ChapterContent,
	})
	return []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(ResolveInstruction(in.Instruction)),
	}
}

// ResolveInstruction 空白指令回退为默认指令
func ResolveInstruction(instruction string) string {
	if strings.TrimSpace(instruction) == "" {
		return DefaultInstruction
	}
	return instruction
}

func buildParagraphModelOptions(in *wfmodel.ParagraphGenerateInput) []model.Option {
	opts := []model.Option{
		model.WithTemperature(Temperature),
		model.WithMaxTokens(MaxOutputTokens),
	}
	if m := strings.TrimSpace(in.Model); m != "" {
		opts = append(opts, model.WithModel(m))
	}
	return opts
}
