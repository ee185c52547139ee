// Package paragraph 提供段落生成与段落审核流程
package paragraph

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ghostwriter-api/internal/application/story/storyutil"
	workflowchain "ghostwriter-api/internal/workflow/chain"
	wfmodel "ghostwriter-api/internal/workflow/model"
	"ghostwriter-api/internal/workflow/node"
	workflowport "ghostwriter-api/internal/workflow/port"
	apperrors "ghostwriter-api/pkg/errors"
	"ghostwriter-api/pkg/logger"
	"ghostwriter-api/pkg/metrics"
	"ghostwriter-api/pkg/tracer"
)

// Generator 调用模型并解析段落，不写入任何数据
type Generator struct {
	chain   *workflowchain.ParagraphChain
	factory workflowport.ChatModelFactory
}

// NewGenerator 创建段落生成器
func NewGenerator(factory workflowport.ChatModelFactory) *Generator {
	return &Generator{
		chain:   workflowchain.NewParagraphChain(factory),
		factory: factory,
	}
}

// Generate 单次生成，模型失败或空输出返回 GenerationFailure
func (g *Generator) Generate(ctx context.Context, in *wfmodel.ParagraphGenerateInput) (*wfmodel.ParagraphGenerateOutput, error) {
	if g == nil || g.chain == nil || g.factory == nil {
		return nil, apperrors.GenerationFailure(fmt.Errorf("paragraph workflow not configured"))
	}
	if in == nil {
		return nil, apperrors.GenerationFailure(fmt.Errorf("input is nil"))
	}

	ctx, span := tracer.Start(ctx, "paragraph.Generate")
	defer span.End()

	info := g.factory.Describe(in.Provider)
	modelName := info.Model
	if m := strings.TrimSpace(in.Model); m != "" {
		modelName = m
	}

	start := time.Now()
	outMsg, err := g.chain.Invoke(ctx, in)
	elapsed := time.Since(start).Seconds()
	metrics.LLMCallDuration.WithLabelValues(info.Provider, modelName).Observe(elapsed)
	if err != nil {
		metrics.LLMCallTotal.WithLabelValues(info.Provider, modelName, "error").Inc()
		observeGeneration("error", "none", elapsed)
		return nil, tracer.Fail(span, apperrors.GenerationFailure(err))
	}
	metrics.LLMCallTotal.WithLabelValues(info.Provider, modelName, "success").Inc()

	meta := wfmodel.LLMUsageMeta{
		Provider:    info.Provider,
		Model:       modelName,
		Temperature: float64(workflowchain.Temperature),
		GeneratedAt: time.Now().UTC(),
	}
	if outMsg.ResponseMeta != nil && outMsg.ResponseMeta.Usage != nil {
		meta.PromptTokens = outMsg.ResponseMeta.Usage.PromptTokens
		meta.CompletionTokens = outMsg.ResponseMeta.Usage.CompletionTokens
		metrics.LLMTokensUsed.WithLabelValues(info.Provider, modelName, "prompt").Add(float64(meta.PromptTokens))
		metrics.LLMTokensUsed.WithLabelValues(info.Provider, modelName, "completion").Add(float64(meta.CompletionTokens))
	}

	if strings.TrimSpace(outMsg.Content) == "" {
		observeGeneration("error", "none", elapsed)
		return nil, tracer.Fail(span, apperrors.GenerationFailure(fmt.Errorf("empty completion from model")))
	}

	parsed := node.ParseParagraphs(outMsg.Content)
	if parsed.Format == node.FormatUnstructured {
		logger.Debug(ctx, "completion without section markers", "raw", storyutil.TruncateByRunes(outMsg.Content, 500))
	}
	observeGeneration("success", parsed.Format.String(), elapsed)
	metrics.ParagraphsReturned.Observe(float64(len(parsed.Paragraphs)))

	return &wfmodel.ParagraphGenerateOutput{
		Paragraphs:  parsed.Paragraphs,
		Explanation: parsed.Explanation,
		Format:      parsed.Format.String(),
		Meta:        meta,
	}, nil
}

func observeGeneration(status, format string, seconds float64) {
	metrics.ParagraphGenerationTotal.WithLabelValues(status, format).Inc()
	metrics.ParagraphGenerationDuration.WithLabelValues(status).Observe(seconds)
}
