package port

import (
	"context"

	"github.com/cloudwego/eino/components/model"
)

// ProviderInfo 供应商解析后的描述信息
type ProviderInfo struct {
	Provider      string
	Model         string
	ContextWindow int
}

// ChatModelFactory 定义工作流层对 LLM ChatModel 的最小依赖（port）。
type ChatModelFactory interface {
	Get(ctx context.Context, name string) (model.BaseChatModel, error)
	Describe(name string) ProviderInfo
}
