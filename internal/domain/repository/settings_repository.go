package repository

import (
	"context"

	"ghostwriter-api/internal/domain/entity"
)

// SettingsRepository 全局设置仓储接口
type SettingsRepository interface {
	// Get 读取 default 记录，不存在时返回 nil, nil
	Get(ctx context.Context) (*entity.Settings, error)

	// Upsert 写入 default 记录
	Upsert(ctx context.Context, settings *entity.Settings) error
}
