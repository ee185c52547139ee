package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ghostwriter-api/internal/domain/entity"
)

// SettingsRepository 全局设置仓储实现
type SettingsRepository struct {
	client *Client
}

// NewSettingsRepository 创建设置仓储
func NewSettingsRepository(client *Client) *SettingsRepository {
	return &SettingsRepository{client: client}
}

// Get 读取 default 设置
func (r *SettingsRepository) Get(ctx context.Context) (*entity.Settings, error) {
	ctx, span := tracer.Start(ctx, "postgres.SettingsRepository.Get")
	defer span.End()

	var settings entity.Settings
	if err := getDB(ctx, r.client.db).First(&settings, "id = ?", entity.SettingsID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &settings, nil
}

// Upsert 写入 default 设置
func (r *SettingsRepository) Upsert(ctx context.Context, settings *entity.Settings) error {
	ctx, span := tracer.Start(ctx, "postgres.SettingsRepository.Upsert")
	defer span.End()

	settings.ID = entity.SettingsID
	settings.UpdatedAt = time.Now()
	err := getDB(ctx, r.client.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"prompt_template", "tts_voice", "updated_at"}),
	}).Create(settings).Error
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to upsert settings: %w", err)
	}
	return nil
}
