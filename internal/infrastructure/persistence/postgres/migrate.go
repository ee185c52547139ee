package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"ghostwriter-api/internal/domain/entity"
)

// models 按依赖顺序排列，外键与唯一排序索引由实体标签声明
var models = []any{
	&entity.Project{},
	&entity.ProjectDocument{},
	&entity.Part{},
	&entity.Chapter{},
	&entity.ChapterDocument{},
	&entity.Paragraph{},
	&entity.Settings{},
}

// Migrate 执行表结构迁移
func (c *Client) Migrate(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "postgres.Migrate")
	defer span.End()

	if err := c.db.WithContext(ctx).AutoMigrate(models...); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// SeedDefaultSettings 插入 default 设置记录，已存在时不覆盖
func (c *Client) SeedDefaultSettings(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "postgres.SeedDefaultSettings")
	defer span.End()

	err := c.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(entity.DefaultSettings()).Error
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to seed settings: %w", err)
	}
	return nil
}
