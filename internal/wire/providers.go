// Package wire 提供依赖注入配置
package wire

import (
	"context"
	"fmt"

	"ghostwriter-api/internal/application/settings"
	"ghostwriter-api/internal/config"
	"ghostwriter-api/internal/domain/repository"
	"ghostwriter-api/internal/infrastructure/persistence/memory"
	"ghostwriter-api/internal/infrastructure/persistence/postgres"
	"ghostwriter-api/internal/infrastructure/persistence/redis"
	"ghostwriter-api/internal/infrastructure/speech"
	"ghostwriter-api/internal/interfaces/http/middleware"
	workflowport "ghostwriter-api/internal/workflow/port"
	"ghostwriter-api/pkg/logger"
)

// Storage 按 database.driver 选择的仓储集合
type Storage struct {
	// Postgres 仅 postgres 驱动时非 nil
	Postgres *postgres.Client

	Tx               repository.Transactor
	Projects         repository.ProjectRepository
	ProjectDocuments repository.ProjectDocumentRepository
	Parts            repository.PartRepository
	Chapters         repository.ChapterRepository
	ChapterDocuments repository.ChapterDocumentRepository
	Paragraphs       repository.ParagraphRepository
	Settings         repository.SettingsRepository
}

// ProvideStorage 提供仓储集合，memory 驱动用于本地演示与测试
func ProvideStorage(ctx context.Context, cfg *config.Config) (*Storage, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		logger.Warn(ctx, "using in-memory storage, data will not survive restarts")
		s := memory.NewStore()
		return &Storage{
			Tx:               s,
			Projects:         s.Projects(),
			ProjectDocuments: s.ProjectDocuments(),
			Parts:            s.Parts(),
			Chapters:         s.Chapters(),
			ChapterDocuments: s.ChapterDocuments(),
			Paragraphs:       s.Paragraphs(),
			Settings:         s.Settings(),
		}, func() {}, nil
	case config.DriverPostgres, "":
		client, err := postgres.NewClient(&cfg.Database.Postgres)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			_ = client.Close()
		}
		return &Storage{
			Postgres:         client,
			Tx:               postgres.NewTxManager(client),
			Projects:         postgres.NewProjectRepository(client),
			ProjectDocuments: postgres.NewProjectDocumentRepository(client),
			Parts:            postgres.NewPartRepository(client),
			Chapters:         postgres.NewChapterRepository(client),
			ChapterDocuments: postgres.NewChapterDocumentRepository(client),
			Paragraphs:       postgres.NewParagraphRepository(client),
			Settings:         postgres.NewSettingsRepository(client),
		}, cleanup, nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

// ProvidePostgresClient 提供 PostgreSQL 客户端（用于 bootstrap）
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClientOptional 提供可选 Redis 客户端，未启用或不可达时返回 nil
func ProvideRedisClientOptional(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		logger.Warn(ctx, "redis not available, cache and rate limit disabled", "error", err.Error())
		return nil, func() {}, nil
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideSettingsCache 提供设置缓存，Redis 不可用时为 nil
func ProvideSettingsCache(client *redis.Client) settings.Cache {
	if client == nil {
		return nil
	}
	return redis.NewCache(client)
}

// ProvideRateLimiter 提供限流器，Redis 不可用时为 nil
func ProvideRateLimiter(client *redis.Client) middleware.RateLimiter {
	if client == nil {
		return nil
	}
	return redis.NewRateLimiter(client)
}

// ProvideSettingsService 提供设置服务
func ProvideSettingsService(cfg *config.Config, repo repository.SettingsRepository, cache settings.Cache) *settings.Service {
	return settings.NewService(repo, cache, cfg.Cache.SettingsTTL)
}

// ProvideSpeaker 提供带缓存的语音合成器，未配置时为 nil
func ProvideSpeaker(ctx context.Context, cfg *config.Config) workflowport.Speaker {
	tts, err := speech.NewUnrealSpeech(&cfg.Speech.TTS)
	if err != nil {
		logger.Warn(ctx, "tts not available", "error", err.Error())
		return nil
	}
	cached, err := speech.NewCachedSpeaker(tts, cfg.Speech.TTS.CacheSize)
	if err != nil {
		logger.Warn(ctx, "tts cache disabled", "error", err.Error())
		return tts
	}
	return cached
}

// ProvideTranscriber 提供语音转写器，未配置时为 nil
func ProvideTranscriber(ctx context.Context, cfg *config.Config) workflowport.Transcriber {
	t, err := speech.NewWhisperTranscriber(&cfg.Speech.Transcription)
	if err != nil {
		logger.Warn(ctx, "transcription not available", "error", err.Error())
		return nil
	}
	return t
}
