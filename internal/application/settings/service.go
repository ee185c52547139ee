// Package settings 读取与更新全局设置
package settings

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"ghostwriter-api/internal/domain/entity"
	"ghostwriter-api/internal/domain/repository"
	workflowprompt "ghostwriter-api/internal/workflow/prompt"
	apperrors "ghostwriter-api/pkg/errors"
	"ghostwriter-api/pkg/logger"
)

const cacheKey = "settings:" + entity.SettingsID

// Cache 设置读缓存，未启用 Redis 时为 nil
type Cache interface {
	GetOrLoadSafe(ctx context.Context, key string, ttl time.Duration, loader func(ctx context.Context) (any, error)) ([]byte, error)
	Delete(ctx context.Context, keys ...string) error
}

// Update 设置更新请求，nil 或空串回退默认值
type Update struct {
	PromptTemplate *string
	TTSVoice       *string
}

// Service 设置服务
type Service struct {
	repo  repository.SettingsRepository
	cache Cache
	ttl   time.Duration
}

// NewService 创建设置服务，cache 可为 nil
func NewService(repo repository.SettingsRepository, cache Cache, ttl time.Duration) *Service {
	return &Service{repo: repo, cache: cache, ttl: ttl}
}

// Get 返回生效中的设置，模板为空时填入内置模板
func (s *Service) Get(ctx context.Context) (*entity.Settings, error) {
	stored, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return effective(stored), nil
}

// Update 覆盖写入设置并清除缓存
func (s *Service) Update(ctx context.Context, in Update) (*entity.Settings, error) {
	settings := entity.DefaultSettings()
	if in.PromptTemplate != nil && strings.TrimSpace(*in.PromptTemplate) != "" {
		tpl := *in.PromptTemplate
		settings.PromptTemplate = &tpl
	}
	if in.TTSVoice != nil && strings.TrimSpace(*in.TTSVoice) != "" {
		settings.TTSVoice = strings.TrimSpace(*in.TTSVoice)
	}

	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to save settings")
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, cacheKey); err != nil {
			logger.Warn(ctx, "failed to invalidate settings cache", "error", err)
		}
	}
	return effective(settings), nil
}

func (s *Service) load(ctx context.Context) (*entity.Settings, error) {
	if s.cache != nil {
		raw, err := s.cache.GetOrLoadSafe(ctx, cacheKey, s.ttl, func(ctx context.Context) (any, error) {
			return s.fromRepo(ctx)
		})
		if err == nil {
			var cached *entity.Settings
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
		logger.Warn(ctx, "settings cache unavailable, reading database", "error", err)
	}
	return s.fromRepo(ctx)
}

func (s *Service) fromRepo(ctx context.Context) (*entity.Settings, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load settings")
	}
	return stored, nil
}

func effective(stored *entity.Settings) *entity.Settings {
	out := entity.DefaultSettings()
	if stored != nil {
		out.UpdatedAt = stored.UpdatedAt
		out.TTSVoice = stored.Voice()
		if strings.TrimSpace(stored.Template()) != "" {
			tpl := stored.Template()
			out.PromptTemplate = &tpl
		}
	}
	if out.PromptTemplate == nil {
		tpl := workflowprompt.DefaultParagraphTemplate
		out.PromptTemplate = &tpl
	}
	return out
}
