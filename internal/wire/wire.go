//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"ghostwriter-api/internal/application/settings"
	storycontext "ghostwriter-api/internal/application/story/context"
	"ghostwriter-api/internal/application/story/outline"
	"ghostwriter-api/internal/application/story/paragraph"
	"ghostwriter-api/internal/config"
	"ghostwriter-api/internal/infrastructure/llm"
	"ghostwriter-api/internal/infrastructure/persistence/postgres"
	"ghostwriter-api/internal/interfaces/http/handler"
	"ghostwriter-api/internal/interfaces/http/router"
	workflowport "ghostwriter-api/internal/workflow/port"
)

// InitializePostgresOnly 仅初始化 PostgreSQL 客户端（用于 bootstrap）
func InitializePostgresOnly(ctx context.Context, cfg *config.Config) (*postgres.Client, func(), error) {
	wire.Build(ProvidePostgresClient)
	return nil, nil, nil
}

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		StorageSet,
		RedisSet,
		ServiceSet,
		RouterSet,
	)
	return nil, nil, nil
}

// StorageSet 仓储提供者集合
var StorageSet = wire.NewSet(
	ProvideStorage,
	wire.FieldsOf(new(*Storage),
		"Postgres", "Tx", "Projects", "ProjectDocuments", "Parts",
		"Chapters", "ChapterDocuments", "Paragraphs", "Settings",
	),
)

// RedisSet 可选 Redis 提供者集合
var RedisSet = wire.NewSet(
	ProvideRedisClientOptional,
	ProvideSettingsCache,
	ProvideRateLimiter,
)

// ServiceSet 应用服务提供者集合
var ServiceSet = wire.NewSet(
	llm.NewEinoFactory,
	wire.Bind(new(workflowport.ChatModelFactory), new(*llm.EinoFactory)),
	storycontext.NewAssembler,
	outline.NewService,
	paragraph.NewGenerator,
	paragraph.NewService,
	ProvideSettingsService,
	wire.Bind(new(paragraph.SettingsReader), new(*settings.Service)),
	ProvideSpeaker,
	ProvideTranscriber,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	handler.NewHealthHandler,
	handler.NewProjectHandler,
	handler.NewDocumentHandler,
	handler.NewOutlineHandler,
	handler.NewParagraphHandler,
	handler.NewSettingsHandler,
	handler.NewSpeechHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)
