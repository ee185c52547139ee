package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"ghostwriter-api/internal/config"
	"ghostwriter-api/internal/wire"
)

func main() {
	_ = godotenv.Load()

	fmt.Println("Starting database bootstrap...")

	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Database.Driver == config.DriverMemory {
		fmt.Println("Memory driver configured, nothing to migrate.")
		return
	}

	ctx := context.Background()

	// 2. 连接 PostgreSQL
	client, cleanup, err := wire.InitializePostgresOnly(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer cleanup()

	// 3. 建表、外键与排序唯一索引
	if err := client.Migrate(ctx); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}
	fmt.Println("Schema migrated.")

	// 4. 写入默认设置（已存在时跳过）
	if err := client.SeedDefaultSettings(ctx); err != nil {
		log.Fatalf("failed to seed default settings: %v", err)
	}

	fmt.Println("Bootstrap completed successfully.")
}
