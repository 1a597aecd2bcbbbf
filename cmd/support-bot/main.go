package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"support-bot/internal/api"
	"support-bot/internal/api/handlers"
	"support-bot/internal/catalog"
	"support-bot/internal/repository"
	"support-bot/internal/service"
	"support-bot/pkg/config"
	"support-bot/pkg/logger"
	"support-bot/pkg/postgres"

	"go.uber.org/zap"
)

// @title Support Bot API
// @version 1.0
// @description Customer support bot answering from intents, FAQs and a generative model, with human escalation

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8000
// @BasePath /

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting support bot")

	// Catalogs are loaded once; a broken catalog must stop startup.
	cat, err := catalog.Load(cfg.Catalog.IntentsPath, cfg.Catalog.FaqsPath)
	if err != nil {
		appLogger.Fatal("Failed to load catalogs", zap.Error(err))
	}
	intents, patterns, faqs := cat.Stats()
	appLogger.Info("Catalogs loaded",
		zap.Int("intents", intents),
		zap.Int("patterns", patterns),
		zap.Int("faqs", faqs),
	)

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to prepare database schema", zap.Error(err))
	}

	chatRepo := repository.NewChatHistoryRepository(db, logger.Component("chat_history"))

	generator, err := service.NewGenerator(ctx, cfg, logger.Component("generator"))
	if err != nil {
		appLogger.Fatal("Failed to initialize generative fallback", zap.Error(err))
	}
	if closer, ok := generator.(io.Closer); ok {
		defer closer.Close()
	}
	appLogger.Info("Generative fallback ready", zap.String("generator", generator.Name()))

	resolver := service.NewResolverService(cat, generator, chatRepo, cfg.Resolver, logger.Component("resolver"))

	chatHandler := handlers.NewChatHandler(resolver, appLogger)
	app := api.SetupRouter(chatHandler, &cfg.Server, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
