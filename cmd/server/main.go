package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"telegram-update-normalizer/internal/adapters/parser"
	"telegram-update-normalizer/internal/cache"
	"telegram-update-normalizer/internal/core/services"
	"telegram-update-normalizer/internal/log"
	"telegram-update-normalizer/internal/pkg/config"
	"telegram-update-normalizer/internal/server"
	"telegram-update-normalizer/internal/server/usecase"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}
}

// run инкапсулирует всю логику инициализации и запуска приложения.
func run() error {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		// Логгер еще не инициализирован, выводим в stderr
		_, _ = fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Инициализация логгера
	logger := log.NewLogger(os.Stdout, cfg.Logging.Format, cfg.Logging.Level, cfg.Bot.Token)
	slog.SetDefault(logger)

	// 3. Валидация конфигурации (после инициализации логгера)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// 4. Инициализация зависимостей
	taskStore := server.NewTaskStore()
	cacheStore := cache.NewCacheStore()
	normalizer := services.NewNormalizationService(
		services.WithDiagnostics(cfg.Normalizer.Diagnostics),
		services.WithMaxDepth(cfg.Normalizer.MaxDepth),
		services.WithLogger(logger.With("component", "normalizer")),
	)
	processor := usecase.NewNormalizeDumpUseCase(parser.NewJsonParser(), normalizer, cacheStore, cfg.Processing.CacheTTL, logger)

	// 5. Создание HTTP-сервера
	srv, err := server.New(cfg, processor, taskStore, cacheStore)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// 6. Запуск сервера и graceful shutdown
	serverDone := make(chan struct{})
	go func() {
		defer close(serverDone)
		slog.Info("Starting server", "addr", cfg.Address())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		slog.Info("Signal received, shutting down...")
	case <-serverDone:
		return errors.New("server stopped unexpectedly")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	<-serverDone
	slog.Info("Application exited gracefully")
	return nil
}
