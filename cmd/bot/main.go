package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"telegram-update-normalizer/internal/adapters/botapi"
	"telegram-update-normalizer/internal/adapters/exporter"
	"telegram-update-normalizer/internal/adapters/parser"
	"telegram-update-normalizer/internal/bot"
	"telegram-update-normalizer/internal/bot/router"
	"telegram-update-normalizer/internal/core/services"
	"telegram-update-normalizer/internal/log"
	"telegram-update-normalizer/internal/pkg/config"
	"telegram-update-normalizer/internal/ports"
)

func main() {
	// Загрузка конфигурации бота
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load bot config: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера с маскировкой токенов и настройками из конфига
	logger := log.NewLogger(os.Stdout, cfg.Logging.Format, cfg.Logging.Level, cfg.Bot.Token)
	slog.SetDefault(logger)

	if err := cfg.ValidateBot(); err != nil {
		logger.Error("failed to validate bot config", slog.Any("error", err))
		os.Exit(1)
	}

	// Инициализация компонентов
	clientOpts := func(endpoint string) []botapi.Option {
		return []botapi.Option{
			botapi.WithEndpoint(endpoint),
			botapi.WithLogger(logger),
			botapi.WithDebug(cfg.Logging.Level == "debug"),
		}
	}
	primary, err := botapi.NewClient(cfg.Bot.Token, clientOpts(cfg.Bot.APIEndpoint)...)
	if err != nil {
		logger.Error("failed to create bot transport", slog.Any("error", err))
		os.Exit(1)
	}

	var transport ports.BotTransport = primary
	if len(cfg.Bot.MirrorEndpoints) > 0 {
		pool := []ports.PooledTransport{primary}
		for _, endpoint := range cfg.Bot.MirrorEndpoints {
			mirror, err := botapi.NewClient(cfg.Bot.Token, clientOpts(endpoint)...)
			if err != nil {
				logger.Error("failed to create mirror transport", slog.Any("error", err))
				os.Exit(1)
			}
			pool = append(pool, mirror)
		}
		r, err := router.NewRouter(pool,
			router.WithHealthCheckInterval(cfg.Bot.HealthCheckInterval),
			router.WithLogger(logger),
		)
		if err != nil {
			logger.Error("failed to create router", slog.Any("error", err))
			os.Exit(1)
		}
		defer r.Stop()
		transport = r
	}

	opts := []bot.Option{
		bot.WithPollTimeout(cfg.Bot.PollTimeoutSeconds),
		bot.WithAllowedUpdates(cfg.Bot.AllowedUpdates),
		bot.WithDeleteServiceMessages(cfg.Bot.DeleteServiceMessages),
		bot.WithLogger(logger),
	}
	// Консольная таблица в логах бота бесполезна, выгружаются только файловые форматы.
	if cfg.Export.Format != exporter.FormatConsole {
		exp, closeExporter, err := exporter.New(cfg.Export.Format, cfg.Export.Path, nil, logger)
		if err != nil {
			logger.Error("failed to create exporter", slog.Any("error", err))
			os.Exit(1)
		}
		defer closeExporter()
		opts = append(opts, bot.WithExporter(exp))
	}

	normalizer := services.NewNormalizationService(
		services.WithDiagnostics(cfg.Normalizer.Diagnostics),
		services.WithMaxDepth(cfg.Normalizer.MaxDepth),
		services.WithLogger(logger.With("component", "normalizer")),
	)
	poller := bot.NewPoller(transport, parser.NewJsonParser(), normalizer, opts...)

	logger.Info("Bot created successfully, starting...", slog.String("username", primary.Self()))

	// Ожидание сигналов для graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := poller.Run(ctx); err != nil {
		logger.Error("bot stopped with error", slog.Any("error", err))
	}
	logger.Info("Bot stopped gracefully")
}
