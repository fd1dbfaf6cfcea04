// Команда normalize нормализует дампы обновлений Bot API без сервера:
// файлы (или стандартный ввод при пути "-") выводятся таблицей, в Excel или в SQLite.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"telegram-update-normalizer/internal/adapters/exporter"
	"telegram-update-normalizer/internal/adapters/parser"
	"telegram-update-normalizer/internal/adapters/source"
	"telegram-update-normalizer/internal/core/services"
	"telegram-update-normalizer/internal/domain"
	"telegram-update-normalizer/internal/log"
	"telegram-update-normalizer/internal/pkg/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("normalize failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	format := flag.String("format", cfg.Export.Format, "Export format: console, excel, sqlite")
	output := flag.String("o", cfg.Export.Path, "Output path for excel/sqlite")
	diagnostics := flag.Bool("diagnostics", cfg.Normalizer.Diagnostics, "Keep ignored fields and chat extras")
	maxDepth := flag.Int("max-depth", cfg.Normalizer.MaxDepth, "Nesting limit for replies, 0 for none")
	flag.Parse()

	// Таблица идет в stdout, поэтому логи пишутся в stderr.
	logger := log.NewLogger(os.Stderr, cfg.Logging.Format, cfg.Logging.Level, cfg.Bot.Token)
	slog.SetDefault(logger)

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{source.StdinPath}
	}

	normalizer := services.NewNormalizationService(
		services.WithDiagnostics(*diagnostics),
		services.WithMaxDepth(*maxDepth),
		services.WithLogger(logger),
	)
	p := parser.NewJsonParser()

	var batch domain.Batch
	for _, path := range paths {
		data, err := source.NewCliSource(path).Fetch()
		if err != nil {
			return fmt.Errorf("не удалось прочитать %s: %w", path, err)
		}
		events, failures, err := p.ParseUpdates(data)
		if err != nil {
			return fmt.Errorf("не удалось разобрать %s: %w", path, err)
		}
		for _, f := range failures {
			logger.Warn("event skipped", "file", path, "index", f.Index, "update_id", f.UpdateID, "error", f.Error)
		}
		b := normalizer.NormalizeBatch(events)
		batch.Updates = append(batch.Updates, b.Updates...)
		batch.Failures = append(batch.Failures, append(failures, b.Failures...)...)
	}

	exp, closeExporter, err := exporter.New(*format, *output, os.Stdout, logger)
	if err != nil {
		return err
	}
	defer closeExporter()

	if err := exp.Export(batch.Updates); err != nil {
		return fmt.Errorf("не удалось выгрузить результат: %w", err)
	}
	logger.Info("done", "updates", len(batch.Updates), "failures", len(batch.Failures))
	return nil
}
