package exporter

import (
	"fmt"
	"io"
	"log/slog"

	"telegram-update-normalizer/internal/ports"
)

// Форматы выгрузки.
const (
	FormatConsole = "console"
	FormatExcel   = "excel"
	FormatSQLite  = "sqlite"
)

// New выбирает экспортер по формату. Возвращаемая функция освобождает ресурсы экспортера.
func New(format, path string, out io.Writer, logger *slog.Logger) (ports.Exporter, func() error, error) {
	noop := func() error { return nil }
	switch format {
	case FormatConsole, "":
		return NewConsoleExporter(out), noop, nil
	case FormatExcel:
		if path == "" {
			return nil, nil, fmt.Errorf("путь к файлу Excel не указан")
		}
		return NewExcelExporter(path, logger), noop, nil
	case FormatSQLite:
		if path == "" {
			return nil, nil, fmt.Errorf("путь к базе SQLite не указан")
		}
		e, err := NewSQLiteExporter(path, logger)
		if err != nil {
			return nil, nil, err
		}
		return e, e.Close, nil
	default:
		return nil, nil, fmt.Errorf("неизвестный формат экспорта: %s", format)
	}
}
