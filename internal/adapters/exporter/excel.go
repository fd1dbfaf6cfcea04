package exporter

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"telegram-update-normalizer/internal/domain"
	"telegram-update-normalizer/internal/ports"
)

const excelSheetName = "Updates"

var excelHeaders = []string{"Update ID", "Kind", "Chat ID", "Chat kind", "Chat title", "Message ID", "Message kind", "From ID", "Date", "Text", "Reply depth"}

// ExcelExporter реализует интерфейс Exporter для выгрузки обновлений в файл xlsx.
type ExcelExporter struct {
	path   string
	logger *slog.Logger
}

// NewExcelExporter создает новый экземпляр ExcelExporter.
func NewExcelExporter(path string, logger *slog.Logger) ports.Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelExporter{path: path, logger: logger}
}

// Export записывает книгу в файл.
func (e *ExcelExporter) Export(updates []domain.Update) error {
	data, err := WriteExcel(updates)
	if err != nil {
		return err
	}
	if err := os.WriteFile(e.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write excel file %s: %w", e.path, err)
	}
	e.logger.Info("excel export written", "path", e.path, "updates", len(updates))
	return nil
}

// WriteExcel строит книгу с одной строкой на обновление и возвращает ее содержимое.
func WriteExcel(updates []domain.Update) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName(f.GetSheetName(0), excelSheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, h := range excelHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(excelSheetName, cell, h); err != nil {
			return nil, err
		}
	}

	for i, u := range updates {
		s := u.Summary()
		var date string
		if !s.Date.IsZero() {
			date = s.Date.Format(time.RFC3339)
		}
		values := []any{s.UpdateID, string(s.Kind), s.ChatID, string(s.ChatKind), s.ChatTitle, s.MessageID,
			string(s.MessageKind), s.FromID, date, s.Text, s.ReplyDepth}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(excelSheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write excel to buffer: %w", err)
	}
	return buf.Bytes(), nil
}
