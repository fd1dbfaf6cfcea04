package exporter

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"telegram-update-normalizer/internal/domain"
	"telegram-update-normalizer/internal/ports"
)

// textColumnWidth задает ширину колонки с текстом сообщения.
const textColumnWidth = 40

// ConsoleExporter реализует интерфейс Exporter для вывода обновлений таблицей в консоль.
type ConsoleExporter struct {
	out io.Writer
}

// NewConsoleExporter создает новый экземпляр ConsoleExporter. nil означает стандартный вывод.
func NewConsoleExporter(out io.Writer) ports.Exporter {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleExporter{out: out}
}

// Export выводит по строке на каждое обновление.
func (e *ConsoleExporter) Export(updates []domain.Update) error {
	if _, err := fmt.Fprintln(e.out, "--- Normalized Updates ---"); err != nil {
		return err
	}
	if len(updates) == 0 {
		_, err := fmt.Fprintln(e.out, "No updates found.")
		return err
	}

	headers := []string{"UPDATE", "KIND", "CHAT", "CHAT KIND", "MESSAGE", "TEXT"}
	rows := make([][]string, 0, len(updates))
	for _, u := range updates {
		s := u.Summary()
		rows = append(rows, []string{
			strconv.FormatInt(s.UpdateID, 10),
			string(s.Kind),
			chatLabel(s),
			string(s.ChatKind),
			string(s.MessageKind),
			runewidth.Truncate(oneLine(s.Text), textColumnWidth, "…"),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	if err := writeRow(e.out, headers, widths); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeRow(e.out, row, widths); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(e.out, "Total: %d\n", len(updates))
	return err
}

func writeRow(w io.Writer, cells []string, widths []int) error {
	var sb strings.Builder
	for i, cell := range cells {
		sb.WriteString("| ")
		sb.WriteString(cell)
		sb.WriteString(padding(cell, widths[i]))
		sb.WriteString(" ")
	}
	sb.WriteString("|\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// padding дополняет ячейку пробелами до ширины колонки с учетом широких символов.
func padding(s string, width int) string {
	if n := width - runewidth.StringWidth(s); n > 0 {
		return strings.Repeat(" ", n)
	}
	return ""
}

func chatLabel(s domain.UpdateSummary) string {
	if s.ChatID == 0 {
		return ""
	}
	if s.ChatTitle == "" {
		return strconv.FormatInt(s.ChatID, 10)
	}
	return fmt.Sprintf("%s (%d)", s.ChatTitle, s.ChatID)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
