package exporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-update-normalizer/internal/domain"
)

func TestConsoleExporter(t *testing.T) {
	t.Run("NewConsoleExporter создает корректный экземпляр", func(t *testing.T) {
		assert.NotNil(t, NewConsoleExporter(nil))
	})

	t.Run("Export выводит таблицу обновлений", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewConsoleExporter(&buf).Export(sampleUpdates()))

		output := buf.String()
		assert.Contains(t, output, "--- Normalized Updates ---")
		assert.Contains(t, output, "Ann (42)")
		assert.Contains(t, output, "Привет, 世界")
		assert.Contains(t, output, "callback_query")
		assert.Contains(t, output, "press")
		assert.Contains(t, output, "Total: 2")

		lines := strings.Split(strings.TrimSpace(output), "\n")
		require.Len(t, lines, 5)
		assert.Contains(t, lines[1], "UPDATE")
	})

	t.Run("Export выравнивает колонки с широкими символами", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewConsoleExporter(&buf).Export(sampleUpdates()))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		header, first, second := lines[1], lines[2], lines[3]
		assert.Equal(t, strings.Count(header, "|"), strings.Count(first, "|"))
		assert.Equal(t, strings.Count(header, "|"), strings.Count(second, "|"))
	})

	t.Run("Export длинного текста обрезает его", func(t *testing.T) {
		var buf bytes.Buffer
		long := strings.Repeat("word ", 50)
		updates := []domain.Update{{ID: 1, Kind: domain.UpdateKindMessage, Payload: &domain.Message{
			ID: 1, Kind: domain.MessageKindText, Content: domain.TextContent{Text: long},
		}}}
		require.NoError(t, NewConsoleExporter(&buf).Export(updates))
		assert.Contains(t, buf.String(), "…")
		assert.NotContains(t, buf.String(), strings.TrimSpace(long))
	})

	t.Run("Export пустого списка", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewConsoleExporter(&buf).Export(nil))
		assert.Contains(t, buf.String(), "No updates found.")
	})
}
