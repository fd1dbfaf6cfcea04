package parser

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-update-normalizer/internal/domain"
)

const textUpdate = `{"update_id":100,"message":{"message_id":1,"date":1700000000,"chat":{"id":42,"type":"private"},"text":"hi"}}`

func TestJsonParser(t *testing.T) {
	t.Run("NewJsonParser создает корректный экземпляр", func(t *testing.T) {
		assert.NotNil(t, NewJsonParser())
	})

	t.Run("Разбор корректного события", func(t *testing.T) {
		event, err := NewJsonParser().ParseUpdate([]byte(textUpdate))
		require.NoError(t, err)

		assert.Equal(t, int64(100), event.UpdateID)
		require.NotNil(t, event.Message)
		assert.Equal(t, int64(42), event.Message.Chat.ID)
		assert.Equal(t, int64(1700000000), event.Message.Date.Unix())
		require.NotNil(t, event.Message.Text)
		assert.Equal(t, "hi", *event.Message.Text)
	})

	t.Run("Неизвестные поля игнорируются", func(t *testing.T) {
		event, err := NewJsonParser().ParseUpdate([]byte(`{"update_id":1,"business_message":{"x":1},"message":{"message_id":1,"date":1,"chat":{"id":1,"type":"private"},"story":{}}}`))
		require.NoError(t, err)
		assert.NotNil(t, event.Message)
	})

	t.Run("Отсутствие обязательных полей", func(t *testing.T) {
		cases := map[string]string{
			"update_id":          `{"message":{"message_id":1,"date":1,"chat":{"id":1,"type":"private"}}}`,
			"message.message_id": `{"update_id":1,"message":{"date":1,"chat":{"id":1,"type":"private"}}}`,
			"message.date":       `{"update_id":1,"message":{"message_id":1,"chat":{"id":1,"type":"private"}}}`,
			"message.chat":       `{"update_id":1,"message":{"message_id":1,"date":1}}`,
			"message.chat.type":  `{"update_id":1,"message":{"message_id":1,"date":1,"chat":{"id":1}}}`,
			"edited_message.reply_to_message.chat": `{"update_id":1,"edited_message":{"message_id":2,"date":1,"chat":{"id":1,"type":"private"},
				"reply_to_message":{"message_id":1,"date":1}}}`,
		}
		for field, data := range cases {
			t.Run(field, func(t *testing.T) {
				_, err := NewJsonParser().ParseUpdate([]byte(data))
				var decodeErr *domain.DecodeError
				require.ErrorAs(t, err, &decodeErr)
				assert.Equal(t, field, decodeErr.Field)
				assert.True(t, errors.Is(err, domain.ErrMissingField))
			})
		}
	})

	t.Run("Неверный тип поля", func(t *testing.T) {
		_, err := NewJsonParser().ParseUpdate([]byte(`{"update_id":"one"}`))
		var decodeErr *domain.DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, "update_id", decodeErr.Field)
	})

	t.Run("Дробная метка времени", func(t *testing.T) {
		_, err := NewJsonParser().ParseUpdate([]byte(`{"update_id":1,"message":{"message_id":1,"date":1.5,"chat":{"id":1,"type":"private"}}}`))
		var decodeErr *domain.DecodeError
		assert.ErrorAs(t, err, &decodeErr)
	})

	t.Run("Разбор некорректного JSON возвращает ошибку", func(t *testing.T) {
		_, err := NewJsonParser().ParseUpdate([]byte(`{"update_id":`))
		var decodeErr *domain.DecodeError
		assert.ErrorAs(t, err, &decodeErr)
	})
}

func TestParseUpdates(t *testing.T) {
	t.Run("Одиночный объект", func(t *testing.T) {
		events, failures, err := NewJsonParser().ParseUpdates([]byte(textUpdate))
		require.NoError(t, err)
		assert.Empty(t, failures)
		require.Len(t, events, 1)
		assert.Equal(t, int64(100), events[0].UpdateID)
	})

	t.Run("Массив с битым элементом", func(t *testing.T) {
		data := `[` + textUpdate + `,{"update_id":101,"message":{"message_id":2,"chat":{"id":1,"type":"private"}}},{"update_id":102}]`

		events, failures, err := NewJsonParser().ParseUpdates([]byte(data))
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, int64(100), events[0].UpdateID)
		assert.Equal(t, int64(102), events[1].UpdateID)
		require.Len(t, failures, 1)
		assert.Equal(t, 1, failures[0].Index)
		assert.Equal(t, int64(101), failures[0].UpdateID)
		assert.Contains(t, failures[0].Error, "date")
	})

	t.Run("Ответ getUpdates", func(t *testing.T) {
		events, failures, err := NewJsonParser().ParseUpdates([]byte(`{"ok":true,"result":[` + textUpdate + `]}`))
		require.NoError(t, err)
		assert.Empty(t, failures)
		assert.Len(t, events, 1)
	})

	t.Run("Ответ getUpdates с ошибкой", func(t *testing.T) {
		_, _, err := NewJsonParser().ParseUpdates([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Unauthorized")
	})

	t.Run("Битый одиночный объект становится ошибкой события", func(t *testing.T) {
		events, failures, err := NewJsonParser().ParseUpdates([]byte(`{"update_id":5,"message":{"message_id":1}}`))
		require.NoError(t, err)
		assert.Empty(t, events)
		require.Len(t, failures, 1)
		assert.Equal(t, int64(5), failures[0].UpdateID)
	})

	t.Run("Неподходящий контейнер", func(t *testing.T) {
		_, _, err := NewJsonParser().ParseUpdates([]byte(`"text"`))
		assert.Error(t, err)

		_, _, err = NewJsonParser().ParseUpdates([]byte("  "))
		assert.Error(t, err)
	})
}

// replyChainUpdate собирает событие с цепочкой ответов глубины depth.
func replyChainUpdate(depth int) []byte {
	var b strings.Builder
	b.WriteString(`{"update_id":1,"message":`)
	for i := depth; i > 0; i-- {
		fmt.Fprintf(&b, `{"message_id":%d,"date":1,"chat":{"id":1,"type":"private"},"text":"t","reply_to_message":`, i+1)
	}
	b.WriteString(`{"message_id":1,"date":1,"chat":{"id":1,"type":"private"}}`)
	b.WriteString(strings.Repeat("}", depth+1))
	return []byte(b.String())
}

func TestParseUpdateDeepChain(t *testing.T) {
	t.Run("цепочка глубиной 1000 разбирается целиком", func(t *testing.T) {
		event, err := NewJsonParser().ParseUpdate(replyChainUpdate(1000))
		require.NoError(t, err)

		depth := 0
		for m := event.Message.ReplyToMessage; m != nil; m = m.ReplyToMessage {
			depth++
		}
		assert.Equal(t, 1000, depth)
	})

	t.Run("время разбора растет линейно с глубиной", func(t *testing.T) {
		data := replyChainUpdate(8000)

		start := time.Now()
		_, err := NewJsonParser().ParseUpdate(data)
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 2*time.Second)
	})
}
