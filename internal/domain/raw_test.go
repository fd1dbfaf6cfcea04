package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawEventUnmarshal(t *testing.T) {
	t.Run("сообщение с ответом", func(t *testing.T) {
		data := `{"update_id":7,"message":{"message_id":2,"date":1700000000,"chat":{"id":5,"type":"private","first_name":"Ann"},
			"text":"hi","reply_to_message":{"message_id":1,"date":1699999999,"chat":{"id":5,"type":"private"}}}}`

		e, err := DecodeEvent([]byte(data))
		require.NoError(t, err)
		assert.Equal(t, int64(7), e.UpdateID)
		require.NotNil(t, e.Message)
		assert.Equal(t, int64(2), e.Message.MessageID)
		assert.Equal(t, "private", e.Message.Chat.Type)
		require.NotNil(t, e.Message.Text)
		assert.Equal(t, "hi", *e.Message.Text)
		require.NotNil(t, e.Message.ReplyToMessage)
		assert.Equal(t, int64(1699999999), e.Message.ReplyToMessage.Date.Unix())
	})

	testCases := []struct {
		name  string
		data  string
		field string
	}{
		{"нет update_id", `{"message":{"message_id":1,"date":1,"chat":{"id":1,"type":"private"}}}`, "update_id"},
		{"нет message_id", `{"update_id":1,"message":{"date":1,"chat":{"id":1,"type":"private"}}}`, "message.message_id"},
		{"нет date", `{"update_id":1,"message":{"message_id":1,"chat":{"id":1,"type":"private"}}}`, "message.date"},
		{"нет chat", `{"update_id":1,"message":{"message_id":1,"date":1}}`, "message.chat"},
		{"нет chat.type", `{"update_id":1,"message":{"message_id":1,"date":1,"chat":{"id":1}}}`, "message.chat.type"},
		{"нет chat.id", `{"update_id":1,"message":{"message_id":1,"date":1,"chat":{"type":"group"}}}`, "message.chat.id"},
		{"нет chat во вложенном ответе", `{"update_id":1,"message":{"message_id":2,"date":1,"chat":{"id":1,"type":"private"},
			"reply_to_message":{"message_id":1,"date":1}}}`, "message.reply_to_message.chat"},
		{"нет date в закрепленном сообщении чата", `{"update_id":1,"channel_post":{"message_id":2,"date":1,
			"chat":{"id":1,"type":"channel","pinned_message":{"message_id":1,"chat":{"id":1,"type":"channel"}}}}}`, "channel_post.chat.pinned_message.date"},
		{"нет type у sender_chat", `{"update_id":1,"message":{"message_id":1,"date":1,"chat":{"id":1,"type":"group"},
			"sender_chat":{"id":2}}}`, "message.sender_chat.type"},
		{"нет message_id в сообщении callback_query", `{"update_id":1,"callback_query":{"id":"q","from":{"id":1,"is_bot":false,"first_name":"A"},
			"chat_instance":"c","message":{"date":1,"chat":{"id":1,"type":"private"}}}}`, "callback_query.message.message_id"},
		{"нет chat в my_chat_member", `{"update_id":1,"my_chat_member":{"from":{"id":1,"is_bot":false,"first_name":"A"},"date":1}}`, "my_chat_member.chat"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeEvent([]byte(tc.data))
			require.Error(t, err)

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, tc.field, decodeErr.Field)
			assert.ErrorIs(t, err, ErrMissingField)
		})
	}

	t.Run("несовпадение типа поля", func(t *testing.T) {
		_, err := DecodeEvent([]byte(`{"update_id":"seven"}`))
		assert.Error(t, err)
	})
}

// chainJSON строит сообщение с цепочкой ответов глубины depth; у последнего
// звена подставляется tail вместо обязательных полей.
func chainJSON(depth int, tail string) []byte {
	var b strings.Builder
	b.WriteString(`{"update_id":1,"message":`)
	for i := depth; i > 0; i-- {
		fmt.Fprintf(&b, `{"message_id":%d,"date":1,"chat":{"id":1,"type":"private"},"reply_to_message":`, i+1)
	}
	b.WriteString(tail)
	b.WriteString(strings.Repeat("}", depth))
	b.WriteString("}")
	return []byte(b.String())
}

func TestDecodeEventDeepChain(t *testing.T) {
	t.Run("цепочка ответов разбирается целиком", func(t *testing.T) {
		e, err := DecodeEvent(chainJSON(1000, `{"message_id":1,"date":1,"chat":{"id":1,"type":"private"}}`))
		require.NoError(t, err)

		depth := 0
		for m := e.Message; m != nil; m = m.ReplyToMessage {
			assert.Equal(t, int64(1), m.Chat.ID)
			depth++
		}
		assert.Equal(t, 1001, depth)
	})

	t.Run("путь к полю в глубине цепочки сворачивается", func(t *testing.T) {
		_, err := DecodeEvent(chainJSON(3, `{"message_id":1,"chat":{"id":1,"type":"private"}}`))

		var decodeErr *DecodeError
		require.True(t, errors.As(err, &decodeErr))
		assert.Equal(t, "message.reply_to_message*3.date", decodeErr.Field)
	})
}

func TestDecodeMessage(t *testing.T) {
	t.Run("корректное сообщение", func(t *testing.T) {
		m, err := DecodeMessage([]byte(`{"message_id":3,"date":1,"chat":{"id":9,"type":"supergroup","title":"T"},"text":"x"}`))
		require.NoError(t, err)
		assert.Equal(t, int64(3), m.MessageID)
		assert.Equal(t, int64(9), m.Chat.ID)
		assert.Equal(t, "T", m.Chat.Title)
	})

	t.Run("путь считается от корня сообщения", func(t *testing.T) {
		_, err := DecodeMessage([]byte(`{"message_id":3,"date":1,"chat":{"type":"group"}}`))

		var decodeErr *DecodeError
		require.True(t, errors.As(err, &decodeErr))
		assert.Equal(t, "chat.id", decodeErr.Field)
	})
}

func TestRawMessageHasPassportData(t *testing.T) {
	m, err := DecodeMessage([]byte(`{"message_id":1,"date":1,"chat":{"id":1,"type":"private"}}`))
	require.NoError(t, err)
	assert.False(t, m.HasPassportData())

	m, err = DecodeMessage([]byte(`{"message_id":1,"date":1,"chat":{"id":1,"type":"private"},"passport_data":{"data":[]}}`))
	require.NoError(t, err)
	assert.True(t, m.HasPassportData())
}

func TestErrors(t *testing.T) {
	assert.Equal(t, "decode message.chat.id: required field is missing", missingField((&fieldPath{name: "message"}).child("chat"), "id").Error())
	assert.Equal(t, "decode: boom", (&DecodeError{Err: errors.New("boom")}).Error())
	assert.Equal(t, "normalize chat 5: unknown chat type", (&NormalizationError{Reason: "unknown chat type", ChatID: 5}).Error())
	assert.Equal(t, "normalize: bad", (&NormalizationError{Reason: "bad"}).Error())
}
