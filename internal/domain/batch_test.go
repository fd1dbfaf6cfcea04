package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUpdateSummary(t *testing.T) {
	date := time.Unix(1700000000, 0).UTC()
	group := Chat{ID: -100, Kind: ChatKindGroup, Details: GroupChat{Title: "Team"}}

	t.Run("сообщение с цепочкой ответов", func(t *testing.T) {
		msg := &Message{
			ID:      3,
			From:    &User{ID: 42, FirstName: "Ann"},
			Date:    date,
			Chat:    group,
			Kind:    MessageKindPhoto,
			Content: PhotoContent{Caption: "look"},
			ReplyTo: &Message{ID: 2, Chat: group, ReplyTo: &Message{ID: 1, Chat: group}},
		}
		s := Update{ID: 10, Kind: UpdateKindMessage, Payload: msg}.Summary()

		assert.Equal(t, UpdateSummary{
			UpdateID:    10,
			Kind:        UpdateKindMessage,
			ChatID:      -100,
			ChatKind:    ChatKindGroup,
			ChatTitle:   "Team",
			MessageID:   3,
			MessageKind: MessageKindPhoto,
			FromID:      42,
			Date:        date,
			Text:        "look",
			ReplyDepth:  2,
		}, s)
	})

	t.Run("изменение статуса участника", func(t *testing.T) {
		s := Update{ID: 11, Kind: UpdateKindMyChatMember, Payload: &ChatMemberUpdated{
			Chat:          group,
			From:          User{ID: 7},
			Date:          date,
			OldChatMember: ChatMember{Status: "member"},
			NewChatMember: ChatMember{Status: "kicked"},
		}}.Summary()

		assert.Equal(t, "member -> kicked", s.Text)
		assert.Equal(t, int64(7), s.FromID)
		assert.Equal(t, "Team", s.ChatTitle)
	})

	t.Run("нажатие кнопки", func(t *testing.T) {
		s := Update{ID: 12, Kind: UpdateKindCallbackQuery, Payload: &CallbackQuery{
			From:    User{ID: 9},
			Data:    "ok",
			Message: &Message{ID: 4, Chat: group},
		}}.Summary()

		assert.Equal(t, "ok", s.Text)
		assert.Equal(t, int64(4), s.MessageID)
		assert.Equal(t, int64(-100), s.ChatID)
	})

	t.Run("неизвестное обновление", func(t *testing.T) {
		s := Update{ID: 13, Kind: UpdateKindUnknown}.Summary()
		assert.Equal(t, UpdateSummary{UpdateID: 13, Kind: UpdateKindUnknown}, s)
	})
}

func TestChatAccessors(t *testing.T) {
	private := Chat{ID: 1, Kind: ChatKindPrivate, Details: PrivateChat{FirstName: "Ann", LastName: "Lee", Username: "ann"}}
	assert.Equal(t, "Ann Lee", private.Title())
	assert.Equal(t, "ann", private.Username())
	assert.Nil(t, private.PinnedMessage())

	pinned := &Message{ID: 5}
	super := Chat{ID: 2, Kind: ChatKindSupergroup, Details: SupergroupChat{Title: "Devs", Username: "devs", PinnedMessage: pinned}}
	assert.Equal(t, "Devs", super.Title())
	assert.Equal(t, "devs", super.Username())
	assert.Same(t, pinned, super.PinnedMessage())

	kind, ok := ParseChatKind("channel")
	assert.True(t, ok)
	assert.Equal(t, ChatKindChannel, kind)
	_, ok = ParseChatKind("secret")
	assert.False(t, ok)
}

func TestMessageKindIsService(t *testing.T) {
	assert.True(t, MessageKindNewChatTitle.IsService())
	assert.True(t, MessageKindPinnedMessage.IsService())
	assert.False(t, MessageKindText.IsService())
	assert.False(t, MessageKindPlain.IsService())
}
