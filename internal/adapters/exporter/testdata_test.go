package exporter

import (
	"time"

	"telegram-update-normalizer/internal/domain"
)

func sampleUpdates() []domain.Update {
	date := time.Unix(1700000000, 0).UTC()
	reply := &domain.Message{ID: 1, Date: date, Chat: domain.Chat{ID: 42, Kind: domain.ChatKindPrivate, Details: domain.PrivateChat{FirstName: "Ann"}},
		Kind: domain.MessageKindText, Content: domain.TextContent{Text: "first"}}
	return []domain.Update{
		{
			ID:   100,
			Kind: domain.UpdateKindMessage,
			Payload: &domain.Message{
				ID:      2,
				From:    &domain.User{ID: 5, FirstName: "Ann"},
				Date:    date,
				Chat:    domain.Chat{ID: 42, Kind: domain.ChatKindPrivate, Details: domain.PrivateChat{FirstName: "Ann"}},
				ReplyTo: reply,
				Kind:    domain.MessageKindText,
				Content: domain.TextContent{Text: "Привет, 世界"},
			},
		},
		{
			ID:   101,
			Kind: domain.UpdateKindCallbackQuery,
			Payload: &domain.CallbackQuery{
				ID:           "cb",
				From:         domain.User{ID: 6, FirstName: "Bob"},
				ChatInstance: "ci",
				Data:         "press",
			},
		},
	}
}
