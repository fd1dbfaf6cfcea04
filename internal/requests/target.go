// Package requests содержит исходящие запросы на изменение и удаление сообщений.
// Адресация запроса задается только конструкторами: либо пара chat_id и
// message_id, либо inline_message_id, но никогда обе сразу.
package requests

import (
	"encoding/json"

	"telegram-update-normalizer/internal/domain"
)

// Request — запрос к Bot API, готовый к кодированию.
type Request interface {
	json.Marshaler
	// Method возвращает имя метода Bot API.
	Method() string
	payload() any
}

// Target — адрес сообщения, к которому относится запрос.
type Target struct {
	chatID          int64
	messageID       int64
	inlineMessageID string
}

func chatTarget(chatID, messageID int64) Target {
	return Target{chatID: chatID, messageID: messageID}
}

func messageTarget(m *domain.Message) Target {
	return Target{chatID: m.Chat.ID, messageID: m.ID}
}

func inlineTarget(inlineMessageID string) Target {
	return Target{inlineMessageID: inlineMessageID}
}

// Inline сообщает, адресовано ли сообщение через inline_message_id.
func (t Target) Inline() bool { return t.inlineMessageID != "" }

// ChatID возвращает chat_id; для inline-адреса он равен нулю.
func (t Target) ChatID() int64 { return t.chatID }

// MessageID возвращает message_id в чате.
func (t Target) MessageID() int64 { return t.messageID }

// InlineMessageID возвращает inline_message_id.
func (t Target) InlineMessageID() string { return t.inlineMessageID }

func (t Target) empty() bool {
	return t.inlineMessageID == "" && t.chatID == 0 && t.messageID == 0
}

// addressing содержит поля адреса в закодированном запросе.
type addressing struct {
	ChatID          *int64 `json:"chat_id,omitempty"`
	MessageID       *int64 `json:"message_id,omitempty"`
	InlineMessageID string `json:"inline_message_id,omitempty"`
}

func (t Target) wire() addressing {
	if t.Inline() {
		return addressing{InlineMessageID: t.inlineMessageID}
	}
	chatID, messageID := t.chatID, t.messageID
	return addressing{ChatID: &chatID, MessageID: &messageID}
}
