package domain

import "time"

// UpdateKind задает вид обновления, соответствующий заполненному полю RawEvent.
type UpdateKind string

const (
	UpdateKindMessage            UpdateKind = "message"
	UpdateKindEditedMessage      UpdateKind = "edited_message"
	UpdateKindChannelPost        UpdateKind = "channel_post"
	UpdateKindEditedChannelPost  UpdateKind = "edited_channel_post"
	UpdateKindInlineQuery        UpdateKind = "inline_query"
	UpdateKindChosenInlineResult UpdateKind = "chosen_inline_result"
	UpdateKindCallbackQuery      UpdateKind = "callback_query"
	UpdateKindShippingQuery      UpdateKind = "shipping_query"
	UpdateKindPreCheckoutQuery   UpdateKind = "pre_checkout_query"
	UpdateKindPoll               UpdateKind = "poll"
	UpdateKindPollAnswer         UpdateKind = "poll_answer"
	UpdateKindMyChatMember       UpdateKind = "my_chat_member"
	UpdateKindChatMember         UpdateKind = "chat_member"

	// UpdateKindUnknown: обновление без известной полезной нагрузки.
	UpdateKindUnknown UpdateKind = "unknown"
)

// Update описывает нормализованное обновление.
type Update struct {
	ID      int64         `json:"update_id"`
	Kind    UpdateKind    `json:"kind"`
	Payload UpdatePayload `json:"payload,omitempty"`
	// Ignored перечисляет заполненные поля полезной нагрузки, проигравшие выбор по приоритету.
	Ignored []string `json:"ignored,omitempty"`
}

// Message возвращает сообщение для видов message, edited_message, channel_post и edited_channel_post.
func (u Update) Message() (*Message, bool) {
	m, ok := u.Payload.(*Message)
	return m, ok
}

// UpdatePayload закрывает множество полезных нагрузок обновления.
type UpdatePayload interface {
	isUpdatePayload()
}

// CallbackQuery описывает нажатие кнопки с уже нормализованным сообщением.
type CallbackQuery struct {
	ID              string   `json:"id"`
	From            User     `json:"from"`
	Message         *Message `json:"message,omitempty"`
	InlineMessageID string   `json:"inline_message_id,omitempty"`
	ChatInstance    string   `json:"chat_instance"`
	Data            string   `json:"data,omitempty"`
	GameShortName   string   `json:"game_short_name,omitempty"`
}

// ChatMemberUpdated описывает изменение статуса участника с нормализованным чатом.
type ChatMemberUpdated struct {
	Chat          Chat            `json:"chat"`
	From          User            `json:"from"`
	Date          time.Time       `json:"date"`
	OldChatMember ChatMember      `json:"old_chat_member"`
	NewChatMember ChatMember      `json:"new_chat_member"`
	InviteLink    *ChatInviteLink `json:"invite_link,omitempty"`
}

func (*Message) isUpdatePayload()            {}
func (*InlineQuery) isUpdatePayload()        {}
func (*ChosenInlineResult) isUpdatePayload() {}
func (*CallbackQuery) isUpdatePayload()      {}
func (*ShippingQuery) isUpdatePayload()      {}
func (*PreCheckoutQuery) isUpdatePayload()   {}
func (*Poll) isUpdatePayload()               {}
func (*PollAnswer) isUpdatePayload()         {}
func (*ChatMemberUpdated) isUpdatePayload()  {}
