package domain

import "bytes"

// RawEvent хранит входящее обновление в том виде, в каком его присылает платформа.
// Заполнено не больше одного поля с полезной нагрузкой; локально это не проверяется.
// Обязательные поля проверяет DecodeEvent, обычный json.Unmarshal их не контролирует.
type RawEvent struct {
	UpdateID           int64                 `json:"update_id"`
	Message            *RawMessage           `json:"message,omitempty"`
	EditedMessage      *RawMessage           `json:"edited_message,omitempty"`
	ChannelPost        *RawMessage           `json:"channel_post,omitempty"`
	EditedChannelPost  *RawMessage           `json:"edited_channel_post,omitempty"`
	InlineQuery        *InlineQuery          `json:"inline_query,omitempty"`
	ChosenInlineResult *ChosenInlineResult   `json:"chosen_inline_result,omitempty"`
	CallbackQuery      *RawCallbackQuery     `json:"callback_query,omitempty"`
	ShippingQuery      *ShippingQuery        `json:"shipping_query,omitempty"`
	PreCheckoutQuery   *PreCheckoutQuery     `json:"pre_checkout_query,omitempty"`
	Poll               *Poll                 `json:"poll,omitempty"`
	PollAnswer         *PollAnswer           `json:"poll_answer,omitempty"`
	MyChatMember       *RawChatMemberUpdated `json:"my_chat_member,omitempty"`
	ChatMember         *RawChatMemberUpdated `json:"chat_member,omitempty"`
}

// RawMessage хранит плоскую запись сообщения. Вид содержимого не помечен явно и
// определяется по тому, какое из необязательных полей заполнено.
type RawMessage struct {
	MessageID  int64    `json:"message_id"`
	From       *User    `json:"from,omitempty"`
	SenderChat *RawChat `json:"sender_chat,omitempty"`
	Date       UnixTime `json:"date"`
	Chat       RawChat  `json:"chat"`

	ForwardFrom          *User     `json:"forward_from,omitempty"`
	ForwardFromChat      *RawChat  `json:"forward_from_chat,omitempty"`
	ForwardFromMessageID *int64    `json:"forward_from_message_id,omitempty"`
	ForwardSignature     string    `json:"forward_signature,omitempty"`
	ForwardSenderName    string    `json:"forward_sender_name,omitempty"`
	ForwardDate          *UnixTime `json:"forward_date,omitempty"`

	ReplyToMessage *RawMessage `json:"reply_to_message,omitempty"`
	ViaBot         *User       `json:"via_bot,omitempty"`

	EditDate *UnixTime `json:"edit_date,omitempty"`

	MediaGroupID    string `json:"media_group_id,omitempty"`
	AuthorSignature string `json:"author_signature,omitempty"`

	Text            *string         `json:"text,omitempty"`
	Entities        []MessageEntity `json:"entities,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`
	Audio           *Audio          `json:"audio,omitempty"`
	Document        *Document       `json:"document,omitempty"`
	Animation       *Animation      `json:"animation,omitempty"`
	Game            *Game           `json:"game,omitempty"`
	Photo           []PhotoSize     `json:"photo,omitempty"`
	Sticker         *Sticker        `json:"sticker,omitempty"`
	Video           *Video          `json:"video,omitempty"`
	Voice           *Voice          `json:"voice,omitempty"`
	VideoNote       *VideoNote      `json:"video_note,omitempty"`
	Caption         string          `json:"caption,omitempty"`
	Contact         *Contact        `json:"contact,omitempty"`
	Location        *Location       `json:"location,omitempty"`
	Venue           *Venue          `json:"venue,omitempty"`
	Poll            *Poll           `json:"poll,omitempty"`
	Dice            *Dice           `json:"dice,omitempty"`

	NewChatMembers        []User      `json:"new_chat_members,omitempty"`
	LeftChatMember        *User       `json:"left_chat_member,omitempty"`
	NewChatTitle          *string     `json:"new_chat_title,omitempty"`
	NewChatPhoto          []PhotoSize `json:"new_chat_photo,omitempty"`
	DeleteChatPhoto       bool        `json:"delete_chat_photo,omitempty"`
	GroupChatCreated      bool        `json:"group_chat_created,omitempty"`
	SupergroupChatCreated bool        `json:"supergroup_chat_created,omitempty"`
	ChannelChatCreated    bool        `json:"channel_chat_created,omitempty"`

	MessageAutoDeleteTimerChanged *MessageAutoDeleteTimerChanged `json:"message_auto_delete_timer_changed,omitempty"`

	MigrateToChatID   *int64 `json:"migrate_to_chat_id,omitempty"`
	MigrateFromChatID *int64 `json:"migrate_from_chat_id,omitempty"`

	PinnedMessage     *RawMessage        `json:"pinned_message,omitempty"`
	Invoice           *Invoice           `json:"invoice,omitempty"`
	SuccessfulPayment *SuccessfulPayment `json:"successful_payment,omitempty"`

	ConnectedWebsite        *string                  `json:"connected_website,omitempty"`
	PassportData            PassportData             `json:"passport_data,omitempty"`
	ProximityAlertTriggered *ProximityAlertTriggered `json:"proximity_alert_triggered,omitempty"`
	ReplyMarkup             *InlineKeyboardMarkup    `json:"reply_markup,omitempty"`

	VoiceChatScheduled           *VoiceChatScheduled           `json:"voice_chat_scheduled,omitempty"`
	VoiceChatStarted             *VoiceChatStarted             `json:"voice_chat_started,omitempty"`
	VoiceChatEnded               *VoiceChatEnded               `json:"voice_chat_ended,omitempty"`
	VoiceChatParticipantsInvited *VoiceChatParticipantsInvited `json:"voice_chat_participants_invited,omitempty"`
}

// HasPassportData сообщает, пришли ли в сообщении данные Telegram Passport.
func (m *RawMessage) HasPassportData() bool {
	return len(m.PassportData) > 0 && !bytes.Equal(m.PassportData, []byte("null"))
}

// RawChat хранит общую запись чата, то есть надмножество полей всех видов чатов.
// Часть полей заполняется только методом getChat, но не при доставке событий.
type RawChat struct {
	ID               int64            `json:"id"`
	Type             string           `json:"type"`
	Title            string           `json:"title,omitempty"`
	Username         string           `json:"username,omitempty"`
	FirstName        string           `json:"first_name,omitempty"`
	LastName         string           `json:"last_name,omitempty"`
	Photo            *ChatPhoto       `json:"photo,omitempty"`
	Bio              string           `json:"bio,omitempty"`
	Description      string           `json:"description,omitempty"`
	InviteLink       string           `json:"invite_link,omitempty"`
	PinnedMessage    *RawMessage      `json:"pinned_message,omitempty"`
	Permissions      *ChatPermissions `json:"permissions,omitempty"`
	SlowModeDelay    *int             `json:"slow_mode_delay,omitempty"`
	StickerSetName   string           `json:"sticker_set_name,omitempty"`
	CanSetStickerSet *bool            `json:"can_set_sticker_set,omitempty"`
	LinkedChatID     *int64           `json:"linked_chat_id,omitempty"`
	Location         *ChatLocation    `json:"location,omitempty"`
}

// RawCallbackQuery описывает нажатие кнопки встроенной клавиатуры.
type RawCallbackQuery struct {
	ID              string      `json:"id"`
	From            User        `json:"from"`
	Message         *RawMessage `json:"message,omitempty"`
	InlineMessageID string      `json:"inline_message_id,omitempty"`
	ChatInstance    string      `json:"chat_instance"`
	Data            string      `json:"data,omitempty"`
	GameShortName   string      `json:"game_short_name,omitempty"`
}

// RawChatMemberUpdated описывает изменение статуса участника чата.
type RawChatMemberUpdated struct {
	Chat          RawChat         `json:"chat"`
	From          User            `json:"from"`
	Date          UnixTime        `json:"date"`
	OldChatMember ChatMember      `json:"old_chat_member"`
	NewChatMember ChatMember      `json:"new_chat_member"`
	InviteLink    *ChatInviteLink `json:"invite_link,omitempty"`
}
