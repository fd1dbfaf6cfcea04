package domain

import "time"

// MessageKind задает вид сообщения, вычисленный по набору заполненных полей записи.
// Значения совпадают с именами полей протокола.
type MessageKind string

const (
	MessageKindText      MessageKind = "text"
	MessageKindAudio     MessageKind = "audio"
	MessageKindDocument  MessageKind = "document"
	MessageKindAnimation MessageKind = "animation"
	MessageKindGame      MessageKind = "game"
	MessageKindPhoto     MessageKind = "photo"
	MessageKindSticker   MessageKind = "sticker"
	MessageKindVideo     MessageKind = "video"
	MessageKindVoice     MessageKind = "voice"
	MessageKindVideoNote MessageKind = "video_note"
	MessageKindContact   MessageKind = "contact"
	MessageKindLocation  MessageKind = "location"
	MessageKindVenue     MessageKind = "venue"
	MessageKindPoll      MessageKind = "poll"
	MessageKindDice      MessageKind = "dice"

	MessageKindNewChatMembers               MessageKind = "new_chat_members"
	MessageKindLeftChatMember               MessageKind = "left_chat_member"
	MessageKindNewChatTitle                 MessageKind = "new_chat_title"
	MessageKindNewChatPhoto                 MessageKind = "new_chat_photo"
	MessageKindDeleteChatPhoto              MessageKind = "delete_chat_photo"
	MessageKindGroupChatCreated             MessageKind = "group_chat_created"
	MessageKindSupergroupChatCreated        MessageKind = "supergroup_chat_created"
	MessageKindChannelChatCreated           MessageKind = "channel_chat_created"
	MessageKindAutoDeleteTimerChanged       MessageKind = "message_auto_delete_timer_changed"
	MessageKindMigrateToChat                MessageKind = "migrate_to_chat_id"
	MessageKindMigrateFromChat              MessageKind = "migrate_from_chat_id"
	MessageKindPinnedMessage                MessageKind = "pinned_message"
	MessageKindInvoice                      MessageKind = "invoice"
	MessageKindSuccessfulPayment            MessageKind = "successful_payment"
	MessageKindConnectedWebsite             MessageKind = "connected_website"
	MessageKindPassportData                 MessageKind = "passport_data"
	MessageKindProximityAlertTriggered      MessageKind = "proximity_alert_triggered"
	MessageKindVoiceChatScheduled           MessageKind = "voice_chat_scheduled"
	MessageKindVoiceChatStarted             MessageKind = "voice_chat_started"
	MessageKindVoiceChatEnded               MessageKind = "voice_chat_ended"
	MessageKindVoiceChatParticipantsInvited MessageKind = "voice_chat_participants_invited"

	// MessageKindPlain: ни одно известное поле содержимого или служебного события не заполнено.
	MessageKindPlain MessageKind = "plain"
)

// IsService сообщает, относится ли вид к служебным событиям чата.
func (k MessageKind) IsService() bool {
	switch k {
	case MessageKindNewChatMembers, MessageKindLeftChatMember, MessageKindNewChatTitle,
		MessageKindNewChatPhoto, MessageKindDeleteChatPhoto, MessageKindGroupChatCreated,
		MessageKindSupergroupChatCreated, MessageKindChannelChatCreated, MessageKindAutoDeleteTimerChanged,
		MessageKindMigrateToChat, MessageKindMigrateFromChat, MessageKindPinnedMessage,
		MessageKindInvoice, MessageKindSuccessfulPayment, MessageKindConnectedWebsite,
		MessageKindPassportData, MessageKindProximityAlertTriggered, MessageKindVoiceChatScheduled,
		MessageKindVoiceChatStarted, MessageKindVoiceChatEnded, MessageKindVoiceChatParticipantsInvited:
		return true
	}
	return false
}

// ForwardOrigin описывает происхождение пересланного сообщения.
type ForwardOrigin struct {
	From       *User     `json:"from,omitempty"`
	FromChat   *Chat     `json:"from_chat,omitempty"`
	MessageID  int64     `json:"message_id,omitempty"`
	Signature  string    `json:"signature,omitempty"`
	SenderName string    `json:"sender_name,omitempty"`
	Date       time.Time `json:"date"`
}

// Message описывает нормализованное сообщение. Content содержит ровно один вариант,
// соответствующий Kind; поля, не относящиеся к этому виду, отброшены.
// Вложенные ReplyTo и закрепленное сообщение принадлежат этому сообщению.
type Message struct {
	ID              int64                 `json:"id"`
	From            *User                 `json:"from,omitempty"`
	SenderChat      *Chat                 `json:"sender_chat,omitempty"`
	Date            time.Time             `json:"date"`
	Chat            Chat                  `json:"chat"`
	Forward         *ForwardOrigin        `json:"forward,omitempty"`
	ReplyTo         *Message              `json:"reply_to,omitempty"`
	ViaBot          *User                 `json:"via_bot,omitempty"`
	EditDate        *time.Time            `json:"edit_date,omitempty"`
	MediaGroupID    string                `json:"media_group_id,omitempty"`
	AuthorSignature string                `json:"author_signature,omitempty"`
	ReplyMarkup     *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
	Kind            MessageKind           `json:"kind"`
	Content         MessageContent        `json:"content"`
	// Ignored перечисляет заполненные поля, проигравшие выбор по приоритету. Только в режиме диагностики.
	Ignored []string `json:"ignored,omitempty"`
}

// Text возвращает текст или подпись сообщения, если они есть.
func (m *Message) Text() string {
	switch c := m.Content.(type) {
	case TextContent:
		return c.Text
	case AudioContent:
		return c.Caption
	case DocumentContent:
		return c.Caption
	case AnimationContent:
		return c.Caption
	case PhotoContent:
		return c.Caption
	case VideoContent:
		return c.Caption
	case VoiceContent:
		return c.Caption
	}
	return ""
}

// MessageContent закрывает множество вариантов содержимого сообщения.
type MessageContent interface {
	Kind() MessageKind
	isMessageContent()
}

type TextContent struct {
	Text     string          `json:"text"`
	Entities []MessageEntity `json:"entities,omitempty"`
}

type AudioContent struct {
	Audio           Audio           `json:"audio"`
	Caption         string          `json:"caption,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`
}

type DocumentContent struct {
	Document        Document        `json:"document"`
	Caption         string          `json:"caption,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`
}

type AnimationContent struct {
	Animation       Animation       `json:"animation"`
	Caption         string          `json:"caption,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`
}

type GameContent struct {
	Game Game `json:"game"`
}

type PhotoContent struct {
	Sizes           []PhotoSize     `json:"sizes"`
	Caption         string          `json:"caption,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`
}

type StickerContent struct {
	Sticker Sticker `json:"sticker"`
}

type VideoContent struct {
	Video           Video           `json:"video"`
	Caption         string          `json:"caption,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`
}

type VoiceContent struct {
	Voice           Voice           `json:"voice"`
	Caption         string          `json:"caption,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`
}

type VideoNoteContent struct {
	VideoNote VideoNote `json:"video_note"`
}

type ContactContent struct {
	Contact Contact `json:"contact"`
}

type LocationContent struct {
	Location Location `json:"location"`
}

type VenueContent struct {
	Venue Venue `json:"venue"`
}

type PollContent struct {
	Poll Poll `json:"poll"`
}

type DiceContent struct {
	Dice Dice `json:"dice"`
}

type NewChatMembersContent struct {
	Members []User `json:"members"`
}

type LeftChatMemberContent struct {
	Member User `json:"member"`
}

type NewChatTitleContent struct {
	Title string `json:"title"`
}

type NewChatPhotoContent struct {
	Sizes []PhotoSize `json:"sizes"`
}

type DeleteChatPhotoContent struct{}

type GroupChatCreatedContent struct{}

type SupergroupChatCreatedContent struct{}

type ChannelChatCreatedContent struct{}

type AutoDeleteTimerChangedContent struct {
	MessageAutoDeleteTime int `json:"message_auto_delete_time"`
}

type MigrateToChatContent struct {
	ChatID int64 `json:"chat_id"`
}

type MigrateFromChatContent struct {
	ChatID int64 `json:"chat_id"`
}

// PinnedMessageContent владеет закрепленным сообщением.
type PinnedMessageContent struct {
	Message *Message `json:"message"`
}

type InvoiceContent struct {
	Invoice Invoice `json:"invoice"`
}

type SuccessfulPaymentContent struct {
	Payment SuccessfulPayment `json:"payment"`
}

type ConnectedWebsiteContent struct {
	Domain string `json:"domain"`
}

type PassportDataContent struct {
	Data PassportData `json:"data"`
}

type ProximityAlertContent struct {
	Alert ProximityAlertTriggered `json:"alert"`
}

type VoiceChatScheduledContent struct {
	StartDate time.Time `json:"start_date"`
}

type VoiceChatStartedContent struct{}

type VoiceChatEndedContent struct {
	Duration int `json:"duration"`
}

type VoiceChatParticipantsInvitedContent struct {
	Users []User `json:"users,omitempty"`
}

// PlainContent соответствует сообщению без распознанного содержимого: только идентификатор, отправитель, чат и дата.
type PlainContent struct{}

func (TextContent) Kind() MessageKind                   { return MessageKindText }
func (AudioContent) Kind() MessageKind                  { return MessageKindAudio }
func (DocumentContent) Kind() MessageKind               { return MessageKindDocument }
func (AnimationContent) Kind() MessageKind              { return MessageKindAnimation }
func (GameContent) Kind() MessageKind                   { return MessageKindGame }
func (PhotoContent) Kind() MessageKind                  { return MessageKindPhoto }
func (StickerContent) Kind() MessageKind                { return MessageKindSticker }
func (VideoContent) Kind() MessageKind                  { return MessageKindVideo }
func (VoiceContent) Kind() MessageKind                  { return MessageKindVoice }
func (VideoNoteContent) Kind() MessageKind              { return MessageKindVideoNote }
func (ContactContent) Kind() MessageKind                { return MessageKindContact }
func (LocationContent) Kind() MessageKind               { return MessageKindLocation }
func (VenueContent) Kind() MessageKind                  { return MessageKindVenue }
func (PollContent) Kind() MessageKind                   { return MessageKindPoll }
func (DiceContent) Kind() MessageKind                   { return MessageKindDice }
func (NewChatMembersContent) Kind() MessageKind         { return MessageKindNewChatMembers }
func (LeftChatMemberContent) Kind() MessageKind         { return MessageKindLeftChatMember }
func (NewChatTitleContent) Kind() MessageKind           { return MessageKindNewChatTitle }
func (NewChatPhotoContent) Kind() MessageKind           { return MessageKindNewChatPhoto }
func (DeleteChatPhotoContent) Kind() MessageKind        { return MessageKindDeleteChatPhoto }
func (GroupChatCreatedContent) Kind() MessageKind       { return MessageKindGroupChatCreated }
func (SupergroupChatCreatedContent) Kind() MessageKind  { return MessageKindSupergroupChatCreated }
func (ChannelChatCreatedContent) Kind() MessageKind     { return MessageKindChannelChatCreated }
func (AutoDeleteTimerChangedContent) Kind() MessageKind { return MessageKindAutoDeleteTimerChanged }
func (MigrateToChatContent) Kind() MessageKind          { return MessageKindMigrateToChat }
func (MigrateFromChatContent) Kind() MessageKind        { return MessageKindMigrateFromChat }
func (PinnedMessageContent) Kind() MessageKind          { return MessageKindPinnedMessage }
func (InvoiceContent) Kind() MessageKind                { return MessageKindInvoice }
func (SuccessfulPaymentContent) Kind() MessageKind      { return MessageKindSuccessfulPayment }
func (ConnectedWebsiteContent) Kind() MessageKind       { return MessageKindConnectedWebsite }
func (PassportDataContent) Kind() MessageKind           { return MessageKindPassportData }
func (ProximityAlertContent) Kind() MessageKind         { return MessageKindProximityAlertTriggered }
func (VoiceChatScheduledContent) Kind() MessageKind     { return MessageKindVoiceChatScheduled }
func (VoiceChatStartedContent) Kind() MessageKind       { return MessageKindVoiceChatStarted }
func (VoiceChatEndedContent) Kind() MessageKind         { return MessageKindVoiceChatEnded }
func (VoiceChatParticipantsInvitedContent) Kind() MessageKind {
	return MessageKindVoiceChatParticipantsInvited
}
func (PlainContent) Kind() MessageKind { return MessageKindPlain }

func (TextContent) isMessageContent()                         {}
func (AudioContent) isMessageContent()                        {}
func (DocumentContent) isMessageContent()                     {}
func (AnimationContent) isMessageContent()                    {}
func (GameContent) isMessageContent()                         {}
func (PhotoContent) isMessageContent()                        {}
func (StickerContent) isMessageContent()                      {}
func (VideoContent) isMessageContent()                        {}
func (VoiceContent) isMessageContent()                        {}
func (VideoNoteContent) isMessageContent()                    {}
func (ContactContent) isMessageContent()                      {}
func (LocationContent) isMessageContent()                     {}
func (VenueContent) isMessageContent()                        {}
func (PollContent) isMessageContent()                         {}
func (DiceContent) isMessageContent()                         {}
func (NewChatMembersContent) isMessageContent()               {}
func (LeftChatMemberContent) isMessageContent()               {}
func (NewChatTitleContent) isMessageContent()                 {}
func (NewChatPhotoContent) isMessageContent()                 {}
func (DeleteChatPhotoContent) isMessageContent()              {}
func (GroupChatCreatedContent) isMessageContent()             {}
func (SupergroupChatCreatedContent) isMessageContent()        {}
func (ChannelChatCreatedContent) isMessageContent()           {}
func (AutoDeleteTimerChangedContent) isMessageContent()       {}
func (MigrateToChatContent) isMessageContent()                {}
func (MigrateFromChatContent) isMessageContent()              {}
func (PinnedMessageContent) isMessageContent()                {}
func (InvoiceContent) isMessageContent()                      {}
func (SuccessfulPaymentContent) isMessageContent()            {}
func (ConnectedWebsiteContent) isMessageContent()             {}
func (PassportDataContent) isMessageContent()                 {}
func (ProximityAlertContent) isMessageContent()               {}
func (VoiceChatScheduledContent) isMessageContent()           {}
func (VoiceChatStartedContent) isMessageContent()             {}
func (VoiceChatEndedContent) isMessageContent()               {}
func (VoiceChatParticipantsInvitedContent) isMessageContent() {}
func (PlainContent) isMessageContent()                        {}
