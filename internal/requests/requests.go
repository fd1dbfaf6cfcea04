package requests

import (
	"encoding/json"

	"telegram-update-normalizer/internal/domain"
)

// EditMessageText заменяет текст сообщения.
type EditMessageText struct {
	target Target

	Text                  string
	ParseMode             ParseMode
	Entities              []domain.MessageEntity
	DisableWebPagePreview bool
	ReplyMarkup           *domain.InlineKeyboardMarkup
}

// NewEditMessageText создает запрос замены текста сообщения messageID в чате chatID.
func NewEditMessageText(chatID, messageID int64, text string) EditMessageText {
	return EditMessageText{target: chatTarget(chatID, messageID), Text: text}
}

// EditMessageTextFromMessage адресует запрос существующему сообщению; его содержимое не копируется.
func EditMessageTextFromMessage(m *domain.Message, text string) EditMessageText {
	return EditMessageText{target: messageTarget(m), Text: text}
}

// NewInlineEditMessageText создает запрос замены текста для inline-сообщения.
func NewInlineEditMessageText(inlineMessageID, text string) EditMessageText {
	return EditMessageText{target: inlineTarget(inlineMessageID), Text: text}
}

// Target возвращает адрес сообщения.
func (r EditMessageText) Target() Target { return r.target }

// Method возвращает имя метода Bot API.
func (EditMessageText) Method() string { return "editMessageText" }

// MarshalJSON кодирует тело запроса вместе с адресом.
func (r EditMessageText) MarshalJSON() ([]byte, error) { return json.Marshal(r.payload()) }

func (r EditMessageText) payload() any {
	return struct {
		addressing
		Text                  string                       `json:"text" validate:"min=1,max=4096"`
		ParseMode             ParseMode                    `json:"parse_mode,omitempty"`
		Entities              []domain.MessageEntity       `json:"entities,omitempty"`
		DisableWebPagePreview bool                         `json:"disable_web_page_preview,omitempty"`
		ReplyMarkup           *domain.InlineKeyboardMarkup `json:"reply_markup,omitempty"`
	}{r.target.wire(), r.Text, r.ParseMode, r.Entities, r.DisableWebPagePreview, r.ReplyMarkup}
}

// EditMessageCaption заменяет подпись медиасообщения. Пустая подпись удаляет ее.
type EditMessageCaption struct {
	target Target

	Caption         string
	ParseMode       ParseMode
	CaptionEntities []domain.MessageEntity
	ReplyMarkup     *domain.InlineKeyboardMarkup
}

// NewEditMessageCaption создает запрос замены подписи сообщения messageID в чате chatID.
func NewEditMessageCaption(chatID, messageID int64, caption string) EditMessageCaption {
	return EditMessageCaption{target: chatTarget(chatID, messageID), Caption: caption}
}

// EditMessageCaptionFromMessage создает запрос замены подписи для сообщения m.
func EditMessageCaptionFromMessage(m *domain.Message, caption string) EditMessageCaption {
	return EditMessageCaption{target: messageTarget(m), Caption: caption}
}

// NewInlineEditMessageCaption создает запрос замены подписи для inline-сообщения.
func NewInlineEditMessageCaption(inlineMessageID, caption string) EditMessageCaption {
	return EditMessageCaption{target: inlineTarget(inlineMessageID), Caption: caption}
}

// Target возвращает адрес сообщения.
func (r EditMessageCaption) Target() Target { return r.target }

// Method возвращает имя метода Bot API.
func (EditMessageCaption) Method() string { return "editMessageCaption" }

// MarshalJSON кодирует тело запроса вместе с адресом.
func (r EditMessageCaption) MarshalJSON() ([]byte, error) { return json.Marshal(r.payload()) }

func (r EditMessageCaption) payload() any {
	return struct {
		addressing
		Caption         string                       `json:"caption,omitempty" validate:"max=1024"`
		ParseMode       ParseMode                    `json:"parse_mode,omitempty"`
		CaptionEntities []domain.MessageEntity       `json:"caption_entities,omitempty"`
		ReplyMarkup     *domain.InlineKeyboardMarkup `json:"reply_markup,omitempty"`
	}{r.target.wire(), r.Caption, r.ParseMode, r.CaptionEntities, r.ReplyMarkup}
}

// EditMessageMedia заменяет медиа сообщения.
type EditMessageMedia struct {
	target Target

	Media       InputMedia
	ReplyMarkup *domain.InlineKeyboardMarkup
}

// NewEditMessageMedia создает запрос замены медиа сообщения messageID в чате chatID.
func NewEditMessageMedia(chatID, messageID int64, media InputMedia) EditMessageMedia {
	return EditMessageMedia{target: chatTarget(chatID, messageID), Media: media}
}

// EditMessageMediaFromMessage создает запрос замены медиа для сообщения m.
func EditMessageMediaFromMessage(m *domain.Message, media InputMedia) EditMessageMedia {
	return EditMessageMedia{target: messageTarget(m), Media: media}
}

// NewInlineEditMessageMedia создает запрос замены медиа для inline-сообщения.
func NewInlineEditMessageMedia(inlineMessageID string, media InputMedia) EditMessageMedia {
	return EditMessageMedia{target: inlineTarget(inlineMessageID), Media: media}
}

// Target возвращает адрес сообщения.
func (r EditMessageMedia) Target() Target { return r.target }

// Method возвращает имя метода Bot API.
func (EditMessageMedia) Method() string { return "editMessageMedia" }

// MarshalJSON кодирует тело запроса вместе с адресом.
func (r EditMessageMedia) MarshalJSON() ([]byte, error) { return json.Marshal(r.payload()) }

func (r EditMessageMedia) payload() any {
	return struct {
		addressing
		Media       InputMedia                   `json:"media"`
		ReplyMarkup *domain.InlineKeyboardMarkup `json:"reply_markup,omitempty"`
	}{r.target.wire(), r.Media, r.ReplyMarkup}
}

// EditMessageReplyMarkup заменяет встроенную клавиатуру. nil убирает клавиатуру.
type EditMessageReplyMarkup struct {
	target Target

	ReplyMarkup *domain.InlineKeyboardMarkup
}

// NewEditMessageReplyMarkup создает запрос замены клавиатуры сообщения messageID в чате chatID.
func NewEditMessageReplyMarkup(chatID, messageID int64, markup *domain.InlineKeyboardMarkup) EditMessageReplyMarkup {
	return EditMessageReplyMarkup{target: chatTarget(chatID, messageID), ReplyMarkup: markup}
}

// EditMessageReplyMarkupFromMessage создает запрос замены клавиатуры для сообщения m.
func EditMessageReplyMarkupFromMessage(m *domain.Message, markup *domain.InlineKeyboardMarkup) EditMessageReplyMarkup {
	return EditMessageReplyMarkup{target: messageTarget(m), ReplyMarkup: markup}
}

// NewInlineEditMessageReplyMarkup создает запрос замены клавиатуры для inline-сообщения.
func NewInlineEditMessageReplyMarkup(inlineMessageID string, markup *domain.InlineKeyboardMarkup) EditMessageReplyMarkup {
	return EditMessageReplyMarkup{target: inlineTarget(inlineMessageID), ReplyMarkup: markup}
}

// Target возвращает адрес сообщения.
func (r EditMessageReplyMarkup) Target() Target { return r.target }

// Method возвращает имя метода Bot API.
func (EditMessageReplyMarkup) Method() string { return "editMessageReplyMarkup" }

// MarshalJSON кодирует тело запроса вместе с адресом.
func (r EditMessageReplyMarkup) MarshalJSON() ([]byte, error) { return json.Marshal(r.payload()) }

func (r EditMessageReplyMarkup) payload() any {
	return struct {
		addressing
		ReplyMarkup *domain.InlineKeyboardMarkup `json:"reply_markup,omitempty"`
	}{r.target.wire(), r.ReplyMarkup}
}

// EditMessageLiveLocation перемещает точку живой геопозиции.
type EditMessageLiveLocation struct {
	target Target

	Latitude             float64
	Longitude            float64
	HorizontalAccuracy   *float64
	Heading              *int
	ProximityAlertRadius *int
	ReplyMarkup          *domain.InlineKeyboardMarkup
}

// NewEditMessageLiveLocation создает запрос перемещения live-локации сообщения messageID в чате chatID.
func NewEditMessageLiveLocation(chatID, messageID int64, latitude, longitude float64) EditMessageLiveLocation {
	return EditMessageLiveLocation{target: chatTarget(chatID, messageID), Latitude: latitude, Longitude: longitude}
}

// EditMessageLiveLocationFromMessage создает запрос перемещения live-локации для сообщения m.
func EditMessageLiveLocationFromMessage(m *domain.Message, latitude, longitude float64) EditMessageLiveLocation {
	return EditMessageLiveLocation{target: messageTarget(m), Latitude: latitude, Longitude: longitude}
}

// NewInlineEditMessageLiveLocation создает запрос перемещения live-локации для inline-сообщения.
func NewInlineEditMessageLiveLocation(inlineMessageID string, latitude, longitude float64) EditMessageLiveLocation {
	return EditMessageLiveLocation{target: inlineTarget(inlineMessageID), Latitude: latitude, Longitude: longitude}
}

// Target возвращает адрес сообщения.
func (r EditMessageLiveLocation) Target() Target { return r.target }

// Method возвращает имя метода Bot API.
func (EditMessageLiveLocation) Method() string { return "editMessageLiveLocation" }

// MarshalJSON кодирует тело запроса вместе с адресом.
func (r EditMessageLiveLocation) MarshalJSON() ([]byte, error) { return json.Marshal(r.payload()) }

func (r EditMessageLiveLocation) payload() any {
	return struct {
		addressing
		Latitude             float64                      `json:"latitude" validate:"gte=-90,lte=90"`
		Longitude            float64                      `json:"longitude" validate:"gte=-180,lte=180"`
		HorizontalAccuracy   *float64                     `json:"horizontal_accuracy,omitempty" validate:"omitempty,gte=0,lte=1500"`
		Heading              *int                         `json:"heading,omitempty" validate:"omitempty,gte=1,lte=360"`
		ProximityAlertRadius *int                         `json:"proximity_alert_radius,omitempty" validate:"omitempty,gte=1,lte=100000"`
		ReplyMarkup          *domain.InlineKeyboardMarkup `json:"reply_markup,omitempty"`
	}{r.target.wire(), r.Latitude, r.Longitude, r.HorizontalAccuracy, r.Heading, r.ProximityAlertRadius, r.ReplyMarkup}
}

// StopMessageLiveLocation останавливает обновление живой геопозиции.
type StopMessageLiveLocation struct {
	target Target

	ReplyMarkup *domain.InlineKeyboardMarkup
}

// NewStopMessageLiveLocation создает запрос остановки live-локации сообщения messageID в чате chatID.
func NewStopMessageLiveLocation(chatID, messageID int64) StopMessageLiveLocation {
	return StopMessageLiveLocation{target: chatTarget(chatID, messageID)}
}

// StopMessageLiveLocationFromMessage создает запрос остановки live-локации для сообщения m.
func StopMessageLiveLocationFromMessage(m *domain.Message) StopMessageLiveLocation {
	return StopMessageLiveLocation{target: messageTarget(m)}
}

// NewInlineStopMessageLiveLocation создает запрос остановки live-локации для inline-сообщения.
func NewInlineStopMessageLiveLocation(inlineMessageID string) StopMessageLiveLocation {
	return StopMessageLiveLocation{target: inlineTarget(inlineMessageID)}
}

// Target возвращает адрес сообщения.
func (r StopMessageLiveLocation) Target() Target { return r.target }

// Method возвращает имя метода Bot API.
func (StopMessageLiveLocation) Method() string { return "stopMessageLiveLocation" }

// MarshalJSON кодирует тело запроса вместе с адресом.
func (r StopMessageLiveLocation) MarshalJSON() ([]byte, error) { return json.Marshal(r.payload()) }

func (r StopMessageLiveLocation) payload() any {
	return struct {
		addressing
		ReplyMarkup *domain.InlineKeyboardMarkup `json:"reply_markup,omitempty"`
	}{r.target.wire(), r.ReplyMarkup}
}

// StopPoll закрывает опрос. Опросы адресуются только через чат.
type StopPoll struct {
	ChatID      int64                        `json:"chat_id" validate:"required"`
	MessageID   int64                        `json:"message_id" validate:"required"`
	ReplyMarkup *domain.InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

// NewStopPoll создает запрос закрытия опроса сообщения messageID в чате chatID.
func NewStopPoll(chatID, messageID int64) StopPoll {
	return StopPoll{ChatID: chatID, MessageID: messageID}
}

// StopPollFromMessage создает запрос закрытия опроса для сообщения m.
func StopPollFromMessage(m *domain.Message) StopPoll {
	return StopPoll{ChatID: m.Chat.ID, MessageID: m.ID}
}

// Method возвращает имя метода Bot API.
func (StopPoll) Method() string { return "stopPoll" }

// MarshalJSON кодирует поля запроса как есть.
func (r StopPoll) MarshalJSON() ([]byte, error) {
	type plain StopPoll
	return json.Marshal(plain(r))
}

func (r StopPoll) payload() any { return r }

// DeleteMessage удаляет сообщение. Удаление доступно только по адресу в чате.
type DeleteMessage struct {
	ChatID    int64 `json:"chat_id" validate:"required"`
	MessageID int64 `json:"message_id" validate:"required"`
}

// NewDeleteMessage создает запрос удаления сообщения messageID в чате chatID.
func NewDeleteMessage(chatID, messageID int64) DeleteMessage {
	return DeleteMessage{ChatID: chatID, MessageID: messageID}
}

// DeleteMessageFromMessage создает запрос удаления для сообщения m.
func DeleteMessageFromMessage(m *domain.Message) DeleteMessage {
	return DeleteMessage{ChatID: m.Chat.ID, MessageID: m.ID}
}

// Method возвращает имя метода Bot API.
func (DeleteMessage) Method() string { return "deleteMessage" }

// MarshalJSON кодирует поля запроса как есть.
func (r DeleteMessage) MarshalJSON() ([]byte, error) {
	type plain DeleteMessage
	return json.Marshal(plain(r))
}

func (r DeleteMessage) payload() any { return r }
