package requests

import "telegram-update-normalizer/internal/domain"

// ParseMode — режим разметки текста и подписей.
type ParseMode string

const (
	ParseModeMarkdownV2 ParseMode = "MarkdownV2"
	ParseModeMarkdown   ParseMode = "Markdown"
	ParseModeHTML       ParseMode = "HTML"
)

// InputMedia — новое медиа для editMessageMedia. Media — file_id, URL или attach://имя.
type InputMedia struct {
	Type            string                 `json:"type" validate:"oneof=photo video animation audio document"`
	Media           string                 `json:"media" validate:"required"`
	Thumb           string                 `json:"thumb,omitempty"`
	Caption         string                 `json:"caption,omitempty" validate:"max=1024"`
	ParseMode       ParseMode              `json:"parse_mode,omitempty"`
	CaptionEntities []domain.MessageEntity `json:"caption_entities,omitempty"`

	Width             int  `json:"width,omitempty" validate:"gte=0"`
	Height            int  `json:"height,omitempty" validate:"gte=0"`
	Duration          int  `json:"duration,omitempty" validate:"gte=0"`
	SupportsStreaming bool `json:"supports_streaming,omitempty"`

	Performer string `json:"performer,omitempty"`
	Title     string `json:"title,omitempty"`

	DisableContentTypeDetection bool `json:"disable_content_type_detection,omitempty"`
}

// NewInputMediaPhoto создает описание фото; media содержит file_id, URL или attach://имя.
func NewInputMediaPhoto(media string) InputMedia { return InputMedia{Type: "photo", Media: media} }

// NewInputMediaVideo создает описание видео.
func NewInputMediaVideo(media string) InputMedia { return InputMedia{Type: "video", Media: media} }

// NewInputMediaAnimation создает описание анимации.
func NewInputMediaAnimation(media string) InputMedia {
	return InputMedia{Type: "animation", Media: media}
}

// NewInputMediaAudio создает описание аудио.
func NewInputMediaAudio(media string) InputMedia { return InputMedia{Type: "audio", Media: media} }

// NewInputMediaDocument создает описание документа.
func NewInputMediaDocument(media string) InputMedia {
	return InputMedia{Type: "document", Media: media}
}
