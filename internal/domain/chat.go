package domain

// ChatKind определяет вид чата по полю type.
type ChatKind string

const (
	ChatKindPrivate    ChatKind = "private"
	ChatKindGroup      ChatKind = "group"
	ChatKindSupergroup ChatKind = "supergroup"
	ChatKindChannel    ChatKind = "channel"
)

// ParseChatKind возвращает вид чата и false для неизвестного значения.
func ParseChatKind(s string) (ChatKind, bool) {
	switch k := ChatKind(s); k {
	case ChatKindPrivate, ChatKindGroup, ChatKindSupergroup, ChatKindChannel:
		return k, true
	}
	return "", false
}

// Chat описывает нормализованный чат. Details содержит только поля, допустимые для Kind.
type Chat struct {
	ID      int64       `json:"id"`
	Kind    ChatKind    `json:"kind"`
	Details ChatDetails `json:"details"`
	// Extras хранит заполненные поля, недопустимые для этого вида чата.
	// Сохраняются только в режиме диагностики, чтобы замечать дрейф схемы.
	Extras map[string]any `json:"extras,omitempty"`
}

// Title возвращает отображаемое имя чата независимо от его вида.
func (c Chat) Title() string {
	switch d := c.Details.(type) {
	case PrivateChat:
		if d.LastName != "" {
			return d.FirstName + " " + d.LastName
		}
		return d.FirstName
	case GroupChat:
		return d.Title
	case SupergroupChat:
		return d.Title
	case ChannelChat:
		return d.Title
	}
	return ""
}

// Username возвращает публичное имя чата, если оно есть.
func (c Chat) Username() string {
	switch d := c.Details.(type) {
	case PrivateChat:
		return d.Username
	case SupergroupChat:
		return d.Username
	case ChannelChat:
		return d.Username
	}
	return ""
}

// PinnedMessage возвращает закрепленное сообщение (заполняется только getChat).
func (c Chat) PinnedMessage() *Message {
	switch d := c.Details.(type) {
	case GroupChat:
		return d.PinnedMessage
	case SupergroupChat:
		return d.PinnedMessage
	case ChannelChat:
		return d.PinnedMessage
	}
	return nil
}

// ChatDetails закрывает множество представлений чата по видам.
type ChatDetails interface {
	ChatKind() ChatKind
	isChatDetails()
}

// PrivateChat описывает личный чат с пользователем.
type PrivateChat struct {
	Username  string     `json:"username,omitempty"`
	FirstName string     `json:"first_name,omitempty"`
	LastName  string     `json:"last_name,omitempty"`
	Photo     *ChatPhoto `json:"photo,omitempty"`
	Bio       string     `json:"bio,omitempty"`
}

// GroupChat описывает обычную группу.
type GroupChat struct {
	Title         string           `json:"title"`
	Photo         *ChatPhoto       `json:"photo,omitempty"`
	Description   string           `json:"description,omitempty"`
	InviteLink    string           `json:"invite_link,omitempty"`
	PinnedMessage *Message         `json:"pinned_message,omitempty"`
	Permissions   *ChatPermissions `json:"permissions,omitempty"`
}

// SupergroupChat описывает супергруппу.
type SupergroupChat struct {
	Title            string           `json:"title"`
	Username         string           `json:"username,omitempty"`
	Photo            *ChatPhoto       `json:"photo,omitempty"`
	Description      string           `json:"description,omitempty"`
	InviteLink       string           `json:"invite_link,omitempty"`
	PinnedMessage    *Message         `json:"pinned_message,omitempty"`
	Permissions      *ChatPermissions `json:"permissions,omitempty"`
	SlowModeDelay    *int             `json:"slow_mode_delay,omitempty"`
	StickerSetName   string           `json:"sticker_set_name,omitempty"`
	CanSetStickerSet *bool            `json:"can_set_sticker_set,omitempty"`
	LinkedChatID     *int64           `json:"linked_chat_id,omitempty"`
	Location         *ChatLocation    `json:"location,omitempty"`
}

// ChannelChat описывает канал.
type ChannelChat struct {
	Title         string     `json:"title"`
	Username      string     `json:"username,omitempty"`
	Photo         *ChatPhoto `json:"photo,omitempty"`
	Description   string     `json:"description,omitempty"`
	InviteLink    string     `json:"invite_link,omitempty"`
	PinnedMessage *Message   `json:"pinned_message,omitempty"`
	LinkedChatID  *int64     `json:"linked_chat_id,omitempty"`
}

func (PrivateChat) ChatKind() ChatKind    { return ChatKindPrivate }
func (GroupChat) ChatKind() ChatKind      { return ChatKindGroup }
func (SupergroupChat) ChatKind() ChatKind { return ChatKindSupergroup }
func (ChannelChat) ChatKind() ChatKind    { return ChatKindChannel }

func (PrivateChat) isChatDetails()    {}
func (GroupChat) isChatDetails()      {}
func (SupergroupChat) isChatDetails() {}
func (ChannelChat) isChatDetails()    {}
