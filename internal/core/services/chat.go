package services

import (
	"fmt"

	"telegram-update-normalizer/internal/domain"
)

// chatField связывает поле общей записи чата с видами чатов, для которых оно допустимо.
type chatField struct {
	name  string
	value func(*domain.RawChat) (any, bool)
	kinds []domain.ChatKind
}

var (
	allKinds    = []domain.ChatKind{domain.ChatKindPrivate, domain.ChatKindGroup, domain.ChatKindSupergroup, domain.ChatKindChannel}
	privateOnly = []domain.ChatKind{domain.ChatKindPrivate}
	groupKinds  = []domain.ChatKind{domain.ChatKindGroup, domain.ChatKindSupergroup, domain.ChatKindChannel}
	multiMember = []domain.ChatKind{domain.ChatKindGroup, domain.ChatKindSupergroup}
	publicKinds = []domain.ChatKind{domain.ChatKindPrivate, domain.ChatKindSupergroup, domain.ChatKindChannel}
	linkedKinds = []domain.ChatKind{domain.ChatKindSupergroup, domain.ChatKindChannel}
	superOnly   = []domain.ChatKind{domain.ChatKindSupergroup}
)

func stringField(get func(*domain.RawChat) string) func(*domain.RawChat) (any, bool) {
	return func(c *domain.RawChat) (any, bool) {
		v := get(c)
		return v, v != ""
	}
}

// chatFields перечисляет необязательные поля записи чата в порядке протокола.
var chatFields = []chatField{
	{"title", stringField(func(c *domain.RawChat) string { return c.Title }), groupKinds},
	{"username", stringField(func(c *domain.RawChat) string { return c.Username }), publicKinds},
	{"first_name", stringField(func(c *domain.RawChat) string { return c.FirstName }), privateOnly},
	{"last_name", stringField(func(c *domain.RawChat) string { return c.LastName }), privateOnly},
	{"photo", func(c *domain.RawChat) (any, bool) { return c.Photo, c.Photo != nil }, allKinds},
	{"bio", stringField(func(c *domain.RawChat) string { return c.Bio }), privateOnly},
	{"description", stringField(func(c *domain.RawChat) string { return c.Description }), groupKinds},
	{"invite_link", stringField(func(c *domain.RawChat) string { return c.InviteLink }), groupKinds},
	{"pinned_message", func(c *domain.RawChat) (any, bool) {
		if c.PinnedMessage == nil {
			return nil, false
		}
		return c.PinnedMessage.MessageID, true
	}, groupKinds},
	{"permissions", func(c *domain.RawChat) (any, bool) { return c.Permissions, c.Permissions != nil }, multiMember},
	{"slow_mode_delay", func(c *domain.RawChat) (any, bool) {
		if c.SlowModeDelay == nil {
			return nil, false
		}
		return *c.SlowModeDelay, true
	}, superOnly},
	{"sticker_set_name", stringField(func(c *domain.RawChat) string { return c.StickerSetName }), superOnly},
	{"can_set_sticker_set", func(c *domain.RawChat) (any, bool) {
		if c.CanSetStickerSet == nil {
			return nil, false
		}
		return *c.CanSetStickerSet, true
	}, superOnly},
	{"linked_chat_id", func(c *domain.RawChat) (any, bool) {
		if c.LinkedChatID == nil {
			return nil, false
		}
		return *c.LinkedChatID, true
	}, linkedKinds},
	{"location", func(c *domain.RawChat) (any, bool) { return c.Location, c.Location != nil }, superOnly},
}

func (f chatField) allowed(kind domain.ChatKind) bool {
	for _, k := range f.kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// extras собирает заполненные поля, недопустимые для вида чата.
func extras(raw *domain.RawChat, kind domain.ChatKind) map[string]any {
	var out map[string]any
	for _, f := range chatFields {
		if f.allowed(kind) {
			continue
		}
		v, ok := f.value(raw)
		if !ok {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		out[f.name] = v
	}
	return out
}

// chat строит представление чата по его виду. Закрепленное сообщение
// планируется на уровень глубже родителя.
func (c *converter) chat(raw *domain.RawChat, depth int) (domain.Chat, error) {
	kind, ok := domain.ParseChatKind(raw.Type)
	if !ok {
		return domain.Chat{}, &domain.NormalizationError{
			Reason: fmt.Sprintf("unknown chat type %q", raw.Type),
			ChatID: raw.ID,
		}
	}

	var pinned *domain.Message
	if raw.PinnedMessage != nil && kind != domain.ChatKindPrivate {
		m, err := c.schedule(raw.PinnedMessage, depth+1)
		if err != nil {
			return domain.Chat{}, err
		}
		pinned = m
	}

	chat := domain.Chat{ID: raw.ID, Kind: kind}
	switch kind {
	case domain.ChatKindPrivate:
		chat.Details = domain.PrivateChat{
			Username:  raw.Username,
			FirstName: raw.FirstName,
			LastName:  raw.LastName,
			Photo:     raw.Photo,
			Bio:       raw.Bio,
		}
	case domain.ChatKindGroup:
		chat.Details = domain.GroupChat{
			Title:         raw.Title,
			Photo:         raw.Photo,
			Description:   raw.Description,
			InviteLink:    raw.InviteLink,
			PinnedMessage: pinned,
			Permissions:   raw.Permissions,
		}
	case domain.ChatKindSupergroup:
		chat.Details = domain.SupergroupChat{
			Title:            raw.Title,
			Username:         raw.Username,
			Photo:            raw.Photo,
			Description:      raw.Description,
			InviteLink:       raw.InviteLink,
			PinnedMessage:    pinned,
			Permissions:      raw.Permissions,
			SlowModeDelay:    raw.SlowModeDelay,
			StickerSetName:   raw.StickerSetName,
			CanSetStickerSet: raw.CanSetStickerSet,
			LinkedChatID:     raw.LinkedChatID,
			Location:         raw.Location,
		}
	case domain.ChatKindChannel:
		chat.Details = domain.ChannelChat{
			Title:         raw.Title,
			Username:      raw.Username,
			Photo:         raw.Photo,
			Description:   raw.Description,
			InviteLink:    raw.InviteLink,
			PinnedMessage: pinned,
			LinkedChatID:  raw.LinkedChatID,
		}
	}

	if c.svc.diagnostics {
		if ex := extras(raw, kind); len(ex) > 0 {
			chat.Extras = ex
			c.svc.log.Debug("chat carries fields not valid for its kind",
				"chat_id", raw.ID, "kind", kind, "fields", len(ex))
		}
	}
	return chat, nil
}
