package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Записи wire* встраивают Raw-типы и перекрывают их обязательные и вложенные поля
// указателями. Событие разбирается одним вызовом json.Unmarshal, наличие полей
// проверяется после разбора.

type wireEvent struct {
	RawEvent
	UpdateID          *int64                 `json:"update_id"`
	Message           *wireMessage           `json:"message"`
	EditedMessage     *wireMessage           `json:"edited_message"`
	ChannelPost       *wireMessage           `json:"channel_post"`
	EditedChannelPost *wireMessage           `json:"edited_channel_post"`
	CallbackQuery     *wireCallbackQuery     `json:"callback_query"`
	MyChatMember      *wireChatMemberUpdated `json:"my_chat_member"`
	ChatMember        *wireChatMemberUpdated `json:"chat_member"`
}

type wireMessage struct {
	RawMessage
	MessageID       *int64       `json:"message_id"`
	Date            *UnixTime    `json:"date"`
	Chat            *wireChat    `json:"chat"`
	SenderChat      *wireChat    `json:"sender_chat"`
	ForwardFromChat *wireChat    `json:"forward_from_chat"`
	ReplyToMessage  *wireMessage `json:"reply_to_message"`
	PinnedMessage   *wireMessage `json:"pinned_message"`
}

type wireChat struct {
	RawChat
	ID            *int64       `json:"id"`
	Type          *string      `json:"type"`
	PinnedMessage *wireMessage `json:"pinned_message"`
}

type wireCallbackQuery struct {
	RawCallbackQuery
	Message *wireMessage `json:"message"`
}

type wireChatMemberUpdated struct {
	RawChatMemberUpdated
	Chat *wireChat `json:"chat"`
}

// DecodeEvent разбирает одно обновление и проверяет обязательные поля на любой глубине.
// Отсутствующее поле возвращается как *DecodeError с полным путем, ошибки
// encoding/json возвращаются как есть.
func DecodeEvent(data []byte) (*RawEvent, error) {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	if w.UpdateID == nil {
		return nil, missingField(nil, "update_id")
	}

	e := &w.RawEvent
	e.UpdateID = *w.UpdateID

	var r resolver
	e.Message = r.push(w.Message, nil, "message")
	e.EditedMessage = r.push(w.EditedMessage, nil, "edited_message")
	e.ChannelPost = r.push(w.ChannelPost, nil, "channel_post")
	e.EditedChannelPost = r.push(w.EditedChannelPost, nil, "edited_channel_post")

	if q := w.CallbackQuery; q != nil {
		q.RawCallbackQuery.Message = r.push(q.Message, &fieldPath{name: "callback_query"}, "message")
		e.CallbackQuery = &q.RawCallbackQuery
	}

	var err error
	if e.MyChatMember, err = r.memberUpdate(w.MyChatMember, "my_chat_member"); err != nil {
		return nil, err
	}
	if e.ChatMember, err = r.memberUpdate(w.ChatMember, "chat_member"); err != nil {
		return nil, err
	}

	if err := r.run(); err != nil {
		return nil, err
	}
	return e, nil
}

// DecodeMessage разбирает отдельное сообщение; пути в ошибках считаются от его корня.
func DecodeMessage(data []byte) (*RawMessage, error) {
	var w wireMessage
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	var r resolver
	r.stack = append(r.stack, pendingMessage{wire: &w})
	if err := r.run(); err != nil {
		return nil, err
	}
	return &w.RawMessage, nil
}

type pendingMessage struct {
	wire *wireMessage
	path *fieldPath
}

// resolver переносит значения из wire-записей в Raw-типы. Вложенные сообщения
// обходятся через явный стек, поэтому глубина цепочки не ограничена стеком вызовов.
type resolver struct {
	stack []pendingMessage
}

// push откладывает проверку сообщения и сразу возвращает указатель на его Raw-часть.
func (r *resolver) push(w *wireMessage, parent *fieldPath, name string) *RawMessage {
	if w == nil {
		return nil
	}
	r.stack = append(r.stack, pendingMessage{wire: w, path: parent.child(name)})
	return &w.RawMessage
}

func (r *resolver) run() error {
	for len(r.stack) > 0 {
		p := r.stack[len(r.stack)-1]
		r.stack = r.stack[:len(r.stack)-1]
		if err := r.message(p.wire, p.path); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) message(w *wireMessage, path *fieldPath) error {
	switch {
	case w.MessageID == nil:
		return missingField(path, "message_id")
	case w.Date == nil:
		return missingField(path, "date")
	case w.Chat == nil:
		return missingField(path, "chat")
	}

	m := &w.RawMessage
	m.MessageID = *w.MessageID
	m.Date = *w.Date

	chat, err := r.chat(w.Chat, path, "chat")
	if err != nil {
		return err
	}
	m.Chat = *chat

	if w.SenderChat != nil {
		if m.SenderChat, err = r.chat(w.SenderChat, path, "sender_chat"); err != nil {
			return err
		}
	}
	if w.ForwardFromChat != nil {
		if m.ForwardFromChat, err = r.chat(w.ForwardFromChat, path, "forward_from_chat"); err != nil {
			return err
		}
	}

	m.ReplyToMessage = r.push(w.ReplyToMessage, path, "reply_to_message")
	m.PinnedMessage = r.push(w.PinnedMessage, path, "pinned_message")
	return nil
}

func (r *resolver) chat(w *wireChat, parent *fieldPath, name string) (*RawChat, error) {
	if w.ID == nil || w.Type == nil {
		path := parent.child(name)
		if w.ID == nil {
			return nil, missingField(path, "id")
		}
		return nil, missingField(path, "type")
	}

	c := &w.RawChat
	c.ID = *w.ID
	c.Type = *w.Type
	if w.PinnedMessage != nil {
		c.PinnedMessage = r.push(w.PinnedMessage, parent.child(name), "pinned_message")
	}
	return c, nil
}

func (r *resolver) memberUpdate(w *wireChatMemberUpdated, name string) (*RawChatMemberUpdated, error) {
	if w == nil {
		return nil, nil
	}
	path := &fieldPath{name: name}
	if w.Chat == nil {
		return nil, missingField(path, "chat")
	}
	chat, err := r.chat(w.Chat, path, "chat")
	if err != nil {
		return nil, err
	}
	w.RawChatMemberUpdated.Chat = *chat
	return &w.RawChatMemberUpdated, nil
}

// fieldPath хранит путь к полю как ссылку на родителя. Строка собирается
// только для ошибки.
type fieldPath struct {
	parent *fieldPath
	name   string
}

func (p *fieldPath) child(name string) *fieldPath {
	return &fieldPath{parent: p, name: name}
}

// String склеивает сегменты через точку. Повторяющиеся подряд сегменты
// сворачиваются в name*N: "message.reply_to_message*3.chat".
func (p *fieldPath) String() string {
	var segments []string
	for n := p; n != nil; n = n.parent {
		segments = append(segments, n.name)
	}

	var b strings.Builder
	for i := len(segments) - 1; i >= 0; {
		j := i
		for j > 0 && segments[j-1] == segments[i] {
			j--
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(segments[i])
		if run := i - j + 1; run > 1 {
			b.WriteByte('*')
			b.WriteString(strconv.Itoa(run))
		}
		i = j - 1
	}
	return b.String()
}
