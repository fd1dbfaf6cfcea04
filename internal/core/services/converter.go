package services

import (
	"fmt"

	"telegram-update-normalizer/internal/domain"
)

// job описывает отложенную конвертацию вложенного сообщения. Результат пишется в dst,
// на который уже ссылается родитель.
type job struct {
	raw   *domain.RawMessage
	dst   *domain.Message
	depth int
}

// converter выполняет один проход нормализации. Вложенные сообщения не
// обходятся рекурсией: они складываются в собственный стек и разбираются в цикле,
// поэтому глубина цепочки ответов не влияет на стек горутины.
type converter struct {
	svc   *NormalizationService
	stack []job
}

// schedule выделяет доменное сообщение и откладывает его заполнение.
func (c *converter) schedule(raw *domain.RawMessage, depth int) (*domain.Message, error) {
	if limit := c.svc.maxDepth; limit > 0 && depth > limit {
		return nil, &domain.NormalizationError{
			Reason: fmt.Sprintf("message %d is nested deeper than %d levels", raw.MessageID, limit),
		}
	}
	dst := &domain.Message{}
	c.stack = append(c.stack, job{raw: raw, dst: dst, depth: depth})
	return dst, nil
}

// run разбирает стек до конца.
func (c *converter) run() error {
	for len(c.stack) > 0 {
		j := c.stack[len(c.stack)-1]
		c.stack = c.stack[:len(c.stack)-1]
		if err := c.message(j.raw, j.dst, j.depth); err != nil {
			return err
		}
	}
	return nil
}

// message заполняет dst по сырой записи. Вложенные сообщения только планируются.
func (c *converter) message(raw *domain.RawMessage, dst *domain.Message, depth int) error {
	dst.ID = raw.MessageID
	dst.From = raw.From
	dst.Date = raw.Date.Time
	dst.ViaBot = raw.ViaBot
	dst.EditDate = raw.EditDate.Ptr()
	dst.MediaGroupID = raw.MediaGroupID
	dst.AuthorSignature = raw.AuthorSignature
	dst.ReplyMarkup = raw.ReplyMarkup

	chat, err := c.chat(&raw.Chat, depth)
	if err != nil {
		return err
	}
	dst.Chat = chat

	if raw.SenderChat != nil {
		sender, err := c.chat(raw.SenderChat, depth)
		if err != nil {
			return err
		}
		dst.SenderChat = &sender
	}

	forward, err := c.forward(raw, depth)
	if err != nil {
		return err
	}
	dst.Forward = forward

	if raw.ReplyToMessage != nil {
		reply, err := c.schedule(raw.ReplyToMessage, depth+1)
		if err != nil {
			return err
		}
		dst.ReplyTo = reply
	}

	content, ignored, err := c.content(raw, depth)
	if err != nil {
		return err
	}
	dst.Kind = content.Kind()
	dst.Content = content

	if len(ignored) > 0 && c.svc.diagnostics {
		dst.Ignored = ignored
		c.svc.log.Debug("message carries more than one content field",
			"message_id", raw.MessageID, "chat_id", raw.Chat.ID, "kind", dst.Kind, "ignored", ignored)
	}
	return nil
}

func (c *converter) forward(raw *domain.RawMessage, depth int) (*domain.ForwardOrigin, error) {
	if raw.ForwardDate == nil && raw.ForwardFrom == nil && raw.ForwardFromChat == nil && raw.ForwardSenderName == "" {
		return nil, nil
	}
	origin := &domain.ForwardOrigin{
		From:       raw.ForwardFrom,
		Signature:  raw.ForwardSignature,
		SenderName: raw.ForwardSenderName,
	}
	if raw.ForwardDate != nil {
		origin.Date = raw.ForwardDate.Time
	}
	if raw.ForwardFromMessageID != nil {
		origin.MessageID = *raw.ForwardFromMessageID
	}
	if raw.ForwardFromChat != nil {
		chat, err := c.chat(raw.ForwardFromChat, depth)
		if err != nil {
			return nil, err
		}
		origin.FromChat = &chat
	}
	return origin, nil
}

func (c *converter) callbackQuery(raw *domain.RawCallbackQuery) (*domain.CallbackQuery, error) {
	q := &domain.CallbackQuery{
		ID:              raw.ID,
		From:            raw.From,
		InlineMessageID: raw.InlineMessageID,
		ChatInstance:    raw.ChatInstance,
		Data:            raw.Data,
		GameShortName:   raw.GameShortName,
	}
	if raw.Message != nil {
		m, err := c.schedule(raw.Message, 0)
		if err != nil {
			return nil, err
		}
		q.Message = m
	}
	return q, nil
}

func (c *converter) chatMemberUpdated(raw *domain.RawChatMemberUpdated) (*domain.ChatMemberUpdated, error) {
	chat, err := c.chat(&raw.Chat, 0)
	if err != nil {
		return nil, err
	}
	return &domain.ChatMemberUpdated{
		Chat:          chat,
		From:          raw.From,
		Date:          raw.Date.Time,
		OldChatMember: raw.OldChatMember,
		NewChatMember: raw.NewChatMember,
		InviteLink:    raw.InviteLink,
	}, nil
}
