package domain

import "time"

// EventFailure описывает событие пакета, которое не удалось разобрать или нормализовать.
// Ошибка одного события не влияет на остальные.
type EventFailure struct {
	Index    int    `json:"index"`
	UpdateID int64  `json:"update_id,omitempty"`
	Error    string `json:"error"`
}

// Batch содержит результат обработки пакета событий.
type Batch struct {
	Updates  []Update       `json:"updates"`
	Failures []EventFailure `json:"failures,omitempty"`
}

// UpdateSummary хранит плоское представление обновления для экспорта в таблицы.
type UpdateSummary struct {
	UpdateID    int64       `json:"update_id"`
	Kind        UpdateKind  `json:"kind"`
	ChatID      int64       `json:"chat_id,omitempty"`
	ChatKind    ChatKind    `json:"chat_kind,omitempty"`
	ChatTitle   string      `json:"chat_title,omitempty"`
	MessageID   int64       `json:"message_id,omitempty"`
	MessageKind MessageKind `json:"message_kind,omitempty"`
	FromID      int64       `json:"from_id,omitempty"`
	Date        time.Time   `json:"date"`
	Text        string      `json:"text,omitempty"`
	ReplyDepth  int         `json:"reply_depth"`
}

// Summary сворачивает обновление в одну строку.
func (u Update) Summary() UpdateSummary {
	s := UpdateSummary{UpdateID: u.ID, Kind: u.Kind}

	var from *User
	switch p := u.Payload.(type) {
	case *Message:
		s.fillMessage(p)
		from = p.From
	case *CallbackQuery:
		from = &p.From
		s.Text = p.Data
		if p.Message != nil {
			s.ChatID = p.Message.Chat.ID
			s.ChatKind = p.Message.Chat.Kind
			s.ChatTitle = p.Message.Chat.Title()
			s.MessageID = p.Message.ID
		}
	case *ChatMemberUpdated:
		from = &p.From
		s.ChatID = p.Chat.ID
		s.ChatKind = p.Chat.Kind
		s.ChatTitle = p.Chat.Title()
		s.Date = p.Date
		s.Text = p.OldChatMember.Status + " -> " + p.NewChatMember.Status
	case *InlineQuery:
		from = &p.From
		s.Text = p.Query
	case *ChosenInlineResult:
		from = &p.From
		s.Text = p.Query
	case *ShippingQuery:
		from = &p.From
		s.Text = p.InvoicePayload
	case *PreCheckoutQuery:
		from = &p.From
		s.Text = p.InvoicePayload
	case *Poll:
		s.Text = p.Question
	case *PollAnswer:
		from = &p.User
	}
	if from != nil {
		s.FromID = from.ID
	}
	return s
}

func (s *UpdateSummary) fillMessage(m *Message) {
	s.ChatID = m.Chat.ID
	s.ChatKind = m.Chat.Kind
	s.ChatTitle = m.Chat.Title()
	s.MessageID = m.ID
	s.MessageKind = m.Kind
	s.Date = m.Date
	s.Text = m.Text()
	for r := m.ReplyTo; r != nil; r = r.ReplyTo {
		s.ReplyDepth++
	}
}
