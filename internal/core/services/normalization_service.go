package services

import (
	"fmt"
	"log/slog"

	"telegram-update-normalizer/internal/domain"
)

// Option — функциональная опция для настройки NormalizationService.
type Option func(*NormalizationService)

// WithDiagnostics включает сохранение отброшенных полей (Message.Ignored,
// Update.Ignored, Chat.Extras) и отладочное логирование неоднозначных записей.
func WithDiagnostics(enabled bool) Option {
	return func(s *NormalizationService) {
		s.diagnostics = enabled
	}
}

// WithMaxDepth ограничивает глубину вложенности сообщений (ответы, закрепленные).
// 0 означает отсутствие ограничения.
func WithMaxDepth(n int) Option {
	return func(s *NormalizationService) {
		if n >= 0 {
			s.maxDepth = n
		}
	}
}

// WithLogger устанавливает логгер для сервиса.
func WithLogger(l *slog.Logger) Option {
	return func(s *NormalizationService) {
		if l != nil {
			s.log = l
		}
	}
}

// NormalizationService переводит сырые записи в доменную модель.
// Сервис не хранит состояние и безопасен для одновременного использования.
type NormalizationService struct {
	diagnostics bool
	maxDepth    int
	log         *slog.Logger
}

// NewNormalizationService создает новый NormalizationService с использованием функциональных опций.
func NewNormalizationService(opts ...Option) *NormalizationService {
	s := &NormalizationService{
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NormalizeMessage нормализует сообщение вместе со всей цепочкой вложенных сообщений.
func (s *NormalizationService) NormalizeMessage(raw *domain.RawMessage) (*domain.Message, error) {
	c := s.newConverter()
	root, err := c.schedule(raw, 0)
	if err != nil {
		return nil, err
	}
	if err := c.run(); err != nil {
		return nil, err
	}
	return root, nil
}

// NormalizeChat нормализует чат. Неизвестный тип чата дает *domain.NormalizationError.
func (s *NormalizationService) NormalizeChat(raw *domain.RawChat) (domain.Chat, error) {
	c := s.newConverter()
	chat, err := c.chat(raw, 0)
	if err != nil {
		return domain.Chat{}, err
	}
	if err := c.run(); err != nil {
		return domain.Chat{}, err
	}
	return chat, nil
}

// NormalizeUpdate определяет вид обновления по первому заполненному полю
// в порядке объявления протокола (my_chat_member раньше chat_member).
// Обновление без известной нагрузки получает вид UpdateKindUnknown.
func (s *NormalizationService) NormalizeUpdate(raw *domain.RawEvent) (domain.Update, error) {
	c := s.newConverter()
	update := domain.Update{ID: raw.UpdateID, Kind: domain.UpdateKindUnknown}

	message := func(m *domain.RawMessage) func() (domain.UpdatePayload, error) {
		return func() (domain.UpdatePayload, error) {
			return c.schedule(m, 0)
		}
	}
	payloads := []struct {
		kind  domain.UpdateKind
		ok    bool
		build func() (domain.UpdatePayload, error)
	}{
		{domain.UpdateKindMessage, raw.Message != nil, message(raw.Message)},
		{domain.UpdateKindEditedMessage, raw.EditedMessage != nil, message(raw.EditedMessage)},
		{domain.UpdateKindChannelPost, raw.ChannelPost != nil, message(raw.ChannelPost)},
		{domain.UpdateKindEditedChannelPost, raw.EditedChannelPost != nil, message(raw.EditedChannelPost)},
		{domain.UpdateKindInlineQuery, raw.InlineQuery != nil, func() (domain.UpdatePayload, error) {
			return raw.InlineQuery, nil
		}},
		{domain.UpdateKindChosenInlineResult, raw.ChosenInlineResult != nil, func() (domain.UpdatePayload, error) {
			return raw.ChosenInlineResult, nil
		}},
		{domain.UpdateKindCallbackQuery, raw.CallbackQuery != nil, func() (domain.UpdatePayload, error) {
			return c.callbackQuery(raw.CallbackQuery)
		}},
		{domain.UpdateKindShippingQuery, raw.ShippingQuery != nil, func() (domain.UpdatePayload, error) {
			return raw.ShippingQuery, nil
		}},
		{domain.UpdateKindPreCheckoutQuery, raw.PreCheckoutQuery != nil, func() (domain.UpdatePayload, error) {
			return raw.PreCheckoutQuery, nil
		}},
		{domain.UpdateKindPoll, raw.Poll != nil, func() (domain.UpdatePayload, error) {
			return raw.Poll, nil
		}},
		{domain.UpdateKindPollAnswer, raw.PollAnswer != nil, func() (domain.UpdatePayload, error) {
			return raw.PollAnswer, nil
		}},
		{domain.UpdateKindMyChatMember, raw.MyChatMember != nil, func() (domain.UpdatePayload, error) {
			return c.chatMemberUpdated(raw.MyChatMember)
		}},
		{domain.UpdateKindChatMember, raw.ChatMember != nil, func() (domain.UpdatePayload, error) {
			return c.chatMemberUpdated(raw.ChatMember)
		}},
	}

	var ignored []string
	for _, p := range payloads {
		if !p.ok {
			continue
		}
		if update.Kind != domain.UpdateKindUnknown {
			ignored = append(ignored, string(p.kind))
			continue
		}
		payload, err := p.build()
		if err != nil {
			return domain.Update{}, fmt.Errorf("update %d: %w", raw.UpdateID, err)
		}
		update.Kind = p.kind
		update.Payload = payload
	}

	if err := c.run(); err != nil {
		return domain.Update{}, fmt.Errorf("update %d: %w", raw.UpdateID, err)
	}

	if len(ignored) > 0 && s.diagnostics {
		update.Ignored = ignored
		s.log.Debug("update carries more than one payload",
			"update_id", raw.UpdateID, "kind", update.Kind, "ignored", ignored)
	}
	return update, nil
}

// NormalizeBatch нормализует события независимо друг от друга.
// Ошибка одного события попадает в Failures и не влияет на остальные.
func (s *NormalizationService) NormalizeBatch(events []domain.RawEvent) domain.Batch {
	batch := domain.Batch{Updates: make([]domain.Update, 0, len(events))}
	for i := range events {
		update, err := s.NormalizeUpdate(&events[i])
		if err != nil {
			s.log.Warn("failed to normalize update", "update_id", events[i].UpdateID, "error", err)
			batch.Failures = append(batch.Failures, domain.EventFailure{
				Index:    i,
				UpdateID: events[i].UpdateID,
				Error:    err.Error(),
			})
			continue
		}
		batch.Updates = append(batch.Updates, update)
	}
	return batch
}

func (s *NormalizationService) newConverter() *converter {
	return &converter{svc: s}
}
