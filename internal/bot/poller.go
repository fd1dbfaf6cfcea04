// Package bot содержит цикл long polling: обновления забираются через
// ports.BotTransport, разбираются и нормализуются моделью.
package bot

import (
	"context"
	"log/slog"
	"time"

	"telegram-update-normalizer/internal/domain"
	"telegram-update-normalizer/internal/ports"
	"telegram-update-normalizer/internal/requests"
)

const defaultRetryPause = 3 * time.Second

// Handler получает каждое нормализованное обновление.
type Handler func(ctx context.Context, update domain.Update)

// Option — функциональная опция для настройки Poller.
type Option func(*Poller)

// WithPollTimeout задает таймаут long polling в секундах.
func WithPollTimeout(seconds int) Option {
	return func(p *Poller) {
		if seconds >= 0 {
			p.timeout = seconds
		}
	}
}

// WithAllowedUpdates ограничивает виды получаемых обновлений.
func WithAllowedUpdates(kinds []string) Option {
	return func(p *Poller) {
		p.allowed = kinds
	}
}

// WithDeleteServiceMessages включает удаление служебных сообщений чатов.
func WithDeleteServiceMessages(enabled bool) Option {
	return func(p *Poller) {
		p.deleteService = enabled
	}
}

// WithExporter добавляет выгрузку каждого полученного пакета.
func WithExporter(e ports.Exporter) Option {
	return func(p *Poller) {
		p.exporter = e
	}
}

// WithHandler добавляет обработчик обновлений.
func WithHandler(h Handler) Option {
	return func(p *Poller) {
		if h != nil {
			p.handlers = append(p.handlers, h)
		}
	}
}

// WithRetryPause задает паузу после ошибки сети.
func WithRetryPause(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.retryPause = d
		}
	}
}

// WithLogger устанавливает логгер.
func WithLogger(l *slog.Logger) Option {
	return func(p *Poller) {
		if l != nil {
			p.logger = l
		}
	}
}

// Poller опрашивает getUpdates и передает нормализованные обновления обработчикам.
type Poller struct {
	transport  ports.BotTransport
	parser     ports.Parser
	normalizer ports.Normalizer
	exporter   ports.Exporter
	handlers   []Handler

	timeout       int
	allowed       []string
	deleteService bool
	retryPause    time.Duration
	offset        int64
	logger        *slog.Logger
}

// NewPoller создает Poller с использованием функциональных опций.
func NewPoller(transport ports.BotTransport, parser ports.Parser, normalizer ports.Normalizer, opts ...Option) *Poller {
	p := &Poller{
		transport:  transport,
		parser:     parser,
		normalizer: normalizer,
		retryPause: defaultRetryPause,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(slog.String("component", "poller"))
	return p
}

// Offset возвращает следующий ожидаемый update_id.
func (p *Poller) Offset() int64 {
	return p.offset
}

// Run опрашивает Bot API до отмены контекста.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("polling started", slog.Int("timeout", p.timeout))
	for {
		if err := p.PollOnce(ctx); err != nil {
			if ctx.Err() != nil {
				p.logger.Info("polling stopped")
				return nil
			}
			p.logger.Warn("poll failed, retrying", slog.Any("error", err), slog.Duration("pause", p.retryPause))
			select {
			case <-ctx.Done():
				p.logger.Info("polling stopped")
				return nil
			case <-time.After(p.retryPause):
			}
		}
	}
}

// PollOnce выполняет один запрос getUpdates и обрабатывает полученный пакет.
// Offset сдвигается и за обновления, которые не удалось разобрать, чтобы
// они не запрашивались повторно.
func (p *Poller) PollOnce(ctx context.Context) error {
	raw, err := p.transport.GetUpdates(ctx, p.offset, p.timeout, p.allowed)
	if err != nil {
		return err
	}

	events, failures, err := p.parser.ParseUpdates(raw)
	if err != nil {
		return err
	}
	for _, f := range failures {
		p.logger.Warn("update skipped", slog.Int64("update_id", f.UpdateID), slog.String("error", f.Error))
		if f.UpdateID != 0 {
			p.advance(f.UpdateID)
		}
	}
	for _, e := range events {
		p.advance(e.UpdateID)
	}

	batch := p.normalizer.NormalizeBatch(events)
	for _, u := range batch.Updates {
		p.handle(ctx, u)
	}
	if p.exporter != nil && len(batch.Updates) > 0 {
		if err := p.exporter.Export(batch.Updates); err != nil {
			p.logger.Error("export failed", slog.Any("error", err))
		}
	}
	return nil
}

func (p *Poller) advance(updateID int64) {
	if updateID >= p.offset {
		p.offset = updateID + 1
	}
}

func (p *Poller) handle(ctx context.Context, u domain.Update) {
	s := u.Summary()
	p.logger.Info("update received",
		slog.Int64("update_id", u.ID),
		slog.String("kind", string(u.Kind)),
		slog.Int64("chat_id", s.ChatID),
		slog.String("message_kind", string(s.MessageKind)),
	)

	for _, h := range p.handlers {
		h(ctx, u)
	}

	if !p.deleteService {
		return
	}
	m, ok := u.Message()
	if !ok || !m.Kind.IsService() || m.Chat.Kind == domain.ChatKindPrivate {
		return
	}
	if _, err := p.transport.Execute(ctx, requests.DeleteMessageFromMessage(m)); err != nil {
		p.logger.Warn("failed to delete service message",
			slog.Int64("chat_id", m.Chat.ID),
			slog.Int64("message_id", m.ID),
			slog.Any("error", err))
		return
	}
	p.logger.Debug("service message deleted", slog.Int64("chat_id", m.Chat.ID), slog.Int64("message_id", m.ID))
}
