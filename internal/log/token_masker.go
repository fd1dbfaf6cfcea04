// Package log содержит обработчики slog, общие для команд.
package log

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

const tokenMask = "***masked-token***"

// токены Bot API вида 123456:secret, в URL с префиксом bot
var telegramTokenRegex = regexp.MustCompile(`\b(bot)?\d{5,}:[A-Za-z0-9_-]{30,}`)

// masker заменяет токены по шаблону и явно переданные секреты.
type masker struct {
	secrets []string
}

func newMasker(secrets []string) *masker {
	m := &masker{}
	for _, s := range secrets {
		if s != "" {
			m.secrets = append(m.secrets, s)
		}
	}
	return m
}

func (m *masker) mask(text string) string {
	for _, s := range m.secrets {
		text = strings.ReplaceAll(text, s, tokenMask)
	}
	return telegramTokenRegex.ReplaceAllStringFunc(text, func(match string) string {
		if strings.HasPrefix(match, "bot") {
			return "bot***:" + tokenMask
		}
		return tokenMask
	})
}

// maskValue рекурсивно маскирует значения атрибутов
func (m *masker) maskValue(value slog.Value) slog.Value {
	switch value.Kind() {
	case slog.KindString:
		return slog.StringValue(m.mask(value.String()))
	case slog.KindAny:
		// Ошибки (в том числе *url.Error с адресом запроса) выводятся строкой.
		if err, ok := value.Any().(error); ok {
			return slog.StringValue(m.mask(err.Error()))
		}
		return value
	case slog.KindGroup:
		return slog.GroupValue(m.maskAttrs(value.Group())...)
	default:
		return value
	}
}

func (m *masker) maskAttrs(attrs []slog.Attr) []slog.Attr {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = slog.Attr{Key: a.Key, Value: m.maskValue(a.Value)}
	}
	return masked
}

// TokenMaskerHandler - обертка для slog.Handler, которая маскирует токены в логах
type TokenMaskerHandler struct {
	handler slog.Handler
	masker  *masker
}

// NewTokenMaskerHandler создает обработчик с маскировкой токенов. Кроме токенов,
// найденных по шаблону, маскируются все переданные secrets.
func NewTokenMaskerHandler(handler slog.Handler, secrets ...string) *TokenMaskerHandler {
	return &TokenMaskerHandler{
		handler: handler,
		masker:  newMasker(secrets),
	}
}

// Enabled реализует интерфейс slog.Handler
func (h *TokenMaskerHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle реализует интерфейс slog.Handler
func (h *TokenMaskerHandler) Handle(ctx context.Context, record slog.Record) error {
	// Запись собирается заново: исходную slog может переиспользовать.
	r := slog.NewRecord(record.Time, record.Level, h.masker.mask(record.Message), record.PC)
	record.Attrs(func(a slog.Attr) bool {
		r.AddAttrs(slog.Attr{Key: a.Key, Value: h.masker.maskValue(a.Value)})
		return true
	})
	return h.handler.Handle(ctx, r)
}

// WithAttrs реализует интерфейс slog.Handler
func (h *TokenMaskerHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TokenMaskerHandler{
		handler: h.handler.WithAttrs(h.masker.maskAttrs(attrs)),
		masker:  h.masker,
	}
}

// WithGroup реализует интерфейс slog.Handler
func (h *TokenMaskerHandler) WithGroup(name string) slog.Handler {
	return &TokenMaskerHandler{
		handler: h.handler.WithGroup(name),
		masker:  h.masker,
	}
}

// NewMaskedLogger создает новый экземпляр slog.Logger с маскировкой токенов
func NewMaskedLogger(handler slog.Handler, secrets ...string) *slog.Logger {
	return slog.New(NewTokenMaskerHandler(handler, secrets...))
}
