// Package botapi реализует ports.BotTransport поверх go-telegram-bot-api.
// Обновления забираются сырыми байтами, чтобы их разбирал и нормализовал
// собственный слой модели, а не типы библиотеки.
package botapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-update-normalizer/internal/log"
	"telegram-update-normalizer/internal/ports"
	"telegram-update-normalizer/internal/requests"
)

// Client — транспорт Bot API.
type Client struct {
	api    *tgbotapi.BotAPI
	id     string
	logger *slog.Logger
}

// Option — функциональная опция для настройки Client.
type Option func(*options)

type options struct {
	endpoint   string
	httpClient tgbotapi.HTTPClient
	logger     *slog.Logger
	debug      bool
}

// WithEndpoint задает шаблон адреса API ("https://host/bot%s/%s").
func WithEndpoint(endpoint string) Option {
	return func(o *options) {
		if endpoint != "" {
			o.endpoint = endpoint
		}
	}
}

// WithHTTPClient задает HTTP-клиент.
func WithHTTPClient(c tgbotapi.HTTPClient) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// WithLogger устанавливает логгер; он же получает сообщения библиотеки.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDebug включает отладочный вывод запросов библиотеки.
func WithDebug(enabled bool) Option {
	return func(o *options) {
		o.debug = enabled
	}
}

// NewClient подключается к Bot API (выполняет getMe) и возвращает транспорт.
func NewClient(token string, opts ...Option) (*Client, error) {
	o := &options{
		endpoint:   tgbotapi.APIEndpoint,
		httpClient: &http.Client{},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}

	if err := tgbotapi.SetLogger(log.NewTGBotAPIAdapter(o.logger)); err != nil {
		return nil, fmt.Errorf("failed to set bot api logger: %w", err)
	}

	api, err := tgbotapi.NewBotAPIWithClient(token, o.endpoint, o.httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Telegram API: %w", err)
	}
	api.Debug = o.debug

	id := endpointHost(o.endpoint)
	logger := o.logger.With(slog.String("component", "botapi"), slog.String("transport_id", id))
	logger.Info("connected to Telegram API",
		slog.String("bot_username", api.Self.UserName),
		slog.Int64("bot_id", api.Self.ID))

	return &Client{api: api, id: id, logger: logger}, nil
}

var _ ports.PooledTransport = (*Client)(nil)

// ID возвращает хост API, через который работает клиент.
func (c *Client) ID() string {
	return c.id
}

// Health выполняет getMe.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.call(ctx, "getMe", nil)
	return err
}

// Self возвращает имя бота.
func (c *Client) Self() string {
	return c.api.Self.UserName
}

// GetUpdates выполняет getUpdates и возвращает поле result без разбора.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeoutSeconds int, allowedUpdates []string) ([]byte, error) {
	params := tgbotapi.Params{}
	if offset != 0 {
		params["offset"] = strconv.FormatInt(offset, 10)
	}
	if timeoutSeconds > 0 {
		params["timeout"] = strconv.Itoa(timeoutSeconds)
	}
	if len(allowedUpdates) > 0 {
		if err := params.AddInterface("allowed_updates", allowedUpdates); err != nil {
			return nil, fmt.Errorf("failed to encode allowed_updates: %w", err)
		}
	}

	return c.call(ctx, "getUpdates", params)
}

// Execute кодирует запрос модели и отправляет его.
func (c *Client) Execute(ctx context.Context, req requests.Request) (json.RawMessage, error) {
	body, err := requests.Encode(req)
	if err != nil {
		return nil, err
	}
	params, err := toParams(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.Method(), err)
	}
	return c.call(ctx, req.Method(), params)
}

// call выполняет запрос библиотеки, прерывая ожидание при отмене контекста.
func (c *Client) call(ctx context.Context, method string, params tgbotapi.Params) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type outcome struct {
		resp *tgbotapi.APIResponse
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		resp, err := c.api.MakeRequest(method, params)
		done <- outcome{resp, err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", method, ctx.Err())
	case out := <-done:
		if out.err != nil {
			c.logger.Warn("request failed", slog.String("method", method), slog.Any("error", out.err))
			return nil, fmt.Errorf("%s: %w", method, out.err)
		}
		return out.resp.Result, nil
	}
}

// toParams переводит JSON-объект запроса в параметры формы: строки
// передаются как есть, остальные значения в JSON-представлении.
func toParams(body []byte) (tgbotapi.Params, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("failed to convert request: %w", err)
	}
	params := make(tgbotapi.Params, len(fields))
	for key, raw := range fields {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			params[key] = s
			continue
		}
		params[key] = string(raw)
	}
	return params, nil
}

// endpointHost выделяет хост из шаблона адреса; токен в идентификатор не попадает.
func endpointHost(endpoint string) string {
	u, err := url.Parse(strings.ReplaceAll(endpoint, "%s", "x"))
	if err != nil || u.Host == "" {
		return endpoint
	}
	return u.Host
}
