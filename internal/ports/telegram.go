package ports

import (
	"context"
	"encoding/json"

	"telegram-update-normalizer/internal/requests"
)

// BotTransport определяет сетевого клиента Bot API, которым пользуется модель.
// Повторы запросов и ограничение частоты остаются на реализации.
type BotTransport interface {
	// GetUpdates возвращает сырой JSON-массив обновлений начиная с offset.
	GetUpdates(ctx context.Context, offset int64, timeoutSeconds int, allowedUpdates []string) ([]byte, error)
	// Execute отправляет закодированный запрос и возвращает поле result ответа.
	Execute(ctx context.Context, req requests.Request) (json.RawMessage, error)
}

// PooledTransport — транспорт, который маршрутизатор держит в пуле.
type PooledTransport interface {
	BotTransport
	// ID возвращает уникальный идентификатор транспорта в пуле.
	ID() string
	// Health проверяет доступность API (getMe).
	Health(ctx context.Context) error
}

// Strategy определяет интерфейс для стратегии выбора транспорта.
type Strategy interface {
	Next(transports []PooledTransport) (PooledTransport, error)
}
