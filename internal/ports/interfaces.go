package ports

import (
	"telegram-update-normalizer/internal/domain"
)

// DataSource определяет интерфейс для получения исходных данных обновлений.
type DataSource interface {
	// Fetch загружает данные из источника и возвращает их в виде байтового среза.
	Fetch() ([]byte, error)
}

// Parser определяет интерфейс для структурного разбора событий платформы.
type Parser interface {
	// ParseUpdate разбирает одно событие. Любая ошибка имеет тип *domain.DecodeError.
	ParseUpdate(data []byte) (*domain.RawEvent, error)
	// ParseUpdates разбирает объект, массив или ответ getUpdates. Ошибки отдельных
	// событий возвращаются как EventFailure и не прерывают разбор остальных.
	ParseUpdates(data []byte) ([]domain.RawEvent, []domain.EventFailure, error)
}

// Normalizer определяет интерфейс для перевода сырых записей в доменную модель.
type Normalizer interface {
	NormalizeUpdate(raw *domain.RawEvent) (domain.Update, error)
	NormalizeMessage(raw *domain.RawMessage) (*domain.Message, error)
	NormalizeChat(raw *domain.RawChat) (domain.Chat, error)
	NormalizeBatch(events []domain.RawEvent) domain.Batch
}

// Exporter определяет интерфейс для вывода результата.
type Exporter interface {
	// Export принимает нормализованные обновления и выводит их.
	Export(updates []domain.Update) error
}
