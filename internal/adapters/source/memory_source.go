package source

import (
	"errors"

	"telegram-update-normalizer/internal/ports"
)

// ErrNoData возвращается источником без данных.
var ErrNoData = errors.New("data not set")

// MemorySource реализует интерфейс DataSource для данных, уже находящихся в памяти,
// например тела HTTP-запроса или загруженного файла.
type MemorySource struct {
	data []byte
}

// NewMemorySource создает новый экземпляр MemorySource.
func NewMemorySource(data []byte) ports.DataSource {
	return &MemorySource{data: data}
}

// Fetch возвращает копию данных, чтобы разбор не зависел от дальнейших изменений буфера.
func (s *MemorySource) Fetch() ([]byte, error) {
	if s.data == nil {
		return nil, ErrNoData
	}

	dataCopy := make([]byte, len(s.data))
	copy(dataCopy, s.data)

	return dataCopy, nil
}
