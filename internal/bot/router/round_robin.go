package router

import (
	"sync/atomic"

	"telegram-update-normalizer/internal/ports"
)

// RoundRobinStrategy реализует стратегию выбора "по кругу" (Round Robin).
type RoundRobinStrategy struct {
	// currentIndex хранит индекс последнего выбранного транспорта.
	currentIndex uint32
}

// NewRoundRobinStrategy создает новую Round Robin стратегию.
func NewRoundRobinStrategy() *RoundRobinStrategy {
	return &RoundRobinStrategy{}
}

// Next возвращает следующий транспорт в списке, инкрементируя индекс по кругу.
func (s *RoundRobinStrategy) Next(transports []ports.PooledTransport) (ports.PooledTransport, error) {
	if len(transports) == 0 {
		return nil, ErrNoHealthyTransports
	}
	idx := atomic.AddUint32(&s.currentIndex, 1) - 1
	return transports[idx%uint32(len(transports))], nil
}
