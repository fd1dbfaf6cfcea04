package router

import (
	"testing"

	"github.com/stretchr/testify/require"

	"telegram-update-normalizer/internal/ports"
)

func TestRoundRobinStrategy(t *testing.T) {
	transports := []ports.PooledTransport{
		newMockTransport("api-1", true),
		newMockTransport("api-2", true),
		newMockTransport("api-3", true),
	}

	strategy := NewRoundRobinStrategy()

	for _, want := range []string{"api-1", "api-2", "api-3", "api-1"} {
		got, err := strategy.Next(transports)
		require.NoError(t, err)
		require.Equal(t, want, got.ID())
	}
}

func TestRoundRobinStrategy_NoTransports(t *testing.T) {
	strategy := NewRoundRobinStrategy()
	_, err := strategy.Next(nil)
	require.ErrorIs(t, err, ErrNoHealthyTransports)
}
