package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySource(t *testing.T) {
	payload := []byte(`{"ok":true,"result":[]}`)

	t.Run("Fetch возвращает установленные данные", func(t *testing.T) {
		data, err := NewMemorySource(payload).Fetch()

		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("Fetch возвращает ошибку для nil данных", func(t *testing.T) {
		data, err := NewMemorySource(nil).Fetch()

		assert.ErrorIs(t, err, ErrNoData)
		assert.Nil(t, data)
	})

	t.Run("пустой буфер не считается ошибкой", func(t *testing.T) {
		data, err := NewMemorySource([]byte{}).Fetch()

		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("Fetch возвращает копию данных", func(t *testing.T) {
		original := append([]byte(nil), payload...)
		fetched, err := NewMemorySource(original).Fetch()
		require.NoError(t, err)

		fetched[0] = 'X'

		assert.Equal(t, payload, original)
	})
}
