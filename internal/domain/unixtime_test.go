package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnixTime(t *testing.T) {
	t.Run("целое число секунд", func(t *testing.T) {
		var ts UnixTime
		require.NoError(t, json.Unmarshal([]byte(`1700000000`), &ts))
		assert.Equal(t, time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC), ts.Time)

		out, err := json.Marshal(ts)
		require.NoError(t, err)
		assert.JSONEq(t, `1700000000`, string(out))
	})

	t.Run("null оставляет нулевое время", func(t *testing.T) {
		var ts UnixTime
		require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
		assert.True(t, ts.IsZero())
		assert.Nil(t, ts.Ptr())

		out, err := json.Marshal(ts)
		require.NoError(t, err)
		assert.Equal(t, "null", string(out))
	})

	t.Run("строка вместо числа", func(t *testing.T) {
		var ts UnixTime
		assert.Error(t, json.Unmarshal([]byte(`"1700000000"`), &ts))
	})

	t.Run("Ptr копирует значение", func(t *testing.T) {
		ts := NewUnixTime(1700000000)
		p := ts.Ptr()
		require.NotNil(t, p)
		assert.Equal(t, int64(1700000000), p.Unix())

		var missing *UnixTime
		assert.Nil(t, missing.Ptr())
	})
}
