package domain

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// UnixTime хранит метку времени, которая на проводе передается как целое число секунд Unix.
// Внутри хранится как абсолютный момент времени в UTC.
type UnixTime struct {
	time.Time
}

// NewUnixTime создает UnixTime из количества секунд Unix.
func NewUnixTime(sec int64) UnixTime {
	return UnixTime{Time: time.Unix(sec, 0).UTC()}
}

// UnmarshalJSON разбирает целое число секунд. Значение null оставляет нулевое время.
func (t *UnixTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	sec, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("unix timestamp must be an integer, got %s", data)
	}
	*t = NewUnixTime(sec)
	return nil
}

// MarshalJSON кодирует время обратно в целое число секунд.
func (t UnixTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, t.Unix(), 10), nil
}

// Ptr возвращает момент времени или nil для отсутствующей метки.
func (t *UnixTime) Ptr() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}
