package domain

import (
	"errors"
	"fmt"
)

// ErrMissingField возвращается, когда в записи нет обязательного поля протокола.
var ErrMissingField = errors.New("required field is missing")

// DecodeError описывает структурную ошибку разбора одного события: некорректный JSON,
// несовпадение типа поля или отсутствие обязательного поля. Касается только
// этого события и не влияет на остальные.
type DecodeError struct {
	// Field содержит путь к полю в записи, если он известен.
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("decode %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("decode: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// missingField создает DecodeError для отсутствующего обязательного поля name внутри at.
func missingField(at *fieldPath, name string) error {
	return &DecodeError{Field: at.child(name).String(), Err: ErrMissingField}
}

// NormalizationError описывает нарушение, вокруг которого нельзя подставить значение
// по умолчанию, например неизвестный тип чата.
type NormalizationError struct {
	Reason string
	ChatID int64
}

func (e *NormalizationError) Error() string {
	if e.ChatID != 0 {
		return fmt.Sprintf("normalize chat %d: %s", e.ChatID, e.Reason)
	}
	return "normalize: " + e.Reason
}
