package requests

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrNoTarget возвращается для запроса, созданного литералом в обход конструкторов.
var ErrNoTarget = errors.New("request has no target message")

var validate = validator.New()

// targeted реализуют запросы с адресацией через Target.
type targeted interface {
	Target() Target
}

// Encode проверяет диапазоны полей запроса и кодирует его в JSON.
// Отсутствующие необязательные поля в результат не попадают.
func Encode(r Request) ([]byte, error) {
	if t, ok := r.(targeted); ok && t.Target().empty() {
		return nil, fmt.Errorf("%s: %w", r.Method(), ErrNoTarget)
	}
	if err := validate.Struct(r.payload()); err != nil {
		return nil, fmt.Errorf("%s: invalid request: %w", r.Method(), err)
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("%s: encode: %w", r.Method(), err)
	}
	return data, nil
}
