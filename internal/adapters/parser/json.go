package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"telegram-update-normalizer/internal/domain"
	"telegram-update-normalizer/internal/ports"
)

// JsonParser реализует интерфейс Parser для разбора JSON данных.
type JsonParser struct{}

// NewJsonParser создает новый экземпляр JsonParser.
func NewJsonParser() ports.Parser {
	return &JsonParser{}
}

// ParseUpdate разбирает одно событие. Любая ошибка имеет тип *domain.DecodeError.
func (p *JsonParser) ParseUpdate(data []byte) (*domain.RawEvent, error) {
	event, err := domain.DecodeEvent(data)
	if err != nil {
		return nil, toDecodeError(err)
	}
	return event, nil
}

// envelope соответствует ответу метода getUpdates.
type envelope struct {
	OK          *bool           `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
}

// ParseUpdates принимает одно событие, массив событий или ответ getUpdates.
// Каждый элемент разбирается отдельно: ошибка элемента попадает в failures,
// а ошибка возвращается только если не удалось разобрать сам контейнер.
func (p *JsonParser) ParseUpdates(data []byte) ([]domain.RawEvent, []domain.EventFailure, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil, &domain.DecodeError{Err: errors.New("empty input")}
	}

	switch data[0] {
	case '[':
		return p.parseArray(data)
	case '{':
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, nil, toDecodeError(err)
		}
		if env.OK == nil {
			event, err := p.ParseUpdate(data)
			if err != nil {
				return nil, []domain.EventFailure{failure(0, data, err)}, nil
			}
			return []domain.RawEvent{*event}, nil, nil
		}
		if !*env.OK {
			return nil, nil, fmt.Errorf("getUpdates returned an error: %s", env.Description)
		}
		return p.parseArray(env.Result)
	default:
		return nil, nil, &domain.DecodeError{Err: fmt.Errorf("expected an object or an array, got %q", data[0])}
	}
}

func (p *JsonParser) parseArray(data []byte) ([]domain.RawEvent, []domain.EventFailure, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, nil, toDecodeError(err)
	}

	events := make([]domain.RawEvent, 0, len(elements))
	var failures []domain.EventFailure
	for i, element := range elements {
		event, err := p.ParseUpdate(element)
		if err != nil {
			failures = append(failures, failure(i, element, err))
			continue
		}
		events = append(events, *event)
	}
	return events, failures, nil
}

// failure описывает неразобранный элемент; update_id берется, если его удается прочитать.
func failure(index int, data []byte, err error) domain.EventFailure {
	var head struct {
		UpdateID int64 `json:"update_id"`
	}
	_ = json.Unmarshal(data, &head)
	return domain.EventFailure{Index: index, UpdateID: head.UpdateID, Error: err.Error()}
}

// toDecodeError приводит ошибки encoding/json к *domain.DecodeError.
func toDecodeError(err error) error {
	var decodeErr *domain.DecodeError
	if errors.As(err, &decodeErr) {
		return decodeErr
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &domain.DecodeError{Field: typeErr.Field, Err: err}
	}
	return &domain.DecodeError{Err: err}
}
