package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Ошибки Zenserp API. Все они возвращаются классификатором ответа.
//
// Zenserp отвечает одинаковым 403 "Not enough requests." и на исчерпанную квоту,
// и на ключ неверного формата, поэтому ErrWrongAPIKey и ErrAPILimit различаются
// только по формату отправленного ключа.
var (
	ErrNoAPIKey         = errors.New("no API key is provided")
	ErrWrongAPIKey      = errors.New("your API key is wrong")
	ErrAPILimit         = errors.New("no request remains")
	ErrNotFound         = errors.New("not found")
	ErrInvalidRequest   = errors.New("invalid request")
	ErrUnexpectedStatus = errors.New("unexpected status")
)

var (
	ErrEmptyQuery    = errors.New("empty query")
	ErrInvalidLimit  = errors.New("limit must be between 1 and 100")
	ErrInvalidOffset = errors.New("offset must be non-negative")
	ErrInvalidTBM    = errors.New("invalid tbm")
	ErrInvalidDevice = errors.New("invalid device")
)

var (
	ErrRateLimited     = errors.New("local rate limit exceeded")
	ErrHistoryDisabled = errors.New("search history is not configured")
)

// FieldError - одна ошибка валидации, которую вернул сервер.
type FieldError struct {
	Field   string
	Message string
}

// InvalidRequestError - ошибки по полям из 500-ки, в том порядке, в каком их прислал сервер.
type InvalidRequestError struct {
	Fields []FieldError
}

func (e *InvalidRequestError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+strings.TrimRight(f.Message, "."))
	}
	return "invalid request: (" + strings.Join(parts, ", ") + ")"
}

func (e *InvalidRequestError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// Message - сообщение сервера для поля, как есть.
func (e *InvalidRequestError) Message(field string) (string, bool) {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message, true
		}
	}
	return "", false
}

// UnexpectedStatusError - любой ответ, не похожий ни на одну известную ошибку.
type UnexpectedStatusError struct {
	StatusCode int
	Body       string
}

func (e *UnexpectedStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

func (e *UnexpectedStatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// IsAPIError - получена ли err классификацией ответа Zenserp.
func IsAPIError(err error) bool {
	switch ErrorKind(err) {
	case KindOK, KindRateLimited, KindError:
		return false
	}
	return true
}

const (
	KindOK               = "ok"
	KindNoAPIKey         = "no_api_key"
	KindWrongAPIKey      = "wrong_api_key"
	KindAPILimit         = "api_limit"
	KindNotFound         = "not_found"
	KindInvalidRequest   = "invalid_request"
	KindUnexpectedStatus = "unexpected_status"
	KindRateLimited      = "rate_limited"
	KindError            = "error"
)

// ErrorKind - стабильная метка ошибки для метрик и истории.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return KindOK
	case errors.Is(err, ErrNoAPIKey):
		return KindNoAPIKey
	case errors.Is(err, ErrWrongAPIKey):
		return KindWrongAPIKey
	case errors.Is(err, ErrAPILimit):
		return KindAPILimit
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidRequest):
		return KindInvalidRequest
	case errors.Is(err, ErrUnexpectedStatus):
		return KindUnexpectedStatus
	case errors.Is(err, ErrRateLimited):
		return KindRateLimited
	default:
		return KindError
	}
}
