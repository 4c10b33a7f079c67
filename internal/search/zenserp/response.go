package zenserp

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/kitbuilder587/zenserp-go/internal/domain"
)

const (
	msgNoAPIKey          = "No apikey provided."
	msgNotEnoughRequests = "Not enough requests."

	maxErrorBody = 512
)

// CheckResponse классифицирует сырой ответ Zenserp. sentAPIKey - заголовок apikey
// запроса, на который пришел ответ.
//
// Ограничение провайдера: Zenserp отвечает 403 "Not enough requests." и на
// исчерпанную квоту, и на незнакомый ключ. Ключ в формате UUID считаем настоящим
// с нулевой квотой, остальное - неверным ключом. Отозванный ключ правильного
// формата так не отличить от исчерпанного.
func CheckResponse(statusCode int, body []byte, sentAPIKey string) error {
	switch statusCode {
	case http.StatusOK:
		return nil

	case http.StatusForbidden:
		msg := gjson.GetBytes(body, "error")
		if msg.Type == gjson.String {
			switch msg.Str {
			case msgNoAPIKey:
				return domain.ErrNoAPIKey
			case msgNotEnoughRequests:
				if IsKeyFormat(sentAPIKey) {
					return domain.ErrAPILimit
				}
				return domain.ErrWrongAPIKey
			}
		}

	case http.StatusNotFound:
		return domain.ErrNotFound

	case http.StatusInternalServerError:
		if invalid, ok := parseInvalidRequest(body); ok {
			return invalid
		}
	}

	return &domain.UnexpectedStatusError{
		StatusCode: statusCode,
		Body:       truncate(body, maxErrorBody),
	}
}

// IsKeyFormat - похож ли key на ключ Zenserp: 32 hex-цифры UUID.
// Дефисы могут стоять где угодно, допускаются {} и префиксы urn:/uuid:.
func IsKeyFormat(key string) bool {
	hex := strings.TrimPrefix(key, "urn:")
	hex = strings.TrimPrefix(hex, "uuid:")
	hex = strings.Trim(hex, "{}")
	hex = strings.ReplaceAll(hex, "-", "")
	if len(hex) != 32 {
		return false
	}
	_, err := uuid.Parse(hex)
	return err == nil
}

// errors[0] из тела 500-ки, порядок полей сохраняем как в JSON
func parseInvalidRequest(body []byte) (*domain.InvalidRequestError, bool) {
	if !gjson.ValidBytes(body) {
		return nil, false
	}
	first := gjson.GetBytes(body, "errors.0")
	if !first.IsObject() {
		return nil, false
	}

	var fields []domain.FieldError
	first.ForEach(func(key, value gjson.Result) bool {
		fields = append(fields, domain.FieldError{
			Field:   key.String(),
			Message: value.String(),
		})
		return true
	})

	return &domain.InvalidRequestError{Fields: fields}, true
}

func truncate(body []byte, n int) string {
	if len(body) <= n {
		return string(body)
	}
	return string(body[:n]) + "..."
}
