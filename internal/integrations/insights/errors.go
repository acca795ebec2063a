package insights

import "errors"

// Ошибки используются только внутри клиента: наружу всегда уходит пара insight/suggestion
var (
	// ErrMissingAPIKey ключ API не настроен
	ErrMissingAPIKey = errors.New("insights client: api key is not configured")

	// ErrUnexpectedStatus сервис ответил не 2xx
	ErrUnexpectedStatus = errors.New("insights client: unexpected status code")

	// ErrTransport запрос не дошел или ответ не прочитан
	ErrTransport = errors.New("insights client: transport error")

	// ErrInvalidResponse тело ответа не соответствует формату chat completions
	ErrInvalidResponse = errors.New("insights client: invalid response")
)
