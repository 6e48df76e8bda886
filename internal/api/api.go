// Package api содержит по одной функции на каждую точку REST API.
// Каждая функция приводит сырой ответ сервера к типам internal/models,
// ошибки пробрасываются вызывающему без обработки.
package api

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/procwise/backoffice-client/internal/pkg/apperror"
)

// basePath общий префикс версионированного API.
const basePath = "/api/v1"

// jsonBody сериализует тело запроса.
func jsonBody(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeAPI, "не удалось сформировать тело запроса")
	}
	return bytes.NewReader(data), nil
}
