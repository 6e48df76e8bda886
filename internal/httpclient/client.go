// Package httpclient оборачивает net/http для общения с REST API:
// bearer-авторизация, разбор ошибок из тела ответа и реакция на 401.
package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/procwise/backoffice-client/internal/logger"
	"github.com/procwise/backoffice-client/internal/pkg/apperror"
)

// Client выполняет запросы к API. Колбэк onUnauthorized передаётся явно
// в конструктор: единственный владелец — хранилище сессии, которое по 401
// принудительно разлогинивает пользователя.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	onUnauthorized func()

	mu    sync.RWMutex
	token string
}

// RequestOptions настройки отдельного запроса.
type RequestOptions struct {
	// NoAuth отключает заголовок Authorization (логин, регистрация).
	NoAuth bool
	// ContentType переопределяет Content-Type: multipart-запросы передают
	// сюда значение из multipart.Writer. Без переопределения тело считается JSON.
	ContentType string
}

// New создаёт клиент API.
func New(baseURL string, timeout time.Duration, onUnauthorized func()) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		onUnauthorized: onUnauthorized,
	}
}

// SetToken регистрирует bearer-токен для последующих запросов.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken сбрасывает bearer-токен.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token возвращает текущий bearer-токен.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Do выполняет запрос. На 401 вызывает onUnauthorized до возврата ответа
// вызывающему. Ретраев нет: ошибка сразу уходит наверх.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader, opts *RequestOptions) (*http.Response, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeTransport, "не удалось сформировать запрос")
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")

	switch {
	case opts.ContentType != "":
		req.Header.Set("Content-Type", opts.ContentType)
	case body != nil:
		req.Header.Set("Content-Type", "application/json")
	}

	if token := c.Token(); token != "" && !opts.NoAuth {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeTransport, "сетевая ошибка, попробуйте ещё раз")
	}

	logger.L().WithFields(map[string]interface{}{
		"method":     method,
		"path":       path,
		"status":     resp.StatusCode,
		"request_id": requestID,
	}).Debug("httpclient: запрос выполнен")

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	return resp, nil
}

// FetchJSON выполняет запрос и декодирует JSON-ответ в out. Для не-2xx
// статуса возвращает ошибку с текстом из поля `detail` тела ответа либо
// с fallback-сообщением вызывающего.
func (c *Client) FetchJSON(ctx context.Context, method, path string, body io.Reader, opts *RequestOptions, out any, fallback string) error {
	resp, err := c.Do(ctx, method, path, body, opts)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.DecodeError(resp, fallback)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeAPI, "не удалось разобрать ответ сервера")
	}
	return nil
}

// FetchEmpty выполняет запрос, тело успешного ответа отбрасывается.
func (c *Client) FetchEmpty(ctx context.Context, method, path string, body io.Reader, opts *RequestOptions, fallback string) error {
	return c.FetchJSON(ctx, method, path, body, opts, nil, fallback)
}

// maxErrorBodySize ограничивает чтение тела ошибки.
const maxErrorBodySize = 1 << 20

// DecodeError строит ошибку по не-2xx ответу: текст берётся из поля
// `detail` тела, иначе используется fallback.
func (c *Client) DecodeError(resp *http.Response, fallback string) error {
	message := fallback

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err == nil {
		var payload struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(data, &payload) == nil && payload.Detail != "" {
			message = payload.Detail
		}
	}

	return apperror.FromStatus(resp.StatusCode, message)
}
