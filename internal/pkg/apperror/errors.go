package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeTransport    ErrorCode = "TRANSPORT_ERROR"
	ErrCodeAPI          ErrorCode = "API_ERROR"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN_ACTION"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
)

// AppError — ошибка клиентского слоя с кодом и человекочитаемым сообщением.
// HTTPStatus заполняется только для ошибок, пришедших от сервера.
type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// FromStatus строит ошибку по HTTP статусу ответа сервера.
func FromStatus(status int, message string) *AppError {
	return &AppError{
		Code:       statusToCode(status),
		Message:    message,
		HTTPStatus: status,
	}
}

func statusToCode(status int) ErrorCode {
	switch status {
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	default:
		return ErrCodeAPI
	}
}

// UserMessage извлекает сообщение для показа пользователю.
// Для не-AppError ошибок возвращает generic текст, чтобы не светить внутренности.
func UserMessage(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}

func IsUnauthorized(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeUnauthorized
}

func IsForbidden(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeForbidden
}

func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeValidation
}

func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeNotFound
}

var (
	ErrNoSession            = New(ErrCodeUnauthorized, "требуется авторизация")
	ErrSendNotAllowed       = New(ErrCodeForbidden, "отправка сообщений недоступна")
	ErrStatusNotAllowed     = New(ErrCodeForbidden, "смена статуса предложения недоступна")
	ErrAttachmentNotAllowed = New(ErrCodeForbidden, "отправка вложений недоступна")
	ErrOfferCreateNotFound  = New(ErrCodeForbidden, "создание предложения сейчас недоступно")
)
