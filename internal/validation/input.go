package validation

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Константы валидации
const (
	MinLoginLength    = 3
	MaxLoginLength    = 50
	MinPasswordLength = 6
	MaxPasswordLength = 72

	MinDescriptionLength = 3
	MaxDescriptionLength = 5000

	MinMessageLength = 1
	MaxMessageLength = 5000

	DeadlineLayout = "2006-01-02"
)

// FieldError ошибка валидации конкретного поля формы. Такие ошибки
// показываются рядом с полем и никогда не уходят в сеть.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newFieldError(field, format string, args ...interface{}) *FieldError {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ValidateLength проверяет длину строки в рунах.
func ValidateLength(field, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return newFieldError(field, "должно быть не менее %d символов", min)
	}
	if max > 0 && length > max {
		return newFieldError(field, "должно быть не более %d символов", max)
	}
	return nil
}

// ValidateLogin проверяет логин.
func ValidateLogin(login string) error {
	if login == "" {
		return newFieldError("login", "логин обязателен")
	}
	return ValidateLength("login", login, MinLoginLength, MaxLoginLength)
}

// ValidatePassword проверяет пароль.
func ValidatePassword(password string) error {
	if password == "" {
		return newFieldError("password", "пароль обязателен")
	}
	return ValidateLength("password", password, MinPasswordLength, MaxPasswordLength)
}

// ValidateNewRequest проверяет форму создания заявки: описание, срок
// в формате YYYY-MM-DD и хотя бы один прикреплённый файл.
func ValidateNewRequest(description, deadline string, fileCount int) error {
	if err := ValidateLength("description", description, MinDescriptionLength, MaxDescriptionLength); err != nil {
		return err
	}

	if deadline == "" {
		return newFieldError("deadline", "срок обязателен")
	}
	if _, err := time.Parse(DeadlineLayout, deadline); err != nil {
		return newFieldError("deadline", "срок должен быть датой в формате %s", DeadlineLayout)
	}

	if fileCount < 1 {
		return newFieldError("files", "прикрепите хотя бы один файл")
	}
	return nil
}

// ValidateMessageText проверяет текст сообщения чата.
func ValidateMessageText(text string) error {
	return ValidateLength("text", text, MinMessageLength, MaxMessageLength)
}
