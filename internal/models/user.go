package models

import (
	"time"

	"github.com/procwise/backoffice-client/internal/hypermedia"
)

// User описывает учётную запись в админском списке пользователей.
type User struct {
	ID        int64            `json:"id"`
	Login     string           `json:"login"`
	Email     string           `json:"email,omitempty"`
	RoleID    int              `json:"role_id"`
	IsActive  bool             `json:"is_active"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt *time.Time       `json:"updated_at,omitempty"`
	Links     hypermedia.Links `json:"_links,omitempty"`
}

// RoleName возвращает подпись роли для списков.
func RoleName(roleID int) string {
	switch roleID {
	case RoleAdmin:
		return "Администратор"
	case RoleEconomist:
		return "Экономист"
	case RoleContractor:
		return "Поставщик"
	default:
		return "Неизвестная роль"
	}
}
