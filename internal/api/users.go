package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/procwise/backoffice-client/internal/httpclient"
	"github.com/procwise/backoffice-client/internal/models"
)

// ListUsers возвращает список пользователей (админский раздел).
func ListUsers(ctx context.Context, c *httpclient.Client) ([]models.User, error) {
	var users []models.User
	if err := c.FetchJSON(ctx, http.MethodGet, basePath+"/users", nil, nil, &users, "не удалось загрузить пользователей"); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUserStatus включает или блокирует учётную запись.
func UpdateUserStatus(ctx context.Context, c *httpclient.Client, userID int64, isActive bool) error {
	body, err := jsonBody(map[string]bool{"is_active": isActive})
	if err != nil {
		return err
	}

	path := fmt.Sprintf("%s/users/%d/status", basePath, userID)
	return c.FetchEmpty(ctx, http.MethodPatch, path, body, nil, "не удалось изменить статус пользователя")
}

// ProfilePatch частичное обновление собственного профиля.
type ProfilePatch struct {
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Company *string `json:"company,omitempty"`
}

// UpdateMyProfile обновляет профиль текущего пользователя.
func UpdateMyProfile(ctx context.Context, c *httpclient.Client, patch ProfilePatch) error {
	body, err := jsonBody(patch)
	if err != nil {
		return err
	}
	return c.FetchEmpty(ctx, http.MethodPatch, basePath+"/users/me/profile", body, nil, "не удалось обновить профиль")
}

// UpdateMyPassword меняет пароль текущего пользователя.
func UpdateMyPassword(ctx context.Context, c *httpclient.Client, oldPassword, newPassword string) error {
	body, err := jsonBody(map[string]string{
		"old_password": oldPassword,
		"new_password": newPassword,
	})
	if err != nil {
		return err
	}
	return c.FetchEmpty(ctx, http.MethodPatch, basePath+"/users/me/password", body, nil, "не удалось сменить пароль")
}

// GetContractorContact возвращает контактные данные поставщика.
func GetContractorContact(ctx context.Context, c *httpclient.Client, userID int64) (*models.ContractorContact, error) {
	var contact models.ContractorContact
	path := fmt.Sprintf("%s/users/%d/contact", basePath, userID)
	if err := c.FetchJSON(ctx, http.MethodGet, path, nil, nil, &contact, "не удалось загрузить контакты поставщика"); err != nil {
		return nil, err
	}
	return &contact, nil
}
