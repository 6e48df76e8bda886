package api

import (
	"context"
	"net/http"

	"github.com/procwise/backoffice-client/internal/httpclient"
	"github.com/procwise/backoffice-client/internal/hypermedia"
)

// LoginResult нормализованный ответ на вход.
type LoginResult struct {
	Token           string
	RoleID          int
	Login           string
	AvailableAction *hypermedia.Action
}

type loginPayload struct {
	Token           string             `json:"token"`
	RoleID          int                `json:"role_id"`
	Login           string             `json:"login"`
	AvailableAction *hypermedia.Action `json:"available_action"`
	Links           hypermedia.Links   `json:"_links"`
}

// Login выполняет вход по логину и паролю.
func Login(ctx context.Context, c *httpclient.Client, login, password string) (*LoginResult, error) {
	body, err := jsonBody(map[string]string{
		"login":    login,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var payload loginPayload
	opts := &httpclient.RequestOptions{NoAuth: true}
	if err := c.FetchJSON(ctx, http.MethodPost, basePath+"/auth/login", body, opts, &payload, "не удалось выполнить вход"); err != nil {
		return nil, err
	}

	result := &LoginResult{
		Token:           payload.Token,
		RoleID:          payload.RoleID,
		Login:           payload.Login,
		AvailableAction: payload.AvailableAction,
	}
	if result.AvailableAction == nil && len(payload.Links) > 0 {
		result.AvailableAction = &payload.Links[0]
	}
	return result, nil
}

// RegisterForm данные регистрации пользователя.
type RegisterForm struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
	RoleID   int    `json:"role_id,omitempty"`
	Company  string `json:"company,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// RegisterWeb самостоятельная регистрация поставщика, без авторизации.
func RegisterWeb(ctx context.Context, c *httpclient.Client, form RegisterForm) error {
	body, err := jsonBody(form)
	if err != nil {
		return err
	}
	opts := &httpclient.RequestOptions{NoAuth: true}
	return c.FetchEmpty(ctx, http.MethodPost, "/api/web/register", body, opts, "не удалось зарегистрироваться")
}

// RegisterUser создание пользователя администратором.
func RegisterUser(ctx context.Context, c *httpclient.Client, form RegisterForm) error {
	body, err := jsonBody(form)
	if err != nil {
		return err
	}
	return c.FetchEmpty(ctx, http.MethodPost, basePath+"/users/register", body, nil, "не удалось создать пользователя")
}
