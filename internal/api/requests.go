package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/procwise/backoffice-client/internal/httpclient"
	"github.com/procwise/backoffice-client/internal/models"
	"github.com/procwise/backoffice-client/internal/validation"
)

// ListRequests возвращает заявки текущего пользователя.
func ListRequests(ctx context.Context, c *httpclient.Client) ([]models.Request, error) {
	return fetchRequestList(ctx, c, basePath+"/requests", "не удалось загрузить заявки")
}

// ListOpenRequests возвращает открытые заявки (витрина поставщика).
func ListOpenRequests(ctx context.Context, c *httpclient.Client) ([]models.Request, error) {
	return fetchRequestList(ctx, c, basePath+"/requests/open", "не удалось загрузить открытые заявки")
}

// ListOfferedRequests возвращает заявки, на которые поставщик уже подал предложение.
func ListOfferedRequests(ctx context.Context, c *httpclient.Client) ([]models.Request, error) {
	return fetchRequestList(ctx, c, basePath+"/requests/offered", "не удалось загрузить заявки с предложениями")
}

func fetchRequestList(ctx context.Context, c *httpclient.Client, path, fallback string) ([]models.Request, error) {
	var requests []models.Request
	if err := c.FetchJSON(ctx, http.MethodGet, path, nil, nil, &requests, fallback); err != nil {
		return nil, err
	}
	for i := range requests {
		normalizeRequest(&requests[i])
	}
	return requests, nil
}

// GetRequest возвращает одну заявку.
func GetRequest(ctx context.Context, c *httpclient.Client, id int64) (*models.Request, error) {
	var request models.Request
	path := fmt.Sprintf("%s/requests/%d", basePath, id)
	if err := c.FetchJSON(ctx, http.MethodGet, path, nil, nil, &request, "не удалось загрузить заявку"); err != nil {
		return nil, err
	}
	normalizeRequest(&request)
	return &request, nil
}

// NewRequest форма создания заявки.
type NewRequest struct {
	Description string
	Deadline    string
	Files       []models.Upload
}

// CreateRequest создаёт заявку. Форма валидируется до обращения к сети:
// заявка без файлов или без срока не уходит на сервер.
func CreateRequest(ctx context.Context, c *httpclient.Client, form NewRequest) (*models.Request, error) {
	if err := validation.ValidateNewRequest(form.Description, form.Deadline, len(form.Files)); err != nil {
		return nil, err
	}

	body, contentType, err := buildMultipart(map[string]string{
		"description": form.Description,
		"deadline":    form.Deadline,
	}, "files", form.Files)
	if err != nil {
		return nil, err
	}

	var request models.Request
	opts := &httpclient.RequestOptions{ContentType: contentType}
	if err := c.FetchJSON(ctx, http.MethodPost, basePath+"/requests", body, opts, &request, "не удалось создать заявку"); err != nil {
		return nil, err
	}
	normalizeRequest(&request)
	return &request, nil
}

// RequestPatch частичное обновление заявки.
type RequestPatch struct {
	Status      *string `json:"status,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UpdateRequest применяет частичное обновление к заявке.
func UpdateRequest(ctx context.Context, c *httpclient.Client, id int64, patch RequestPatch) (*models.Request, error) {
	body, err := jsonBody(patch)
	if err != nil {
		return nil, err
	}

	var request models.Request
	path := fmt.Sprintf("%s/requests/%d", basePath, id)
	if err := c.FetchJSON(ctx, http.MethodPatch, path, body, nil, &request, "не удалось обновить заявку"); err != nil {
		return nil, err
	}
	normalizeRequest(&request)
	return &request, nil
}

func normalizeRequest(r *models.Request) {
	if r.StatusLabel == "" {
		r.StatusLabel = models.RequestStatusLabel(r.Status)
	}
}
