package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/procwise/backoffice-client/internal/httpclient"
	"github.com/procwise/backoffice-client/internal/hypermedia"
	"github.com/procwise/backoffice-client/internal/models"
	"github.com/procwise/backoffice-client/internal/pkg/apperror"
)

// GetWorkspace возвращает рабочую область предложения: заявку, все
// конкурирующие предложения и контакт поставщика.
func GetWorkspace(ctx context.Context, c *httpclient.Client, offerID int64) (*models.Workspace, error) {
	var workspace models.Workspace
	path := fmt.Sprintf("%s/offers/%d/workspace", basePath, offerID)
	if err := c.FetchJSON(ctx, http.MethodGet, path, nil, nil, &workspace, "не удалось загрузить рабочую область"); err != nil {
		return nil, err
	}

	normalizeRequest(&workspace.Request)
	for i := range workspace.Offers {
		normalizeOffer(&workspace.Offers[i])
	}
	return &workspace, nil
}

// UpdateOfferStatus переводит предложение в новый статус.
// Невалидный статус отклоняется до обращения к серверу.
func UpdateOfferStatus(ctx context.Context, c *httpclient.Client, offerID int64, status string) error {
	if _, ok := models.ValidOfferStatuses[status]; !ok {
		return apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("недопустимый статус предложения: %s", status))
	}

	body, err := jsonBody(map[string]string{"status": status})
	if err != nil {
		return err
	}

	path := fmt.Sprintf("%s/offers/%d/status", basePath, offerID)
	return c.FetchEmpty(ctx, http.MethodPatch, path, body, nil, "не удалось изменить статус предложения")
}

// CreateOffer создаёт предложение по href действия, выданного сервером.
// Путь не хардкодится: куда сервер прикрепил действие, туда и отправляем.
// Абсолютный href сводится к пути, базовый URL всегда берётся из клиента.
func CreateOffer(ctx context.Context, c *httpclient.Client, href string) (*models.Offer, error) {
	var offer models.Offer
	if err := c.FetchJSON(ctx, http.MethodPost, hypermedia.Path(href), nil, nil, &offer, "не удалось создать предложение"); err != nil {
		return nil, err
	}
	normalizeOffer(&offer)
	return &offer, nil
}

func normalizeOffer(o *models.Offer) {
	if o.StatusLabel == "" {
		o.StatusLabel = models.OfferStatusLabel(o.Status)
	}
}
