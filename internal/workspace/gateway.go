// Package workspace реализует согласование клиентского состояния рабочей
// области предложения: опрос сервера, выбор предложения, синхронизацию
// статусов сообщений и проверку доступных действий.
package workspace

import (
	"context"

	"github.com/procwise/backoffice-client/internal/api"
	"github.com/procwise/backoffice-client/internal/httpclient"
	"github.com/procwise/backoffice-client/internal/hypermedia"
	"github.com/procwise/backoffice-client/internal/models"
)

// Gateway — операции API, нужные рабочей области. Выделен в интерфейс,
// чтобы контроллер тестировался без сети.
type Gateway interface {
	Workspace(ctx context.Context, offerID int64) (*models.Workspace, error)
	Messages(ctx context.Context, offerID int64) ([]models.OfferMessage, []hypermedia.Action, error)
	SendMessage(ctx context.Context, offerID int64, text string) error
	SendMessageWithAttachments(ctx context.Context, offerID int64, text string, files []models.Upload) error
	MarkReceived(ctx context.Context, offerID int64, messageIDs []int64) error
	MarkRead(ctx context.Context, offerID int64, messageIDs []int64) error
	UpdateOfferStatus(ctx context.Context, offerID int64, status string) error
	CreateOffer(ctx context.Context, href string) (*models.Offer, error)
	ContractorContact(ctx context.Context, userID int64) (*models.ContractorContact, error)
}

// apiGateway реализует Gateway поверх пакета api.
type apiGateway struct {
	client *httpclient.Client
}

// NewGateway создаёт Gateway поверх HTTP-клиента.
func NewGateway(client *httpclient.Client) Gateway {
	return &apiGateway{client: client}
}

func (g *apiGateway) Workspace(ctx context.Context, offerID int64) (*models.Workspace, error) {
	return api.GetWorkspace(ctx, g.client, offerID)
}

func (g *apiGateway) Messages(ctx context.Context, offerID int64) ([]models.OfferMessage, []hypermedia.Action, error) {
	page, err := api.ListMessages(ctx, g.client, offerID)
	if err != nil {
		return nil, nil, err
	}
	return page.Messages, page.Actions, nil
}

func (g *apiGateway) SendMessage(ctx context.Context, offerID int64, text string) error {
	return api.SendMessage(ctx, g.client, offerID, text)
}

func (g *apiGateway) SendMessageWithAttachments(ctx context.Context, offerID int64, text string, files []models.Upload) error {
	return api.SendMessageWithAttachments(ctx, g.client, offerID, text, files)
}

func (g *apiGateway) MarkReceived(ctx context.Context, offerID int64, messageIDs []int64) error {
	return api.MarkMessagesReceived(ctx, g.client, offerID, messageIDs)
}

func (g *apiGateway) MarkRead(ctx context.Context, offerID int64, messageIDs []int64) error {
	return api.MarkMessagesRead(ctx, g.client, offerID, messageIDs)
}

func (g *apiGateway) UpdateOfferStatus(ctx context.Context, offerID int64, status string) error {
	return api.UpdateOfferStatus(ctx, g.client, offerID, status)
}

func (g *apiGateway) CreateOffer(ctx context.Context, href string) (*models.Offer, error) {
	return api.CreateOffer(ctx, g.client, href)
}

func (g *apiGateway) ContractorContact(ctx context.Context, userID int64) (*models.ContractorContact, error) {
	return api.GetContractorContact(ctx, g.client, userID)
}
