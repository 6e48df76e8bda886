package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/procwise/backoffice-client/internal/httpclient"
	"github.com/procwise/backoffice-client/internal/hypermedia"
	"github.com/procwise/backoffice-client/internal/models"
)

// MessagesPage сообщения чата предложения и действия, доступные в чате.
type MessagesPage struct {
	Messages []models.OfferMessage
	Actions  []hypermedia.Action
}

type messagesPayload struct {
	Messages []models.OfferMessage `json:"messages"`
	Links    hypermedia.Links      `json:"_links"`
}

// ListMessages возвращает сообщения чата предложения вместе с набором
// доступных там действий.
func ListMessages(ctx context.Context, c *httpclient.Client, offerID int64) (*MessagesPage, error) {
	var payload messagesPayload
	path := fmt.Sprintf("%s/offers/%d/messages", basePath, offerID)
	if err := c.FetchJSON(ctx, http.MethodGet, path, nil, nil, &payload, "не удалось загрузить сообщения"); err != nil {
		return nil, err
	}

	return &MessagesPage{
		Messages: payload.Messages,
		Actions:  payload.Links.Actions(),
	}, nil
}

// SendMessage отправляет текстовое сообщение в чат предложения.
func SendMessage(ctx context.Context, c *httpclient.Client, offerID int64, text string) error {
	body, err := jsonBody(map[string]string{"text": text})
	if err != nil {
		return err
	}

	path := fmt.Sprintf("%s/offers/%d/messages", basePath, offerID)
	return c.FetchEmpty(ctx, http.MethodPost, path, body, nil, "не удалось отправить сообщение")
}

// SendMessageWithAttachments отправляет сообщение с файлами (multipart).
func SendMessageWithAttachments(ctx context.Context, c *httpclient.Client, offerID int64, text string, files []models.Upload) error {
	body, contentType, err := buildMultipart(map[string]string{"text": text}, "files", files)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("%s/offers/%d/messages/attachments", basePath, offerID)
	opts := &httpclient.RequestOptions{ContentType: contentType}
	return c.FetchEmpty(ctx, http.MethodPost, path, body, opts, "не удалось отправить сообщение с вложениями")
}

// MarkMessagesReceived помечает сообщения доставленными.
func MarkMessagesReceived(ctx context.Context, c *httpclient.Client, offerID int64, messageIDs []int64) error {
	return patchMessageStatus(ctx, c, offerID, "received", messageIDs, "не удалось отметить сообщения доставленными")
}

// MarkMessagesRead помечает сообщения прочитанными.
func MarkMessagesRead(ctx context.Context, c *httpclient.Client, offerID int64, messageIDs []int64) error {
	return patchMessageStatus(ctx, c, offerID, "read", messageIDs, "не удалось отметить сообщения прочитанными")
}

func patchMessageStatus(ctx context.Context, c *httpclient.Client, offerID int64, transition string, messageIDs []int64, fallback string) error {
	if len(messageIDs) == 0 {
		return nil
	}

	body, err := jsonBody(map[string][]int64{"message_ids": messageIDs})
	if err != nil {
		return err
	}

	path := fmt.Sprintf("%s/offers/%d/messages/%s", basePath, offerID, transition)
	return c.FetchEmpty(ctx, http.MethodPatch, path, body, nil, fallback)
}
