package models

import (
	"time"
)

// OfferMessage описывает сообщение в чате предложения. Контент сообщения
// после создания не меняется, мутируют только статусы (received/read).
type OfferMessage struct {
	ID          int64               `json:"id"`
	OfferID     int64               `json:"offer_id"`
	AuthorID    int64               `json:"author_id"`
	AuthorLogin string              `json:"author_login"`
	Text        string              `json:"text"`
	Status      string              `json:"status"`
	Attachments []MessageAttachment `json:"attachments,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   *time.Time          `json:"updated_at,omitempty"`
}

// MessageAttachment описывает вложение к сообщению.
type MessageAttachment struct {
	FileID      int64  `json:"file_id"`
	Name        string `json:"name"`
	DownloadURL string `json:"download_url"`
}
