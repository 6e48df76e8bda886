package models

import (
	"time"

	"github.com/procwise/backoffice-client/internal/hypermedia"
)

// Offer описывает предложение поставщика на заявку. Набор доступных
// действий приходит от сервера вместе с предложением и пересчитывается
// при каждом обновлении, клиент его не хранит между загрузками.
type Offer struct {
	ID           int64            `json:"id"`
	RequestID    int64            `json:"request_id"`
	ContractorID int64            `json:"contractor_id"`
	Status       string           `json:"status"`
	StatusLabel  string           `json:"status_label,omitempty"`
	Files        []File           `json:"files,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    *time.Time       `json:"updated_at,omitempty"`
	Links        hypermedia.Links `json:"_links,omitempty"`
}

// Workspace — агрегированное представление одного предложения: заявка,
// все конкурирующие предложения по ней и контакт поставщика выбранного
// предложения.
type Workspace struct {
	Request Request            `json:"request"`
	Offers  []Offer            `json:"offers"`
	Contact *ContractorContact `json:"contact,omitempty"`
	Links   hypermedia.Links   `json:"_links,omitempty"`
}

// ContractorContact контактные данные поставщика для переговоров.
type ContractorContact struct {
	UserID  int64  `json:"user_id"`
	Login   string `json:"login"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
}
