package models

import (
	"time"

	"github.com/procwise/backoffice-client/internal/hypermedia"
)

// Request описывает закупочную заявку экономиста.
type Request struct {
	ID            int64            `json:"id"`
	Description   string           `json:"description"`
	Status        string           `json:"status"`
	StatusLabel   string           `json:"status_label,omitempty"`
	Deadline      *time.Time       `json:"deadline,omitempty"`
	UserID        int64            `json:"user_id"`
	ChosenOfferID *int64           `json:"chosen_offer_id,omitempty"`
	Files         []File           `json:"files,omitempty"`
	Stats         RequestStats     `json:"stats"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     *time.Time       `json:"updated_at,omitempty"`
	ClosedAt      *time.Time       `json:"closed_at,omitempty"`
	Links         hypermedia.Links `json:"_links,omitempty"`
}

// RequestStats агрегаты по предложениям на заявку.
type RequestStats struct {
	Submitted int `json:"submitted"`
	Deleted   int `json:"deleted"`
	Accepted  int `json:"accepted"`
	Rejected  int `json:"rejected"`
}
