package workspace

import (
	"fmt"
	"net/http"

	"github.com/procwise/backoffice-client/internal/hypermedia"
	"github.com/procwise/backoffice-client/internal/models"
)

// View — снимок состояния рабочей области для отрисовки. Возможности
// (Can*) выведены из действий, выданных сервером, а не из роли.
type View struct {
	Request    models.Request
	Offers     []models.Offer
	SelectedID int64
	Messages   []models.OfferMessage
	Contact    *models.ContractorContact
	LastError  string

	CanSendMessage     bool
	CanSendAttachments bool
	CanChangeStatus    bool
	CanCreateOffer     bool
}

// View возвращает согласованный снимок текущего состояния.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		SelectedID: c.selectedID,
		Messages:   append([]models.OfferMessage(nil), c.messages...),
		Contact:    c.contact,
		LastError:  c.lastError,
	}
	if c.ws != nil {
		v.Request = c.ws.Request
		v.Offers = append([]models.Offer(nil), c.ws.Offers...)
	}

	v.CanSendMessage = hypermedia.Has(c.actions, fmt.Sprintf(messagesHrefFmt, c.selectedID), http.MethodPost)
	v.CanSendAttachments = hypermedia.Has(c.actions, fmt.Sprintf(attachmentsHrefFmt, c.selectedID), http.MethodPost)
	v.CanChangeStatus = hypermedia.Has(c.actions, fmt.Sprintf(statusHrefFmt, c.selectedID), http.MethodPatch)
	v.CanCreateOffer = c.findCreateOfferAction() != nil

	return v
}

// SelectedOfferID возвращает id предложения, чей чат сейчас открыт.
func (c *Controller) SelectedOfferID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedID
}

// LastError возвращает текст последней ошибки для показа рядом с формой.
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}
