package workspace

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/procwise/backoffice-client/internal/hypermedia"
	"github.com/procwise/backoffice-client/internal/logger"
	"github.com/procwise/backoffice-client/internal/models"
	"github.com/procwise/backoffice-client/internal/pkg/apperror"
	"github.com/procwise/backoffice-client/internal/validation"
)

// Пути действий, по которым проверяются права. У сервера href может быть
// как шаблонным, так и конкретным — резолвер понимает обе формы.
const (
	messagesHrefFmt    = "/api/v1/offers/%d/messages"
	attachmentsHrefFmt = "/api/v1/offers/%d/messages/attachments"
	receivedHrefFmt    = "/api/v1/offers/%d/messages/received"
	statusHrefFmt      = "/api/v1/offers/%d/status"
	offersHrefFmt      = "/api/v1/requests/%d/offers"
)

// Confirmer запрашивает у пользователя подтверждение необратимого действия.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Identity — личность текущего пользователя для различения своих и чужих
// сообщений в чате.
type Identity struct {
	Login  string
	RoleID int
}

// Controller владеет состоянием рабочей области одного предложения.
// Все методы потокобезопасны: состояние мутируют и обработчики команд,
// и фоновый поллер. Каждая успешная загрузка полностью замещает
// соответствующий срез состояния, поэтому пропущенное обновление
// самовосстанавливается на следующем цикле.
type Controller struct {
	gw      Gateway
	confirm Confirmer
	ident   Identity

	mu               sync.Mutex
	ws               *models.Workspace
	selectedID       int64
	messages         []models.OfferMessage
	actions          []hypermedia.Action
	contact          *models.ContractorContact
	lastContractorID int64
	lastError        string

	inFlight atomic.Bool
	nudge    chan struct{}
}

// NewController создаёт контроллер рабочей области.
func NewController(gw Gateway, confirm Confirmer, ident Identity) *Controller {
	return &Controller{
		gw:      gw,
		confirm: confirm,
		ident:   ident,
		nudge:   make(chan struct{}, 1),
	}
}

// LoadWorkspace загружает рабочую область предложения. Выбранным становится
// самое свежее предложение (по created_at, при равенстве — по id), затем
// загружаются его сообщения и контакт поставщика. Недоступность контакта
// не считается ошибкой загрузки.
func (c *Controller) LoadWorkspace(ctx context.Context, offerID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadWorkspace(ctx, offerID)
}

func (c *Controller) loadWorkspace(ctx context.Context, offerID int64) error {
	ws, err := c.gw.Workspace(ctx, offerID)
	if err != nil {
		c.setError(err, "не удалось загрузить рабочую область")
		return err
	}
	sortOffers(ws.Offers)

	c.ws = ws
	c.selectedID = offerID
	if len(ws.Offers) > 0 {
		c.selectedID = ws.Offers[0].ID
	}

	if err := c.loadMessages(ctx, c.selectedID, true); err != nil {
		return err
	}

	c.fetchContact(ctx, true)
	c.lastError = ""
	return nil
}

// RefreshWorkspace перечитывает состояние рабочей области без сообщений.
// Если выбранного предложения больше нет, выбор переходит на первое
// предложение нового списка и его сообщения загружаются заново. Контакт
// поставщика не перезапрашивается, пока поставщик тот же.
func (c *Controller) RefreshWorkspace(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshWorkspace(ctx)
}

func (c *Controller) refreshWorkspace(ctx context.Context) error {
	if c.selectedID == 0 {
		return nil
	}

	ws, err := c.gw.Workspace(ctx, c.selectedID)
	if err != nil {
		return err
	}
	sortOffers(ws.Offers)
	c.ws = ws

	if findOffer(ws.Offers, c.selectedID) == nil && len(ws.Offers) > 0 {
		c.selectedID = ws.Offers[0].ID
		c.messages = nil
		if err := c.loadMessages(ctx, c.selectedID, true); err != nil {
			return err
		}
	}

	c.fetchContact(ctx, false)
	return nil
}

// LoadMessages загружает сообщения предложения. При syncStatuses и наличии
// личности пользователя недоставленные сообщения собеседника помечаются
// доставленными — но только когда сервер выдал на это действие — после чего
// сообщения перечитываются один раз.
func (c *Controller) LoadMessages(ctx context.Context, offerID int64, syncStatuses bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadMessages(ctx, offerID, syncStatuses)
}

func (c *Controller) loadMessages(ctx context.Context, offerID int64, syncStatuses bool) error {
	messages, actions, err := c.gw.Messages(ctx, offerID)
	if err != nil {
		return err
	}
	effective := c.resolveActions(offerID, actions)

	if syncStatuses && c.ident.Login != "" {
		pending := c.counterpartyIDs(messages, models.MessageStatusSend)
		receivedHref := fmt.Sprintf(receivedHrefFmt, offerID)

		if len(pending) > 0 && hypermedia.Has(effective, receivedHref, http.MethodPatch) {
			// Сначала проверяем право, потом мутируем, потом перечитываем:
			// клиент не утверждает переход, на который не авторизован.
			if err := c.gw.MarkReceived(ctx, offerID, pending); err != nil {
				logger.L().WithError(err).Debug("workspace: не удалось отметить сообщения доставленными")
			} else if again, actionsAgain, err := c.gw.Messages(ctx, offerID); err == nil {
				messages = again
				effective = c.resolveActions(offerID, actionsAgain)
			}
		}
	}

	// Ответ мог прийти уже после смены выбранного предложения —
	// устаревшие данные не применяем.
	if c.selectedID != offerID {
		return nil
	}

	c.messages = messages
	c.actions = effective
	return nil
}

// SendMessage отправляет сообщение в чат выбранного предложения. Вложения
// требуют отдельного, более сильного права: без него запрос к серверу
// не выполняется вовсе.
func (c *Controller) SendMessage(ctx context.Context, text string, files []models.Upload) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := validation.ValidateMessageText(text); err != nil {
		c.lastError = err.Error()
		return err
	}

	sendHref := fmt.Sprintf(messagesHrefFmt, c.selectedID)
	if !hypermedia.Has(c.actions, sendHref, http.MethodPost) {
		c.setError(apperror.ErrSendNotAllowed, "отправка сообщений недоступна")
		return apperror.ErrSendNotAllowed
	}

	if len(files) > 0 {
		attachHref := fmt.Sprintf(attachmentsHrefFmt, c.selectedID)
		if !hypermedia.Has(c.actions, attachHref, http.MethodPost) {
			c.setError(apperror.ErrAttachmentNotAllowed, "отправка вложений недоступна")
			return apperror.ErrAttachmentNotAllowed
		}
		if err := c.gw.SendMessageWithAttachments(ctx, c.selectedID, text, files); err != nil {
			c.setError(err, "не удалось отправить сообщение")
			return err
		}
	} else {
		if err := c.gw.SendMessage(ctx, c.selectedID, text); err != nil {
			c.setError(err, "не удалось отправить сообщение")
			return err
		}
	}

	// Собственное сообщение не нуждается в синхронизации квитанций.
	c.lastError = ""
	return c.loadMessages(ctx, c.selectedID, false)
}

// MarkRead помечает сообщения собеседника прочитанными. Вызывается при
// фокусе на поле ввода; сбои здесь молчаливые — они не должны прерывать
// набор текста.
func (c *Controller) MarkRead(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sendIDs := c.counterpartyIDs(c.messages, models.MessageStatusSend)
	receivedIDs := c.counterpartyIDs(c.messages, models.MessageStatusReceived)

	if len(sendIDs) > 0 {
		if err := c.gw.MarkReceived(ctx, c.selectedID, sendIDs); err != nil {
			logger.L().WithError(err).Debug("workspace: отметка доставки при прочтении не удалась")
			return
		}
	}

	readIDs := append(receivedIDs, sendIDs...)
	if len(readIDs) == 0 {
		return
	}
	if err := c.gw.MarkRead(ctx, c.selectedID, readIDs); err != nil {
		logger.L().WithError(err).Debug("workspace: отметка прочтения не удалась")
	}
}

// ChangeOfferStatus переводит выбранное предложение в новый статус после
// явного подтверждения пользователя. Без выданного сервером действия на
// смену статуса запрос не выполняется. Принятие одного предложения сервер
// трактует как отклонение остальных — клиент это не симулирует, а просто
// перечитывает рабочую область после успеха. При ошибке оптимистичная
// смена статуса откатывается.
func (c *Controller) ChangeOfferStatus(ctx context.Context, status string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	offer := findOffer(c.offers(), c.selectedID)
	if offer == nil {
		err := apperror.New(apperror.ErrCodeNotFound, "предложение не найдено")
		c.setError(err, "предложение не найдено")
		return err
	}

	statusHref := fmt.Sprintf(statusHrefFmt, c.selectedID)
	if !hypermedia.Has(c.actions, statusHref, http.MethodPatch) {
		c.setError(apperror.ErrStatusNotAllowed, "смена статуса недоступна")
		return apperror.ErrStatusNotAllowed
	}

	if !c.confirm.Confirm(statusPrompt(status)) {
		return nil
	}

	previousStatus := offer.Status
	previousLabel := offer.StatusLabel
	offer.Status = status
	offer.StatusLabel = models.OfferStatusLabel(status)

	if err := c.gw.UpdateOfferStatus(ctx, c.selectedID, status); err != nil {
		offer.Status = previousStatus
		offer.StatusLabel = previousLabel
		c.setError(err, "не удалось изменить статус предложения")
		return err
	}

	c.lastError = ""
	if err := c.refreshWorkspace(ctx); err != nil {
		c.setError(err, "не удалось обновить рабочую область")
		return err
	}
	return nil
}

// CreateAdditionalOffer создаёт ещё одно предложение по текущей заявке.
// Право на создание сервер может прикрепить к разным ресурсам в
// зависимости от состояния заявки, поэтому действие ищется по очереди:
// у рабочей области, у выбранного предложения, у остальных предложений.
// Возвращает путь рабочей области нового предложения.
func (c *Controller) CreateAdditionalOffer(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	action := c.findCreateOfferAction()
	if action == nil {
		c.setError(apperror.ErrOfferCreateNotFound, "создание предложения сейчас недоступно")
		return "", apperror.ErrOfferCreateNotFound
	}

	href := hypermedia.Instantiate(action.Href, strconv.FormatInt(c.requestID(), 10))
	offer, err := c.gw.CreateOffer(ctx, href)
	if err != nil {
		c.setError(err, "не удалось создать предложение")
		return "", err
	}

	if err := c.loadWorkspace(ctx, offer.ID); err != nil {
		return "", err
	}
	c.selectOffer(ctx, offer.ID)

	return fmt.Sprintf("/offers/%d/workspace", offer.ID), nil
}

// SelectOffer переключает чат на другое предложение рабочей области.
func (c *Controller) SelectOffer(ctx context.Context, offerID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectOffer(ctx, offerID)
}

func (c *Controller) selectOffer(ctx context.Context, offerID int64) error {
	if findOffer(c.offers(), offerID) == nil {
		err := apperror.New(apperror.ErrCodeNotFound, "предложение не найдено")
		c.setError(err, "предложение не найдено")
		return err
	}
	if c.selectedID == offerID {
		return nil
	}

	c.selectedID = offerID
	c.messages = nil
	c.actions = nil
	if err := c.loadMessages(ctx, offerID, true); err != nil {
		return err
	}
	c.fetchContact(ctx, false)
	return nil
}

// findCreateOfferAction ищет POST на коллекцию предложений заявки,
// порядок источников фиксирован, берётся первое совпадение.
func (c *Controller) findCreateOfferAction() *hypermedia.Action {
	collectionHref := fmt.Sprintf(offersHrefFmt, c.requestID())

	if c.ws != nil {
		if a := hypermedia.Find(c.ws.Links.Actions(), collectionHref, http.MethodPost); a != nil {
			return a
		}
	}
	if selected := findOffer(c.offers(), c.selectedID); selected != nil {
		if a := hypermedia.Find(selected.Links.Actions(), collectionHref, http.MethodPost); a != nil {
			return a
		}
	}
	for i := range c.offers() {
		offer := &c.offers()[i]
		if offer.ID == c.selectedID {
			continue
		}
		if a := hypermedia.Find(offer.Links.Actions(), collectionHref, http.MethodPost); a != nil {
			return a
		}
	}
	return nil
}

// fetchContact подтягивает контакт поставщика выбранного предложения.
// Сбой не валит загрузку: контакт просто остаётся пустым. Маркер
// последнего поставщика защищает от лишних запросов при каждом опросе.
func (c *Controller) fetchContact(ctx context.Context, force bool) {
	offer := findOffer(c.offers(), c.selectedID)
	if offer == nil || offer.ContractorID == 0 {
		return
	}
	if !force && offer.ContractorID == c.lastContractorID {
		return
	}

	c.lastContractorID = offer.ContractorID
	contact, err := c.gw.ContractorContact(ctx, offer.ContractorID)
	if err != nil {
		logger.L().WithError(err).Warn("workspace: контакт поставщика недоступен")
		c.contact = nil
		return
	}
	c.contact = contact
}

// resolveActions выбирает эффективный набор прав: действия из ответа
// чата, иначе действия выбранного предложения, иначе действия рабочей
// области — от самого специфичного источника к общему.
func (c *Controller) resolveActions(offerID int64, messageActions []hypermedia.Action) []hypermedia.Action {
	if len(messageActions) > 0 {
		return messageActions
	}
	if offer := findOffer(c.offers(), offerID); offer != nil && len(offer.Links) > 0 {
		return offer.Links.Actions()
	}
	if c.ws != nil {
		return c.ws.Links.Actions()
	}
	return nil
}

// counterpartyIDs возвращает id сообщений собеседника в заданном статусе.
func (c *Controller) counterpartyIDs(messages []models.OfferMessage, status string) []int64 {
	var ids []int64
	for _, m := range messages {
		if m.AuthorLogin == c.ident.Login {
			continue
		}
		if m.Status == status {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

func (c *Controller) offers() []models.Offer {
	if c.ws == nil {
		return nil
	}
	return c.ws.Offers
}

func (c *Controller) requestID() int64 {
	if c.ws == nil {
		return 0
	}
	return c.ws.Request.ID
}

func (c *Controller) setError(err error, fallback string) {
	c.lastError = apperror.UserMessage(err, fallback)
}

// statusPrompt текст подтверждения перевода статуса.
func statusPrompt(status string) string {
	switch status {
	case models.OfferStatusAccepted:
		return "Принять предложение? Остальные предложения по этой заявке будут отклонены."
	case models.OfferStatusRejected:
		return "Отклонить предложение?"
	case models.OfferStatusDeleted:
		return "Удалить предложение?"
	default:
		return fmt.Sprintf("Перевести предложение в статус %q?", status)
	}
}

// sortOffers сортирует строго по времени создания (новые первыми),
// при равенстве — по убыванию id, чтобы выбор был детерминирован.
func sortOffers(offers []models.Offer) {
	sort.SliceStable(offers, func(i, j int) bool {
		if offers[i].CreatedAt.Equal(offers[j].CreatedAt) {
			return offers[i].ID > offers[j].ID
		}
		return offers[i].CreatedAt.After(offers[j].CreatedAt)
	})
}

func findOffer(offers []models.Offer, id int64) *models.Offer {
	for i := range offers {
		if offers[i].ID == id {
			return &offers[i]
		}
	}
	return nil
}
