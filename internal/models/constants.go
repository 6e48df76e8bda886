package models

// RequestStatus константы статусов заявок
const (
	RequestStatusOpen      = "open"
	RequestStatusReview    = "review"
	RequestStatusClosed    = "closed"
	RequestStatusCancelled = "cancelled"
)

// OfferStatus константы статусов предложений
const (
	OfferStatusSubmitted = "submitted"
	OfferStatusDeleted   = "deleted"
	OfferStatusAccepted  = "accepted"
	OfferStatusRejected  = "rejected"
)

// MessageStatus жизненный цикл сообщения чата: send -> received -> read
const (
	MessageStatusSend     = "send"
	MessageStatusReceived = "received"
	MessageStatusRead     = "read"
)

// Роли пользователей. Роль влияет только на навигацию: какие права есть
// у пользователя на конкретном ресурсе, решает сервер через `_links`.
const (
	RoleAdmin      = 1
	RoleEconomist  = 2
	RoleContractor = 3
)

// ValidRequestStatuses список валидных статусов заявок
var ValidRequestStatuses = map[string]struct{}{
	RequestStatusOpen:      {},
	RequestStatusReview:    {},
	RequestStatusClosed:    {},
	RequestStatusCancelled: {},
}

// ValidOfferStatuses список валидных статусов предложений
var ValidOfferStatuses = map[string]struct{}{
	OfferStatusSubmitted: {},
	OfferStatusDeleted:   {},
	OfferStatusAccepted:  {},
	OfferStatusRejected:  {},
}

// offerStatusLabels отображаемые подписи статусов предложений.
var offerStatusLabels = map[string]string{
	OfferStatusSubmitted: "Подано",
	OfferStatusDeleted:   "Удалено",
	OfferStatusAccepted:  "Принято",
	OfferStatusRejected:  "Отклонено",
}

// requestStatusLabels отображаемые подписи статусов заявок.
var requestStatusLabels = map[string]string{
	RequestStatusOpen:      "Открыта",
	RequestStatusReview:    "На рассмотрении",
	RequestStatusClosed:    "Закрыта",
	RequestStatusCancelled: "Отменена",
}

// OfferStatusLabel возвращает подпись статуса предложения.
// Для неизвестного статуса возвращается сам статус.
func OfferStatusLabel(status string) string {
	if label, ok := offerStatusLabels[status]; ok {
		return label
	}
	return status
}

// RequestStatusLabel возвращает подпись статуса заявки.
func RequestStatusLabel(status string) string {
	if label, ok := requestStatusLabels[status]; ok {
		return label
	}
	return status
}
