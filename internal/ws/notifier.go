// Package ws реализует необязательный push-канал: сервер присылает
// уведомления об изменениях, и клиент запускает внеочередной проход
// опроса. Состояние по push никогда не применяется напрямую — источником
// правды остаётся полная перезагрузка поллером.
package ws

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/procwise/backoffice-client/internal/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	reconnectDelay = 30 * time.Second
)

// Notifier держит WebSocket-подключение к серверу уведомлений.
type Notifier struct {
	url     string
	token   string
	onEvent func()
}

// NewNotifier создаёт нотификатор. onEvent вызывается на каждый кадр,
// содержимое кадров не разбирается.
func NewNotifier(apiBaseURL, token string, onEvent func()) *Notifier {
	wsURL := strings.TrimRight(apiBaseURL, "/")
	wsURL = strings.Replace(wsURL, "https://", "wss://", 1)
	wsURL = strings.Replace(wsURL, "http://", "ws://", 1)

	return &Notifier{
		url:     wsURL + "/api/v1/ws",
		token:   token,
		onEvent: onEvent,
	}
}

// Run подключается и читает уведомления до отмены контекста. При сбое
// соединения клиент тихо живёт на одном опросе и переподключается позже.
func (n *Notifier) Run(ctx context.Context) {
	for {
		if err := n.listen(ctx); err != nil {
			logger.L().WithError(err).Warn("ws: подключение потеряно, работаем только на опросе")
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (n *Notifier) listen(ctx context.Context) error {
	header := http.Header{}
	if n.token != "" {
		header.Set("Authorization", "Bearer "+n.token)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, n.url, header)
	if err != nil {
		return err
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	done := make(chan struct{})
	go n.pingLoop(ctx, conn, done)
	defer close(done)

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return err
			}
			return nil
		}
		n.onEvent()
	}
}

func (n *Notifier) pingLoop(ctx context.Context, conn *websocket.Conn, done chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
