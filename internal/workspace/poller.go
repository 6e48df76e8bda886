package workspace

import (
	"context"
	"time"

	"github.com/procwise/backoffice-client/internal/logger"
)

// DefaultPollInterval период опроса сервера рабочей областью.
const DefaultPollInterval = 7 * time.Second

// Run запускает цикл опроса: немедленный проход и далее каждые interval.
// Ошибки прохода проглатываются — разовый сетевой сбой не должен
// останавливать последующие попытки. Останов — отмена контекста; она же
// отменяет запросы незавершённого прохода, так что устаревшее состояние
// не доезжает до экрана.
func (c *Controller) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	c.PollOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.PollOnce(ctx)
		case <-c.nudge:
			c.PollOnce(ctx)
		}
	}
}

// PollOnce выполняет один проход опроса: сначала состояние рабочей
// области, только затем сообщения — синхронизация статусов всегда видит
// уже обновлённый список предложений. Если предыдущий проход ещё не
// завершился, новый не начинается.
func (c *Controller) PollOnce(ctx context.Context) {
	if !c.inFlight.CompareAndSwap(false, true) {
		logger.L().Debug("workspace: предыдущий проход опроса ещё выполняется, пропуск")
		return
	}
	defer c.inFlight.Store(false)

	if c.SelectedOfferID() == 0 {
		return
	}

	if err := c.RefreshWorkspace(ctx); err != nil {
		logger.L().WithError(err).Debug("workspace: проход опроса не удался")
		return
	}
	if err := c.LoadMessages(ctx, c.SelectedOfferID(), true); err != nil {
		logger.L().WithError(err).Debug("workspace: загрузка сообщений в опросе не удалась")
	}
}

// Nudge просит поллер выполнить внеочередной проход. Неблокирующий.
func (c *Controller) Nudge() {
	select {
	case c.nudge <- struct{}{}:
	default:
	}
}
