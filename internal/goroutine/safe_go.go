package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/procwise/backoffice-client/internal/logger"
)

// SafeGoWithContext запускает горутину с контекстом и перехватом panic:
// упавший фоновый цикл (поллер, нотификатор) не должен ронять весь процесс.
func SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	go func() {
		defer recoverPanic()
		fn(ctx)
	}()
}

func recoverPanic() {
	if r := recover(); r != nil {
		logger.L().Errorf("goroutine: перехвачена panic: %v\n%s", r, debug.Stack())
	}
}
