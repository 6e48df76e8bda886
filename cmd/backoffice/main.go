package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// Готовим контекст для корректной остановки фоновых циклов.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
