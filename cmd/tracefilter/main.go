package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/planbiir/tracefilter/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error("tracefilter failed", log.ErrorField(err))
		_ = log.Close()
		stop()
		os.Exit(1)
	}
	_ = log.Close()
}
