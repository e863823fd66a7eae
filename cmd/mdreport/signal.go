package main

import (
	"context"
	"os/signal"
)

// notifyContext returns a context that is canceled when one of
// shutdownSignals arrives, so an in-flight PDF export can stop its browser.
// Call stop() to release resources.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}
