package cmdutil

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WithSignalCancel returns a context cancelled on SIGINT or SIGTERM.
func WithSignalCancel(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
