package notify

import (
	"context"
	"log/slog"
)

// NoopDispatcher logs notifications instead of delivering them. Used
// in development when no broker is available.
type NoopDispatcher struct {
	logger *slog.Logger
}

// NewNoopDispatcher creates a logging-only dispatcher.
func NewNoopDispatcher(logger *slog.Logger) *NoopDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopDispatcher{logger: logger}
}

// Dispatch logs the notification.
func (d *NoopDispatcher) Dispatch(ctx context.Context, n Notification) error {
	d.logger.Info("notification (noop)",
		"organization_id", n.OrganizationID,
		"title", n.Title,
		"message", n.Message,
		"priority", n.Priority,
	)
	return nil
}

// Close is a no-op.
func (d *NoopDispatcher) Close() error { return nil }
