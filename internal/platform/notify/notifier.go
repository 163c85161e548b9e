// Package notify dispatches automation notifications to the rest of
// the Ads Pro platform.
package notify

import (
	"context"

	"github.com/google/uuid"
)

// Notification is a single fire-and-forget message for an organization.
type Notification struct {
	OrganizationID uuid.UUID `json:"organization_id"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Priority       string    `json:"priority"` // low, medium, high, critical
}

// Dispatcher delivers notifications. Delivery is fire-and-forget:
// the engine records the dispatch error but never retries.
type Dispatcher interface {
	Dispatch(ctx context.Context, n Notification) error
	Close() error
}
