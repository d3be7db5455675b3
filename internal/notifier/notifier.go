// Package notifier provides the outbound chat notification sink for pull
// request lifecycle events. The sink is best-effort: the reconciler logs
// delivery failures and never lets them affect ingestion, and nothing here
// retries a failed delivery.
package notifier

import (
	"context"

	webhookModel "github.com/minhtri0795/github-dashboard-server/internal/webhook/model"
)

// Notifier consumes completed pull request events.
type Notifier interface {
	// PROpened announces a newly opened pull request.
	PROpened(ctx context.Context, event *webhookModel.Event) error

	// PRClosed announces a closed pull request, merged or not.
	PRClosed(ctx context.Context, event *webhookModel.Event) error
}

// Nop is a Notifier that does nothing. It is used when no webhook URL is
// configured.
type Nop struct{}

// NewNop creates a no-op notifier.
func NewNop() Nop {
	return Nop{}
}

// PROpened does nothing.
func (Nop) PROpened(context.Context, *webhookModel.Event) error { return nil }

// PRClosed does nothing.
func (Nop) PRClosed(context.Context, *webhookModel.Event) error { return nil }
