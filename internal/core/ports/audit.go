package ports

import (
	"context"

	"github.com/ecomstore/commerce-api/internal/core/domain"
)

// AuditRecorder persists authentication events.
type AuditRecorder interface {
	Record(ctx context.Context, event domain.AuthEvent) error
}

// AuthEventSink accepts authentication events for asynchronous recording.
// Publish must not block the request path beyond a bounded buffer.
type AuthEventSink interface {
	Publish(event domain.AuthEvent)
}
