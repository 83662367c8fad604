package telemetry

import (
	"context"

	"github.com/Rollin-123/belafrica-node-sub000/internal/telemetry/domain"
)

// EventEmitter emits domain events (e.g. to OTel Logs). Best-effort; callers log and ignore errors.
type EventEmitter interface {
	Emit(ctx context.Context, event *domain.Event) error
}
