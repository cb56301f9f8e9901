package bus

import (
	"context"

	"github.com/yungbote/levelpath-backend/internal/realtime"
)

// Bus fans SSE messages out across instances. Single-instance deployments
// run without one; the hub then only reaches local subscribers.
type Bus interface {
	Publish(ctx context.Context, msg realtime.SSEMessage) error
	StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error
	Close() error
}
