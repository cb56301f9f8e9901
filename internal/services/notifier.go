package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
	"github.com/yungbote/levelpath-backend/internal/realtime"
	"github.com/yungbote/levelpath-backend/internal/realtime/bus"
)

// notifier pushes progression events to the user's SSE channel, locally and
// through the cross-instance bus when one is configured. Events fire only
// after the owning transaction commits.
type notifier struct {
	hub *realtime.SSEHub
	bus bus.Bus
	log *logger.Logger
}

func newNotifier(hub *realtime.SSEHub, b bus.Bus, log *logger.Logger) *notifier {
	return &notifier{hub: hub, bus: b, log: log}
}

func (n *notifier) emit(ctx context.Context, userID uuid.UUID, event realtime.SSEEvent, data any) {
	if n == nil {
		return
	}
	msg := realtime.SSEMessage{
		Channel: realtime.UserChannel(userID),
		Event:   event,
		Data:    data,
	}
	if n.hub != nil {
		n.hub.Broadcast(msg)
	}
	if n.bus != nil {
		if err := n.bus.Publish(ctx, msg); err != nil {
			n.log.Warn("publish SSE message", "event", event, "error", err)
		}
	}
}

// emitOutcomes announces what a committed ledger operation did.
func (n *notifier) emitOutcomes(ctx context.Context, userID uuid.UUID, outcomes []*MissionOutcome) {
	for _, out := range outcomes {
		if !out.CompletedNow {
			continue
		}
		n.emit(ctx, userID, realtime.SSEEventMissionCompleted, out)
		if out.BadgeAwarded != "" {
			n.emit(ctx, userID, realtime.SSEEventBadgeAwarded, map[string]any{
				"badgeName": out.BadgeAwarded,
				"missionId": out.MissionID,
			})
		}
		if out.LeveledUp {
			n.emit(ctx, userID, realtime.SSEEventLevelUp, map[string]any{
				"level": out.User.Level,
				"xp":    out.User.XP,
			})
		}
	}
}
