package realtime

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
)

func mustTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

func recvMessage(t *testing.T, ch <-chan SSEMessage, timeout time.Duration) SSEMessage {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for SSE message")
	}
	return SSEMessage{}
}

func TestSSEHubDeliversInOrder(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t))
	channel := UserChannel(uuid.New())

	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, channel)

	hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventXPAwarded, Data: map[string]any{"xp": 10}})
	hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventLevelUp, Data: map[string]any{"level": 2}})

	first := recvMessage(t, client.Outbound, time.Second)
	second := recvMessage(t, client.Outbound, time.Second)
	if first.Event != SSEEventXPAwarded {
		t.Fatalf("first event: want=%s got=%s", SSEEventXPAwarded, first.Event)
	}
	if second.Event != SSEEventLevelUp {
		t.Fatalf("second event: want=%s got=%s", SSEEventLevelUp, second.Event)
	}
}

func TestSSEHubReconnect(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t))
	userID := uuid.New()
	channel := UserChannel(userID)

	clientA := hub.NewSSEClient(userID)
	hub.AddChannel(clientA, channel)
	hub.CloseClient(clientA)

	select {
	case _, ok := <-clientA.Outbound:
		if ok {
			t.Fatalf("clientA outbound should be closed after disconnect")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timed out waiting for clientA channel close")
	}

	clientB := hub.NewSSEClient(userID)
	hub.AddChannel(clientB, channel)
	hub.Broadcast(SSEMessage{Channel: channel, Event: SSEEventMissionCompleted})
	got := recvMessage(t, clientB.Outbound, time.Second)
	if got.Event != SSEEventMissionCompleted {
		t.Fatalf("reconnect event: want=%s got=%s", SSEEventMissionCompleted, got.Event)
	}
}

func TestSSEHubIgnoresUnsubscribedChannel(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t))
	client := hub.NewSSEClient(uuid.New())
	hub.AddChannel(client, UserChannel(client.UserID))

	hub.Broadcast(SSEMessage{Channel: UserChannel(uuid.New()), Event: SSEEventBadgeAwarded})

	select {
	case msg := <-client.Outbound:
		t.Fatalf("unexpected message: %+v", msg)
	case <-time.After(100 * time.Millisecond):
	}
}
