package bus

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
	"github.com/yungbote/levelpath-backend/internal/realtime"
)

// Requires a reachable Redis; set TEST_REDIS_ADDR to run.
func TestRedisBusRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	t.Setenv("REDIS_ADDR", addr)
	t.Setenv("REDIS_CHANNEL", "levelpath.events.test")

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)

	b, err := NewRedisBus(log)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan realtime.SSEMessage, 1)
	if err := b.StartForwarder(ctx, func(m realtime.SSEMessage) { got <- m }); err != nil {
		t.Fatalf("forwarder: %v", err)
	}

	sent := realtime.SSEMessage{
		Channel: "user:roundtrip",
		Event:   realtime.SSEEventLevelUp,
	}
	if err := b.Publish(ctx, sent); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case m := <-got:
		if m.Channel != sent.Channel || m.Event != sent.Event {
			t.Errorf("forwarded = %+v, want %+v", m, sent)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("published message never reached the forwarder")
	}
}
