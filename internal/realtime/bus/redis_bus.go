package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/levelpath-backend/internal/pkg/envutil"
	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
	"github.com/yungbote/levelpath-backend/internal/realtime"
)

// DefaultChannel carries progression events (level-ups, badges, mission
// completions) between instances when REDIS_CHANNEL is unset.
const DefaultChannel = "levelpath.events"

const redisDialTimeout = 5 * time.Second

type redisBus struct {
	log     *logger.Logger
	client  *goredis.Client
	channel string
}

// NewRedisBus connects to REDIS_ADDR (REDIS_PASSWORD and REDIS_DB optional)
// and pings before returning, so a misconfigured bus fails at startup.
func NewRedisBus(log *logger.Logger) (Bus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    os.Getenv("REDIS_PASSWORD"),
		DB:          envutil.GetEnvAsInt("REDIS_DB", 0, log),
		DialTimeout: redisDialTimeout,
	})
	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisBus{
		log:     log.With("component", "RedisBus"),
		client:  client,
		channel: envutil.GetEnv("REDIS_CHANNEL", DefaultChannel, log),
	}, nil
}

func (b *redisBus) Publish(ctx context.Context, msg realtime.SSEMessage) error {
	if b == nil || b.client == nil {
		return fmt.Errorf("redis bus not initialized")
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal bus message: %w", err)
	}
	return b.client.Publish(ctx, b.channel, raw).Err()
}

// StartForwarder subscribes to the bus channel and hands every decoded
// message to onMsg until ctx is cancelled. The subscription must be
// confirmed before this returns, so no published event can slip past a
// forwarder that reported success.
func (b *redisBus) StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error {
	if b == nil || b.client == nil {
		return fmt.Errorf("redis bus not initialized")
	}
	if onMsg == nil {
		return fmt.Errorf("onMsg callback required")
	}

	sub := b.client.Subscribe(ctx, b.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		defer sub.Close()
		incoming := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-incoming:
				if !ok || m == nil {
					return
				}
				var msg realtime.SSEMessage
				if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
					b.log.Warn("dropping undecodable bus payload", "error", err)
					continue
				}
				onMsg(msg)
			}
		}
	}()
	return nil
}

func (b *redisBus) Close() error {
	if b == nil || b.client == nil {
		return nil
	}
	return b.client.Close()
}
