package redis

import (
	"context"
	"encoding/json"

	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/redis/go-redis/v9"
)

// StatusPubSub carries concert status notifications between instances.
type StatusPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewStatusPubSub(rdb *redis.Client) *StatusPubSub {
	return &StatusPubSub{
		rdb:     rdb,
		channel: ChannelConcertStatus(),
	}
}

type statusMsg struct {
	Type string `json:"type"`
	domain.StatusNotification
}

func (p *StatusPubSub) PublishStatus(ctx context.Context, n domain.StatusNotification) error {
	b, err := json.Marshal(statusMsg{Type: "concert_status", StatusNotification: n})
	if err != nil {
		return err
	}

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

// Subscribe calls handler for every notification until ctx is done.
// Malformed messages are skipped.
func (p *StatusPubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, n domain.StatusNotification)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var msg statusMsg
			if err := json.Unmarshal([]byte(m.Payload), &msg); err == nil && msg.State != "" {
				handler(ctx, msg.StatusNotification)
			}
		}
	}
}
