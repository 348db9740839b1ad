package httpgin

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/gigledger/internal/domain"
)

// Hub fans status notifications out to the live SSE subscribers of this
// instance. A subscriber that cannot keep up loses notifications rather
// than blocking the publisher; the journal still has them.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan domain.StatusNotification]int64
}

// anyConcert subscribes to every concert.
const anyConcert int64 = -1

func NewHub() *Hub {
	return &Hub{subs: make(map[chan domain.StatusNotification]int64)}
}

// Broadcast delivers n to every matching subscriber.
func (h *Hub) Broadcast(_ context.Context, n domain.StatusNotification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch, concertID := range h.subs {
		if concertID != anyConcert && concertID != n.ConcertID {
			continue
		}
		select {
		case ch <- n:
		default:
		}
	}
}

// PublishStatus lets the hub stand in for the redis notifier when a single
// instance runs without redis.
func (h *Hub) PublishStatus(ctx context.Context, n domain.StatusNotification) error {
	h.Broadcast(ctx, n)
	return nil
}

func (h *Hub) Subscribe(concertID int64) (<-chan domain.StatusNotification, func()) {
	ch := make(chan domain.StatusNotification, 32)

	h.mu.Lock()
	h.subs[ch] = concertID
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// @Summary  Live status notifications (server-sent events)
// @Param    concert_id  query  int  false  "only this concert"
// @Produce  text/event-stream
// @Success  200  {object}  domain.StatusNotification
// @Router   /notifications/stream [get]
func handleStream(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		concertID := anyConcert
		if s := c.Query("concert_id"); s != "" {
			v, err := strconv.ParseInt(s, 10, 64)
			if err != nil || v < 0 {
				badRequest(c, "invalid concert_id")
				return
			}
			concertID = v
		}

		ch, cancel := hub.Subscribe(concertID)
		defer cancel()

		c.Header("Cache-Control", "no-cache")
		c.Header("X-Accel-Buffering", "no")
		c.Status(http.StatusOK)

		keepAlive := time.NewTicker(15 * time.Second)
		defer keepAlive.Stop()

		c.Stream(func(w io.Writer) bool {
			select {
			case <-c.Request.Context().Done():
				return false
			case n := <-ch:
				c.SSEvent("concert_status", n)
				return true
			case <-keepAlive.C:
				c.SSEvent("ping", time.Now().Unix())
				return true
			}
		})
	}
}
