// Package sync reacts to PMS change events on kafka by refreshing the local
// snapshot, so the grid converges faster than the periodic refresh alone.
package sync

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"

	"frontdesk/internal/app/policies"
	"frontdesk/internal/infra/broker/kafka"
)

// RefreshHandler triggers a snapshot rebuild on every consumed change event.
// Refreshes are debounced: a burst of events inside MinInterval costs one
// rebuild, the content of the messages does not matter.
type RefreshHandler struct {
	Refresher   policies.Refresher
	Logger      *slog.Logger
	MinInterval time.Duration

	mu          sync.Mutex
	lastRefresh time.Time
}

func (h *RefreshHandler) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	if h.Refresher == nil {
		return nil
	}
	if !h.shouldRefresh() {
		return nil
	}
	if err := h.Refresher.Refresh(ctx); err != nil {
		h.log().Warn("sync: snapshot refresh failed",
			"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset, "error", err)
		return err
	}
	h.log().Debug("sync: snapshot refreshed", "topic", msg.Topic, "offset", msg.Offset)
	return nil
}

func (h *RefreshHandler) shouldRefresh() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	min := h.MinInterval
	if min <= 0 {
		min = time.Second
	}
	now := time.Now()
	if now.Sub(h.lastRefresh) < min {
		return false
	}
	h.lastRefresh = now
	return true
}

func (h *RefreshHandler) log() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

var _ kafka.MessageHandler = (*RefreshHandler)(nil)
