package memory

import (
	"context"
	"sync"

	appoutbox "frontdesk/internal/app/outbox"
)

// Outbox collects event records in memory. The default when no mongo is
// configured; events are observable through Records but never shipped.
type Outbox struct {
	mu      sync.Mutex
	records []appoutbox.EventRecord
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.records = append(o.records, record)
	return nil
}

func (o *Outbox) Flush(ctx context.Context) error {
	return nil
}

// Records returns a copy of everything added so far.
func (o *Outbox) Records() []appoutbox.EventRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]appoutbox.EventRecord, len(o.records))
	copy(out, o.records)
	return out
}

var _ appoutbox.Outbox = (*Outbox)(nil)
