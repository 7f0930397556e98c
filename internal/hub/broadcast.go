package hub

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/soar/inputicons/internal/gamepad"
	"github.com/soar/inputicons/internal/input"
)

const fullSyncInterval = 5 * time.Second

// StateSource reports input method changes.
type StateSource interface {
	State() (input.Method, int, gamepad.Family)
	Subscribe(fn func(input.Change)) input.SubscriptionID
	Unsubscribe(id input.SubscriptionID) bool
}

// Broadcaster forwards input method changes to the hub and periodically
// resends the full state.
type Broadcaster struct {
	hub    *Hub
	source StateSource
	log    logrus.FieldLogger

	changes chan input.Change
	seq     int64
}

func NewBroadcaster(h *Hub, source StateSource, log logrus.FieldLogger) *Broadcaster {
	return &Broadcaster{
		hub:     h,
		source:  source,
		log:     log.WithField("component", "broadcast"),
		changes: make(chan input.Change, 64),
	}
}

// Run subscribes to the source and broadcasts until ctx is done.
func (b *Broadcaster) Run(ctx context.Context) {
	id := b.source.Subscribe(func(ch input.Change) {
		select {
		case b.changes <- ch:
		default:
			// Never block the notifying goroutine; the next sync catches up.
		}
	})
	defer b.source.Unsubscribe(id)

	ticker := time.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-b.changes:
			b.send(TypeInputChanged)
		case <-ticker.C:
			b.send(TypeSync)
		}
	}
}

// SendInitialState sends the current state to a newly connected client.
func (b *Broadcaster) SendInitialState(c *Client) {
	data, ok := b.encode(TypeSync, 0)
	if ok {
		c.Send(data)
	}
}

func (b *Broadcaster) send(typ string) {
	b.seq++
	if data, ok := b.encode(typ, b.seq); ok {
		b.hub.Broadcast(data)
	}
}

func (b *Broadcaster) encode(typ string, seq int64) ([]byte, bool) {
	method, device, family := b.source.State()
	data, err := json.Marshal(NewStateMessage(typ, seq, method, device, family))
	if err != nil {
		b.log.WithError(err).Error("marshal state message")
		return nil, false
	}
	return data, true
}
