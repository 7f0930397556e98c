package hub

import (
	"time"

	"github.com/soar/inputicons/internal/gamepad"
	"github.com/soar/inputicons/internal/input"
)

// Server to client message types.
const (
	TypeInputChanged = "input_changed"
	TypeSync         = "sync"
)

// Client to server message types.
const TypeInput = "input"

// WSMessage is sent from server to client.
type WSMessage struct {
	Type      string         `json:"type"`
	Seq       int64          `json:"seq"`
	Timestamp int64          `json:"timestamp"` // Unix milliseconds
	Method    input.Method   `json:"method"`
	Device    int            `json:"device"`
	Family    gamepad.Family `json:"family"`
}

// NewStateMessage creates a message describing the active input method.
func NewStateMessage(typ string, seq int64, method input.Method, device int, family gamepad.Family) *WSMessage {
	return &WSMessage{
		Type:      typ,
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Method:    method,
		Device:    device,
		Family:    family,
	}
}

// ClientMessage is sent from the client to the server. Browsers forward
// their keyboard and mouse input as "input" messages.
type ClientMessage struct {
	Type  string       `json:"type"`
	Event *input.Event `json:"event,omitempty"`
}
