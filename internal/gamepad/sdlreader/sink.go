package sdlreader

import (
	"errors"

	"github.com/soar/inputicons/internal/input"
)

// ErrUnavailable is returned by Run in builds without SDL.
var ErrUnavailable = errors.New("SDL joystick support not built in")

// Sink receives controller input translated by a Reader.
type Sink interface {
	Connect(device int, name string)
	Disconnect(device int)
	HandleEvent(ev input.Event) bool
}
