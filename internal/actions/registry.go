// Package actions maps input action names to their bound input events.
package actions

import (
	"errors"
	"io"
	"maps"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/soar/inputicons/internal/input"
)

// ErrConfigParse marks a project action file that could not be opened or
// parsed. Built-in actions stay available when it occurs.
var ErrConfigParse = errors.New("action config parse failure")

// Source yields named action bindings.
type Source interface {
	Name() string
	Actions() (map[string][]input.Event, error)
}

// Registry holds the merged action table. Sources are applied in order, so
// later sources override earlier ones on name collisions.
type Registry struct {
	sources []Source
	log     logrus.FieldLogger

	mu      sync.RWMutex
	actions map[string][]input.Event
}

// NewRegistry creates an empty registry; call Reparse to populate it.
func NewRegistry(log logrus.FieldLogger, sources ...Source) *Registry {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Registry{
		sources: sources,
		log:     log.WithField("component", "actions"),
		actions: make(map[string][]input.Event),
	}
}

// Reparse rebuilds the table from all sources, replacing previous contents
// including entries added with Add. A failing source is skipped and
// reported once; its error is returned joined with any others.
func (r *Registry) Reparse() error {
	next := make(map[string][]input.Event)
	var errs []error
	for _, src := range r.sources {
		acts, err := src.Actions()
		if err != nil {
			r.log.WithError(err).WithField("source", src.Name()).Warn("input actions unavailable, custom actions disabled until reparse")
			errs = append(errs, err)
			continue
		}
		maps.Copy(next, acts)
	}

	r.mu.Lock()
	r.actions = next
	r.mu.Unlock()

	r.log.WithField("count", len(next)).Debug("input actions parsed")
	return errors.Join(errs...)
}

// Add registers or replaces an action at runtime.
func (r *Registry) Add(name string, events []input.Event) {
	r.mu.Lock()
	r.actions[name] = slices.Clone(events)
	r.mu.Unlock()
}

// Has reports whether name is a registered action.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.actions[name]
	return ok
}

// Events returns the bindings of name in registration order. Unknown
// actions yield nil.
func (r *Registry) Events(name string) []input.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.actions[name])
}

// Names returns all action names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.actions))
}

// MatchingEvent picks the binding of name that best represents the given
// input method and controller device.
//
// Keyboard/mouse requests return the first keyboard or mouse binding.
// Controller requests return the first binding for device; failing that
// the first any-device binding; failing that the first binding for some
// other device. Invalid bindings are skipped.
func (r *Registry) MatchingEvent(name string, method input.Method, device int) (input.Event, bool) {
	events := r.Events(name)
	anyIdx, otherIdx := -1, -1
	for i, ev := range events {
		if !ev.Valid() {
			continue
		}
		switch {
		case ev.IsKeyboardMouse():
			if method == input.MethodKeyboardMouse {
				return ev, true
			}
		case ev.IsJoypad():
			if method != input.MethodController {
				continue
			}
			if ev.Device == device {
				return ev, true
			}
			if ev.Device < 0 {
				if anyIdx < 0 {
					anyIdx = i
				}
			} else if otherIdx < 0 {
				otherIdx = i
			}
		}
	}
	if anyIdx >= 0 {
		return events[anyIdx], true
	}
	if otherIdx >= 0 {
		return events[otherIdx], true
	}
	return input.Event{}, false
}
