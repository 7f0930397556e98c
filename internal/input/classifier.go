package input

import (
	"io"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// MouseVelocityWindow is the sliding window for the mouse velocity test.
const MouseVelocityWindow = 100 * time.Millisecond

// ClassifierConfig holds the thresholds used to decide which input method
// is active.
type ClassifierConfig struct {
	// Deadzone an axis value must strictly exceed to count as controller input.
	Deadzone float64
	// MouseRemap allows mouse motion to switch to keyboard/mouse.
	MouseRemap bool
	// MouseMinMovement is the minimum approximate velocity (pixels per
	// second, Manhattan distance) for mouse motion to count.
	MouseMinMovement float64
}

// DefaultClassifierConfig mirrors the stock settings.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{Deadzone: 0.5, MouseRemap: true, MouseMinMovement: 200}
}

// Change is delivered to subscribers when the input method or the active
// controller changes.
type Change struct {
	Method Method `json:"method"`
	Device int    `json:"device"`
}

// SubscriptionID identifies a subscriber for Unsubscribe.
type SubscriptionID uint64

type subscription struct {
	id SubscriptionID
	fn func(Change)
}

// Classifier tracks the last active input method and controller.
type Classifier struct {
	cfg  ClassifierConfig
	now  func() time.Time
	log  logrus.FieldLogger
	pads *Joypads

	mu          sync.Mutex
	method      Method
	device      int
	windowStart time.Time
	velocity    int

	subMu  sync.Mutex
	nextID SubscriptionID
	subs   []subscription
}

type ClassifierOption func(*Classifier)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) ClassifierOption {
	return func(c *Classifier) { c.now = now }
}

func WithLogger(l logrus.FieldLogger) ClassifierOption {
	return func(c *Classifier) { c.log = l }
}

// NewClassifier starts in keyboard/mouse mode with no controller.
func NewClassifier(cfg ClassifierConfig, opts ...ClassifierOption) *Classifier {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	c := &Classifier{
		cfg:    cfg,
		now:    time.Now,
		log:    discard,
		pads:   NewJoypads(),
		method: MethodKeyboardMouse,
		device: -1,
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.WithField("component", "classifier")
	return c
}

// Joypads exposes the connected controller set.
func (c *Classifier) Joypads() *Joypads {
	return c.pads
}

// State returns the current method and controller device.
func (c *Classifier) State() (Method, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.method, c.device
}

// LastController returns the last active controller device, or -1.
func (c *Classifier) LastController() int {
	_, d := c.State()
	return d
}

// HandleEvent classifies one raw event. It returns true when the state
// changed and subscribers were notified.
func (c *Classifier) HandleEvent(ev Event) bool {
	c.mu.Lock()
	method, device := c.method, c.device
	switch ev.Kind {
	case EventKey, EventMouseButton:
		method = MethodKeyboardMouse
	case EventMouseMotion:
		if c.cfg.MouseRemap && c.testMouseVelocity(ev.DX, ev.DY) {
			method = MethodKeyboardMouse
		}
	case EventJoypadButton:
		method, device = MethodController, ev.Device
	case EventJoypadMotion:
		if math.Abs(ev.AxisValue) > c.cfg.Deadzone {
			method, device = MethodController, ev.Device
		}
	}
	changed := method != c.method || device != c.device
	if changed {
		c.method, c.device = method, device
	}
	c.mu.Unlock()

	if changed {
		c.log.WithFields(logrus.Fields{"method": method, "device": device, "event": ev.Kind}).Debug("input method changed")
		c.notify(Change{Method: method, Device: device})
	}
	return changed
}

// testMouseVelocity approximates velocity with a Manhattan distance sum
// over a fixed window. Callers hold c.mu.
func (c *Classifier) testMouseVelocity(dx, dy float64) bool {
	now := c.now()
	if c.windowStart.IsZero() || now.Sub(c.windowStart) > MouseVelocityWindow {
		c.windowStart = now
		c.velocity = 0
	}
	c.velocity += int(math.Round(math.Abs(dx) + math.Abs(dy)))
	return float64(c.velocity)/MouseVelocityWindow.Seconds() > c.cfg.MouseMinMovement
}

// Connect records a newly connected controller and makes it active.
func (c *Classifier) Connect(device int, name string) {
	c.pads.add(device, name)
	c.log.WithFields(logrus.Fields{"device": device, "name": name}).Info("controller connected")
	c.set(MethodController, device)
}

// Disconnect forgets a controller. With none left the method falls back to
// keyboard/mouse, otherwise the lowest remaining device becomes active.
func (c *Classifier) Disconnect(device int) {
	c.pads.remove(device)
	c.log.WithField("device", device).Info("controller disconnected")
	c.DetectLikely()
}

// DetectLikely derives the method from the connected controllers. The host
// runs it once after subscribers are attached.
func (c *Classifier) DetectLikely() {
	ids := c.pads.Connected()
	if len(ids) == 0 {
		c.set(MethodKeyboardMouse, -1)
		return
	}
	c.set(MethodController, ids[0])
}

// Refresh re-notifies subscribers with the current state.
func (c *Classifier) Refresh() {
	m, d := c.State()
	c.notify(Change{Method: m, Device: d})
}

// set always notifies: a different pad may now sit at the same index.
func (c *Classifier) set(method Method, device int) {
	c.mu.Lock()
	c.method, c.device = method, device
	c.mu.Unlock()
	c.notify(Change{Method: method, Device: device})
}

// Subscribe registers fn for change notifications. Notifications are
// synchronous and delivered in registration order.
func (c *Classifier) Subscribe(fn func(Change)) SubscriptionID {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	c.nextID++
	c.subs = append(c.subs, subscription{id: c.nextID, fn: fn})
	return c.nextID
}

// Unsubscribe removes a subscriber. It reports whether id was registered.
func (c *Classifier) Unsubscribe(id SubscriptionID) bool {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for i, s := range c.subs {
		if s.id == id {
			c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Classifier) notify(ch Change) {
	c.subMu.Lock()
	subs := make([]subscription, len(c.subs))
	copy(subs, c.subs)
	c.subMu.Unlock()

	for _, s := range subs {
		s.fn(ch)
	}
}
