// Package icons resolves logical input paths to icon images for the input
// method currently in use.
package icons

import (
	"image"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/soar/inputicons/internal/actions"
	"github.com/soar/inputicons/internal/gamepad"
	"github.com/soar/inputicons/internal/input"
)

// Request overrides the state used for one resolution. Its zero value
// resolves against live state: MethodNone uses the current input method,
// an unset device the last active controller and FamilyNone the detected
// controller family.
type Request struct {
	Method input.Method
	Family gamepad.Family

	device    int
	hasDevice bool
}

// Current resolves against the live classifier state.
var Current = Request{}

// WithDevice returns a copy of r pinned to controller device.
func (r Request) WithDevice(device int) Request {
	r.device, r.hasDevice = device, true
	return r
}

// Device reports the pinned controller, if any.
func (r Request) Device() (int, bool) { return r.device, r.hasDevice }

// ShowMode restricts chords to one input method.
type ShowMode int

const (
	ShowAny ShowMode = iota
	ShowKeyboardMouse
	ShowController
)

// Config collects the tunables of an Icons context.
type Config struct {
	Fallback   gamepad.Family
	Classifier input.ClassifierConfig
	CustomDir  string
	DefaultDir string
	Extension  string
}

// Option customizes an Icons context.
type Option func(*Icons)

func WithLogger(l logrus.FieldLogger) Option {
	return func(i *Icons) { i.log = l }
}

// WithStore replaces the OS filesystem asset store.
func WithStore(s AssetStore) Option {
	return func(i *Icons) { i.store = s }
}

// WithRegistry replaces the built-in action registry.
func WithRegistry(r *actions.Registry) Option {
	return func(i *Icons) { i.registry = r }
}

func WithMetrics(m *Metrics) Option {
	return func(i *Icons) { i.metrics = m }
}

// WithClock sets the time source of the mouse velocity heuristic.
func WithClock(now func() time.Time) Option {
	return func(i *Icons) { i.now = now }
}

// Icons ties the classifier, the action registry and the resolver
// together. It is the object hosts pass to their icon consumers.
type Icons struct {
	cfg      Config
	log      logrus.FieldLogger
	store    AssetStore
	registry *actions.Registry
	metrics  *Metrics
	now      func() time.Time

	classifier *input.Classifier
	resolver   *Resolver
	cache      *Cache
	queue      DeferQueue

	detectPending atomic.Bool

	mu      sync.Mutex
	running bool
	metrSub input.SubscriptionID
}

func New(cfg Config, opts ...Option) *Icons {
	i := &Icons{cfg: cfg}
	for _, opt := range opts {
		opt(i)
	}
	if i.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		i.log = l
	}
	if i.store == nil {
		i.store = NewFSStore(nil)
	}
	if i.registry == nil {
		i.registry = actions.NewRegistry(i.log, actions.Builtins{})
	}

	copts := []input.ClassifierOption{input.WithLogger(i.log)}
	if i.now != nil {
		copts = append(copts, input.WithClock(i.now))
	}
	i.classifier = input.NewClassifier(cfg.Classifier, copts...)
	i.resolver = NewResolver(ResolverConfig{
		CustomDir:  cfg.CustomDir,
		DefaultDir: cfg.DefaultDir,
		Extension:  cfg.Extension,
		Fallback:   cfg.Fallback,
	}, i.registry, i.classifier.Joypads(), i.classifier.LastController)
	i.cache = NewCache(i.store, i.metrics, i.log.WithField("component", "icon-cache"))
	return i
}

// Start parses the action table and schedules the initial input method
// detection for the next Process call. A parse error is returned but the
// context still runs with the actions that did load.
func (i *Icons) Start() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.running {
		return nil
	}
	i.running = true
	i.metrSub = i.classifier.Subscribe(func(ch input.Change) {
		i.metrics.inputChanged(ch.Method.String())
	})
	i.detectPending.Store(true)
	return i.registry.Reparse()
}

// Stop detaches internal subscribers and drops pending deferred loads.
func (i *Icons) Stop() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !i.running {
		return
	}
	i.running = false
	i.classifier.Unsubscribe(i.metrSub)
	i.detectPending.Store(false)
	if n := i.queue.Clear(); n > 0 {
		i.log.WithField("count", n).Debug("dropped deferred loads")
	}
}

// Process runs once per host frame on the main goroutine: the first call
// after Start performs initial detection, every call drains deferred loads.
func (i *Icons) Process() {
	if i.detectPending.CompareAndSwap(true, false) {
		i.classifier.DetectLikely()
	}
	i.queue.Drain()
}

// DeferLoad queues fn to run during the next Process call.
func (i *Icons) DeferLoad(fn func()) {
	i.queue.Push(fn)
}

func (i *Icons) HandleEvent(ev input.Event) bool { return i.classifier.HandleEvent(ev) }

func (i *Icons) Connect(device int, name string) { i.classifier.Connect(device, name) }

func (i *Icons) Disconnect(device int) { i.classifier.Disconnect(device) }

// Refresh notifies subscribers without a state change, e.g. after the
// action table or asset directories changed.
func (i *Icons) Refresh() { i.classifier.Refresh() }

func (i *Icons) Subscribe(fn func(input.Change)) input.SubscriptionID {
	return i.classifier.Subscribe(fn)
}

func (i *Icons) Unsubscribe(id input.SubscriptionID) bool {
	return i.classifier.Unsubscribe(id)
}

// State reports the current input method, controller and that
// controller's family.
func (i *Icons) State() (input.Method, int, gamepad.Family) {
	method, device := i.classifier.State()
	return method, device, i.resolver.Family(device, gamepad.FamilyNone)
}

func (i *Icons) Registry() *actions.Registry { return i.registry }

func (i *Icons) Resolver() *Resolver { return i.resolver }

func (i *Icons) Cache() *Cache { return i.cache }

// fill replaces the "current" markers of req with live state.
func (i *Icons) fill(req Request) Request {
	method, _ := i.classifier.State()
	if req.Method == input.MethodNone {
		req.Method = method
	}
	if !req.hasDevice {
		req = req.WithDevice(i.classifier.LastController())
	}
	return req
}

// Candidates lists the asset files tried for path, in order.
func (i *Icons) Candidates(path string, req Request) []string {
	req = i.fill(req)
	i.metrics.resolved()
	return i.resolver.Resolve(path, req.Method, req.device, req.Family)
}

// ResolveIcon returns the first loadable candidate for path with its file
// path. ok is false when no candidate loads.
func (i *Icons) ResolveIcon(path string, req Request) (img image.Image, file string, ok bool) {
	for _, c := range i.Candidates(path, req) {
		img, err := i.cache.LoadOrGet(c)
		if err != nil {
			continue
		}
		return img, c, true
	}
	return nil, "", false
}

// ResolveIconTTS describes the icon for path in words.
func (i *Icons) ResolveIconTTS(path string, req Request) string {
	req = i.fill(req)
	return TTS(i.resolver.AssetToken(path, req.Method, req.device, req.Family))
}

// ModifierIcons returns one image per modifier held by ev, skipping
// modifiers without an asset.
func (i *Icons) ModifierIcons(ev input.Event) []image.Image {
	var out []image.Image
	for _, token := range i.resolver.Modifiers(ev) {
		for _, c := range i.resolver.Candidates(token) {
			if img, err := i.cache.LoadOrGet(c); err == nil {
				out = append(out, img)
				break
			}
		}
	}
	return out
}

// Icons returns the images drawn for path: the modifiers of the bound
// event followed by the primary icon. Nothing is returned when show
// excludes the current input method.
func (i *Icons) Icons(path string, req Request, show ShowMode) []image.Image {
	if !i.canShow(show) {
		return nil
	}
	req = i.fill(req)

	var out []image.Image
	if i.resolver.Kind(path) == PathInputAction {
		if ev, ok := i.registry.MatchingEvent(path, req.Method, req.device); ok {
			out = append(out, i.ModifierIcons(ev)...)
		}
	}
	if img, _, ok := i.ResolveIcon(path, req); ok {
		out = append(out, img)
	}
	return out
}

// IconsAsync resolves like Icons during the next Process call and hands
// the result to done there.
func (i *Icons) IconsAsync(path string, req Request, show ShowMode, done func([]image.Image)) {
	i.DeferLoad(func() {
		done(i.Icons(path, req, show))
	})
}

func (i *Icons) canShow(show ShowMode) bool {
	method, _ := i.classifier.State()
	switch show {
	case ShowKeyboardMouse:
		return method == input.MethodKeyboardMouse
	case ShowController:
		return method == input.MethodController
	default:
		return true
	}
}

// Resolution describes how a path resolves for a request.
type Resolution struct {
	Path       string   `json:"path"`
	Kind       PathKind `json:"kind"`
	Token      string   `json:"token"`
	Candidates []string `json:"candidates"`
	Modifiers  []string `json:"modifiers,omitempty"`
	TTS        string   `json:"tts"`
}

// Describe resolves path without loading any asset.
func (i *Icons) Describe(path string, req Request) Resolution {
	req = i.fill(req)
	token := i.resolver.AssetToken(path, req.Method, req.device, req.Family)
	res := Resolution{
		Path:       path,
		Kind:       i.resolver.Kind(path),
		Token:      token,
		Candidates: i.resolver.Candidates(token),
		TTS:        TTS(token),
	}
	if res.Kind == PathInputAction {
		if ev, ok := i.registry.MatchingEvent(path, req.Method, req.device); ok {
			res.Modifiers = i.resolver.Modifiers(ev)
		}
	}
	i.metrics.resolved()
	return res
}

// Joypads lists connected controllers.
func (i *Icons) Joypads() *input.Joypads { return i.classifier.Joypads() }
