package hub

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar/inputicons/internal/gamepad"
	"github.com/soar/inputicons/internal/input"
)

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go h.Run(ctx)
	return h
}

func receive(t *testing.T, c *Client) WSMessage {
	t.Helper()
	select {
	case data, ok := <-c.send:
		require.True(t, ok, "send channel closed")
		var msg WSMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message")
		return WSMessage{}
	}
}

func TestHub_BroadcastAndUnregister(t *testing.T) {
	h := startHub(t)
	a, b := NewClient(h, nil), NewClient(h, nil)
	assert.NotEqual(t, a.ID, b.ID)
	h.Register(a)
	h.Register(b)
	require.Eventually(t, func() bool { return h.Count() == 2 }, time.Second, time.Millisecond)

	h.Broadcast([]byte(`{"type":"sync"}`))
	assert.Equal(t, "sync", receive(t, a).Type)
	assert.Equal(t, "sync", receive(t, b).Type)

	h.Unregister(a)
	require.Eventually(t, func() bool { return h.Count() == 1 }, time.Second, time.Millisecond)
	_, ok := <-a.send
	assert.False(t, ok, "unregistered client's queue is closed")
}

func TestHub_StopClosesClients(t *testing.T) {
	h := NewHub(discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()

	c := NewClient(h, nil)
	h.Register(c)
	cancel()
	<-stopped

	_, ok := <-c.send
	assert.False(t, ok)

	late := NewClient(h, nil)
	assert.False(t, h.Register(late))
	h.Unregister(late)
	_, ok = <-late.send
	assert.False(t, ok)
}

func TestHandler_OpenAfterStopSkipsInitialState(t *testing.T) {
	h := NewHub(discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()

	opened := 0
	e := NewHandler(h, nil, func(c *Client) {
		opened++
		c.Send([]byte("state"))
	}, discardLogger())

	live := NewClient(h, nil)
	require.True(t, e.open(live))
	assert.Equal(t, 1, opened)
	assert.Equal(t, []byte("state"), <-live.send)

	cancel()
	<-stopped

	late := NewClient(h, nil)
	assert.NotPanics(t, func() {
		assert.False(t, e.open(late))
	})
	assert.Equal(t, 1, opened)
}

type fakeSource struct {
	method input.Method
	device int
	family gamepad.Family
	subs   chan func(input.Change)
}

func (f *fakeSource) State() (input.Method, int, gamepad.Family) {
	return f.method, f.device, f.family
}

func (f *fakeSource) Subscribe(fn func(input.Change)) input.SubscriptionID {
	f.subs <- fn
	return 1
}

func (f *fakeSource) Unsubscribe(input.SubscriptionID) bool { return true }

func TestBroadcaster(t *testing.T) {
	h := startHub(t)
	src := &fakeSource{method: input.MethodController, device: 2, family: gamepad.FamilyPS5, subs: make(chan func(input.Change), 1)}
	b := NewBroadcaster(h, src, discardLogger())

	c := NewClient(h, nil)
	h.Register(c)
	require.Eventually(t, func() bool { return h.Count() == 1 }, time.Second, time.Millisecond)

	b.SendInitialState(c)
	first := receive(t, c)
	assert.Equal(t, TypeSync, first.Type)
	assert.Equal(t, gamepad.FamilyPS5, first.Family)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Run(ctx)

	notify := <-src.subs
	notify(input.Change{Method: input.MethodController, Device: 2})

	msg := receive(t, c)
	assert.Equal(t, TypeInputChanged, msg.Type)
	assert.Equal(t, int64(1), msg.Seq)
	assert.Equal(t, input.MethodController, msg.Method)
	assert.Equal(t, 2, msg.Device)
}

func TestHandler_Handle(t *testing.T) {
	var got []input.Event
	e := NewHandler(nil, func(ev input.Event) { got = append(got, ev) }, nil, discardLogger())

	require.NoError(t, e.handle([]byte(`{"type":"input","event":{"kind":"key","device":-1,"key":"space"}}`)))
	require.Len(t, got, 1)
	assert.Equal(t, input.KeyEvent(input.KeySpace, input.Mods{}), got[0])

	for _, key := range []string{"ContextMenu", "F13", "Dead", "é"} {
		require.NoError(t, e.handle([]byte(`{"type":"input","event":{"kind":"key","device":-1,"key":"`+key+`"}}`)), key)
	}
	require.Len(t, got, 5)
	assert.Equal(t, input.KeyUnknown, got[4].Key)
	got = got[:1]

	assert.Error(t, e.handle([]byte(`{"type":"input"}`)))
	assert.Error(t, e.handle([]byte(`{"type":"input","event":{"kind":"none"}}`)))
	assert.Error(t, e.handle([]byte(`{"type":"select_player"}`)))
	assert.Error(t, e.handle([]byte(`not json`)))
	assert.Len(t, got, 1)
}

func TestStateMessageJSON(t *testing.T) {
	data, err := json.Marshal(NewStateMessage(TypeInputChanged, 3, input.MethodKeyboardMouse, -1, gamepad.FamilyXbox360))
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "input_changed", raw["type"])
	assert.Equal(t, "keyboard_mouse", raw["method"])
	assert.Equal(t, "xbox360", raw["family"])
	assert.Equal(t, float64(-1), raw["device"])
}
