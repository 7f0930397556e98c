package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar/inputicons/internal/actions"
	"github.com/soar/inputicons/internal/gamepad"
	"github.com/soar/inputicons/internal/icons"
	"github.com/soar/inputicons/internal/input"
)

const rawIndex = `<!DOCTYPE html>
<html>
  <head>
    <style>
      body { color : #000000 ; }
    </style>
  </head>
  <body>
    <p id="status">  hello  </p>
    <script>
      const greeting = "hi";
      console.log( greeting );
    </script>
  </body>
</html>
`

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image1x1()))
	return buf.Bytes()
}

func newTestServer(t *testing.T) (*httptest.Server, *icons.Icons) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "assets/key/space.png", testPNG(t), 0o644))

	reg := prometheus.NewRegistry()
	ic := icons.New(icons.Config{
		Fallback:   gamepad.FamilyXbox360,
		Classifier: input.DefaultClassifierConfig(),
		DefaultDir: "assets",
	},
		icons.WithLogger(log),
		icons.WithStore(icons.NewFSStore(fs)),
		icons.WithMetrics(icons.NewMetrics(reg)),
		icons.WithRegistry(actions.NewRegistry(log, actions.Static{
			"jump": {
				input.KeyEvent(input.KeySpace, input.Mods{}),
				input.JoypadButtonEvent(input.AnyDevice, input.JoyA),
			},
		})),
	)
	require.NoError(t, ic.Start())

	ctx, cancel := context.WithCancel(context.Background())
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		ticker := time.NewTicker(time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				ic.Process()
			}
		}
	}()

	s := New(Options{
		Icons:      ic,
		FrontendFS: fstest.MapFS{"index.html": {Data: []byte(rawIndex)}},
		Gatherer:   reg,
		Log:        log,
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		cancel()
		<-loopDone
		ic.Stop()
	})
	return ts, ic
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestIconEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := get(t, ts.URL+"/api/icon?path=jump")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, "assets/key/space.png", resp.Header.Get("X-Icon-File"))
	_, err := png.Decode(bytes.NewReader(body))
	assert.NoError(t, err)

	tests := []struct {
		query string
		code  int
	}{
		{"path=jump&method=controller", http.StatusNotFound},
		{"path=key/nope", http.StatusNotFound},
		{"", http.StatusBadRequest},
		{"path=jump&family=gamecube", http.StatusBadRequest},
		{"path=jump&method=telepathy", http.StatusBadRequest},
		{"path=jump&device=first", http.StatusBadRequest},
	}
	for _, tt := range tests {
		resp, _ := get(t, ts.URL+"/api/icon?"+tt.query)
		assert.Equal(t, tt.code, resp.StatusCode, tt.query)
	}
}

func TestResolveEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := get(t, ts.URL+"/api/resolve?path=jump&method=controller&family=switch")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res icons.Resolution
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, "switch/b", res.Token)
	assert.Equal(t, []string{"assets/switch/b.png"}, res.Candidates)
	assert.Equal(t, "b", res.TTS)
	assert.Contains(t, string(body), `"kind":"input_action"`)
}

func TestStateAndActionsEndpoints(t *testing.T) {
	ts, ic := newTestServer(t)
	ic.Connect(4, "DualSense Wireless Controller")

	_, body := get(t, ts.URL+"/api/state")
	var state map[string]any
	require.NoError(t, json.Unmarshal(body, &state))
	assert.Equal(t, "controller", state["method"])
	assert.Equal(t, float64(4), state["device"])
	assert.Equal(t, "ps5", state["family"])
	require.Len(t, state["joypads"], 1)

	_, body = get(t, ts.URL+"/api/actions")
	var acts map[string][]string
	require.NoError(t, json.Unmarshal(body, &acts))
	assert.Equal(t, []string{"key:space", "joypad_button:a"}, acts["jump"])
}

func TestIndexIsMinified(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := get(t, ts.URL+"/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Less(t, len(body), len(rawIndex))
	assert.Contains(t, string(body), "hello")
}

func TestMetricsAndCORS(t *testing.T) {
	ts, _ := newTestServer(t)
	get(t, ts.URL+"/api/resolve?path=jump")

	_, body := get(t, ts.URL+"/metrics")
	assert.Contains(t, string(body), "inputicons_resolutions_total")

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/state", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.test")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestShutdownBeforeListen(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	s := New(Options{Addr: "127.0.0.1:0", Log: log})

	require.NoError(t, s.Shutdown(context.Background()))

	errc := make(chan error, 1)
	go func() { errc <- s.ListenAndServe() }()
	select {
	case err := <-errc:
		assert.True(t, errors.Is(err, http.ErrServerClosed), "got %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("ListenAndServe kept running after Shutdown")
	}
}
