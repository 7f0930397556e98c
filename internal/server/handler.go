package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/url"
	"strconv"

	"github.com/soar/inputicons/internal/gamepad"
	"github.com/soar/inputicons/internal/icons"
	"github.com/soar/inputicons/internal/input"
)

// parseRequest reads method, device and family overrides from a query.
// Missing values select the live state.
func parseRequest(q url.Values) (icons.Request, error) {
	req := icons.Current
	m, err := input.ParseMethod(q.Get("method"))
	if err != nil {
		return req, err
	}
	req.Method = m
	if d := q.Get("device"); d != "" {
		n, err := strconv.Atoi(d)
		if err != nil {
			return req, fmt.Errorf("invalid device %q", d)
		}
		req = req.WithDevice(n)
	}
	f, err := gamepad.ParseFamily(q.Get("family"))
	if err != nil {
		return req, err
	}
	req.Family = f
	return req, nil
}

func (s *Server) requestFor(w http.ResponseWriter, r *http.Request) (string, icons.Request, bool) {
	q := r.URL.Query()
	path := q.Get("path")
	if path == "" {
		http.Error(w, "missing path", http.StatusBadRequest)
		return "", icons.Request{}, false
	}
	req, err := parseRequest(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", icons.Request{}, false
	}
	return path, req, true
}

type iconResult struct {
	img  image.Image
	file string
	ok   bool
}

// handleIcon loads the icon on the main loop and returns it as PNG.
func (s *Server) handleIcon(w http.ResponseWriter, r *http.Request) {
	path, req, ok := s.requestFor(w, r)
	if !ok {
		return
	}

	done := make(chan iconResult, 1)
	s.icons.DeferLoad(func() {
		img, file, ok := s.icons.ResolveIcon(path, req)
		done <- iconResult{img: img, file: file, ok: ok}
	})

	ctx, cancel := context.WithTimeout(r.Context(), loadTimeout)
	defer cancel()

	var res iconResult
	select {
	case res = <-done:
	case <-ctx.Done():
		http.Error(w, "icon load timed out", http.StatusServiceUnavailable)
		return
	}
	if !res.ok {
		http.Error(w, "no icon for "+path, http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, res.img); err != nil {
		s.log.WithError(err).WithField("file", res.file).Error("encode icon")
		http.Error(w, "encode icon", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Icon-File", res.file)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	path, req, ok := s.requestFor(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, s.icons.Describe(path, req))
}

type joypadInfo struct {
	Device int            `json:"device"`
	Name   string         `json:"name"`
	Family gamepad.Family `json:"family"`
}

type stateResponse struct {
	Method  input.Method   `json:"method"`
	Device  int            `json:"device"`
	Family  gamepad.Family `json:"family"`
	Joypads []joypadInfo   `json:"joypads"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	method, device, family := s.icons.State()
	resp := stateResponse{Method: method, Device: device, Family: family, Joypads: []joypadInfo{}}
	pads := s.icons.Joypads()
	for _, id := range pads.Connected() {
		resp.Joypads = append(resp.Joypads, joypadInfo{
			Device: id,
			Name:   pads.Name(id),
			Family: s.icons.Resolver().Family(id, gamepad.FamilyNone),
		})
	}
	s.writeJSON(w, resp)
}

func (s *Server) handleActions(w http.ResponseWriter, r *http.Request) {
	reg := s.icons.Registry()
	out := make(map[string][]string)
	for _, name := range reg.Names() {
		bindings := []string{}
		for _, ev := range reg.Events(name) {
			bindings = append(bindings, ev.String())
		}
		out[name] = bindings
	}
	s.writeJSON(w, out)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Warn("write response")
	}
}
