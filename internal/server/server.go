// Package server serves the icon preview page and its HTTP API.
package server

import (
	"context"
	"io/fs"
	"net/http"
	"regexp"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lxzan/gws"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"

	"github.com/soar/inputicons/internal/hub"
	"github.com/soar/inputicons/internal/icons"
	"github.com/soar/inputicons/internal/input"
)

// loadTimeout bounds how long a request waits for the main loop to run its
// deferred icon load.
const loadTimeout = 2 * time.Second

type Options struct {
	Icons       *icons.Icons
	Hub         *hub.Hub
	Broadcaster *hub.Broadcaster
	FrontendFS  fs.FS
	Gatherer    prometheus.Gatherer
	Addr        string
	Log         logrus.FieldLogger
}

type Server struct {
	icons       *icons.Icons
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	frontendFS  fs.FS
	gatherer    prometheus.Gatherer
	addr        string
	log         logrus.FieldLogger
	index       []byte
	httpServer  *http.Server
}

func New(opts Options) *Server {
	s := &Server{
		icons:       opts.Icons,
		hub:         opts.Hub,
		broadcaster: opts.Broadcaster,
		frontendFS:  opts.FrontendFS,
		gatherer:    opts.Gatherer,
		addr:        opts.Addr,
		log:         opts.Log.WithField("component", "server"),
	}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}
	s.index = s.minifiedIndex()
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// minifiedIndex returns index.html with inline CSS and JS minified, or the
// raw page when minification fails.
func (s *Server) minifiedIndex() []byte {
	if s.frontendFS == nil {
		return nil
	}
	raw, err := fs.ReadFile(s.frontendFS, "index.html")
	if err != nil {
		s.log.WithError(err).Warn("preview page missing")
		return nil
	}
	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/css", css.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
	out, err := m.Bytes("text/html", raw)
	if err != nil {
		s.log.WithError(err).Warn("minify preview page")
		return raw
	}
	s.log.WithFields(logrus.Fields{"raw": len(raw), "minified": len(out)}).Debug("preview page minified")
	return out
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Group(func(r chi.Router) {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet},
		}).Handler)
		r.Get("/api/icon", s.handleIcon)
		r.Get("/api/resolve", s.handleResolve)
		r.Get("/api/state", s.handleState)
		r.Get("/api/actions", s.handleActions)
	})

	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	if s.hub != nil {
		r.Get("/ws", s.handleWebSocket())
	}

	r.Get("/", s.handleIndex)
	if s.frontendFS != nil {
		r.Handle("/*", http.FileServer(http.FS(s.frontendFS)))
	}
	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.index == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(s.index)
}

func (s *Server) handleWebSocket() http.HandlerFunc {
	handler := hub.NewHandler(s.hub, s.forwardInput, s.sendInitialState, s.log)
	upgrader := gws.NewUpgrader(handler, &gws.ServerOption{
		Recovery:          gws.Recovery,
		PermessageDeflate: gws.PermessageDeflate{Enabled: true},
	})
	return func(w http.ResponseWriter, r *http.Request) {
		socket, err := upgrader.Upgrade(w, r)
		if err != nil {
			s.log.WithError(err).Warn("websocket upgrade failed")
			return
		}
		go socket.ReadLoop()
	}
}

func (s *Server) sendInitialState(c *hub.Client) {
	if s.broadcaster != nil {
		s.broadcaster.SendInitialState(c)
	}
}

// forwardInput hands browser input to the classifier on the main loop.
func (s *Server) forwardInput(ev input.Event) {
	s.icons.DeferLoad(func() {
		s.icons.HandleEvent(ev)
	})
}

// ListenAndServe returns http.ErrServerClosed once Shutdown was called,
// including when Shutdown ran first.
func (s *Server) ListenAndServe() error {
	s.log.WithField("addr", s.addr).Info("HTTP server listening")
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
