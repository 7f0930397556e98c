package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/soar/inputicons/internal/actions"
	"github.com/soar/inputicons/internal/config"
	"github.com/soar/inputicons/internal/console"
	"github.com/soar/inputicons/internal/gamepad/sdlreader"
	"github.com/soar/inputicons/internal/hub"
	"github.com/soar/inputicons/internal/icons"
	"github.com/soar/inputicons/internal/input"
	"github.com/soar/inputicons/internal/server"
	"github.com/soar/inputicons/internal/tray"
)

const frameInterval = time.Second / 60

// Cross-platform signal handling: use os.Interrupt on all platforms
// On Windows: os.Interrupt is sent when Ctrl+C is pressed
// On Unix: os.Interrupt is equivalent to syscall.SIGINT
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "inputicons:", err)
		os.Exit(1)
	}
}

func run() error {
	fromConsole := console.IsRunningFromConsole()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	if cfg.ConfigFile != "" {
		log.WithField("file", cfg.ConfigFile).Info("config loaded")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	sources := []actions.Source{actions.Builtins{}}
	if cfg.ProjectFile != "" {
		sources = append(sources, actions.ProjectFile{Path: cfg.ProjectFile})
	}
	registry := actions.NewRegistry(log, sources...)

	ic := icons.New(cfg.Icons(),
		icons.WithLogger(log),
		icons.WithRegistry(registry),
		icons.WithMetrics(icons.NewMetrics(reg)),
	)
	if err := ic.Start(); err != nil {
		log.WithError(err).Warn("some input actions could not be loaded")
	}
	defer ic.Stop()

	ctx, cancel := signal.NotifyContext(context.Background(), shutdownSignals...)
	defer cancel()
	reregister := console.SetupConsoleHandler(cancel)

	h := hub.NewHub(log)
	broadcaster := hub.NewBroadcaster(h, ic, log)
	srv := server.New(server.Options{
		Icons:       ic,
		Hub:         h,
		Broadcaster: broadcaster,
		FrontendFS:  getFrontendFS(),
		Gatherer:    reg,
		Addr:        cfg.Addr,
		Log:         log,
	})

	reader := sdlreader.NewReader(deferredSink{ic}, log)
	reader.AfterInit = reregister

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h.Run(gctx)
		return nil
	})
	g.Go(func() error {
		broadcaster.Run(gctx)
		return nil
	})
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("HTTP server shutdown error")
		}
		return nil
	})
	g.Go(func() error {
		// Browser input still works without controllers. Default builds
		// load libSDL3 at startup; -tags nosdl builds get ErrUnavailable.
		if err := reader.Run(gctx); err != nil {
			log.WithError(err).Warn("controller input unavailable")
		}
		return nil
	})
	g.Go(func() error {
		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				ic.Process()
			}
		}
	})
	if cfg.ProjectFile != "" && cfg.WatchProject {
		w := actions.NewWatcher(registry, cfg.ProjectFile, func(err error) {
			if err == nil {
				ic.DeferLoad(ic.Refresh)
			}
		}, log)
		g.Go(func() error {
			if err := w.Run(gctx); err != nil {
				log.WithError(err).Warn("project file watch disabled")
			}
			return nil
		})
	}

	url := previewURL(cfg.Addr)
	log.WithField("url", url).Info("inputicons started")

	if runtime.GOOS == "windows" && !fromConsole {
		t := tray.New(url, tray.ShutdownFunc(cancel), log)
		sub := ic.Subscribe(func(input.Change) {
			method, _, family := ic.State()
			t.SetStatus(method, family)
		})
		go func() {
			<-gctx.Done()
			ic.Unsubscribe(sub)
			t.Quit()
		}()
		go t.Run(tray.GetIcon())
	} else {
		log.Info("press Ctrl+C to exit")
	}

	err = g.Wait()
	log.Info("inputicons stopped")
	return err
}

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.LogFile != "" {
		log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // MiB
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
			LocalTime:  true,
		}))
	}
	return log
}

func previewURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}

// deferredSink hands controller input from the SDL thread to the frame
// loop, which owns the icon context.
type deferredSink struct {
	ic *icons.Icons
}

func (s deferredSink) Connect(device int, name string) {
	s.ic.DeferLoad(func() { s.ic.Connect(device, name) })
}

func (s deferredSink) Disconnect(device int) {
	s.ic.DeferLoad(func() { s.ic.Disconnect(device) })
}

func (s deferredSink) HandleEvent(ev input.Event) bool {
	s.ic.DeferLoad(func() { s.ic.HandleEvent(ev) })
	return true
}
