// Package tray shows the system tray menu of the preview service.
package tray

import (
	"fmt"
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"

	"fyne.io/systray"
	"github.com/sirupsen/logrus"

	"github.com/soar/inputicons/internal/gamepad"
	"github.com/soar/inputicons/internal/input"
)

// ShutdownFunc is called when "Exit" is clicked
type ShutdownFunc func()

// Tray owns the tray icon. The status line mirrors the detected input
// method and can be updated from any goroutine.
type Tray struct {
	url      string
	shutdown ShutdownFunc
	log      logrus.FieldLogger

	once    sync.Once
	closing atomic.Bool
	ready   chan struct{}

	status *systray.MenuItem
	open   *systray.MenuItem
	exit   *systray.MenuItem
}

// New creates a tray whose "Open Preview" item opens url.
func New(url string, shutdown ShutdownFunc, log logrus.FieldLogger) *Tray {
	return &Tray{
		url:      url,
		shutdown: shutdown,
		log:      log.WithField("component", "tray"),
		ready:    make(chan struct{}),
	}
}

// Run shows the icon and blocks until Quit or "Exit".
func (t *Tray) Run(icon []byte) {
	systray.Run(func() { t.onReady(icon) }, func() {
		t.closing.Store(true)
		t.log.Info("system tray exiting")
	})
}

// Quit removes the tray icon.
func (t *Tray) Quit() {
	if t.closing.CompareAndSwap(false, true) {
		systray.Quit()
	}
}

// SetStatus updates the status line. Calls before the menu exists are
// dropped.
func (t *Tray) SetStatus(method input.Method, family gamepad.Family) {
	select {
	case <-t.ready:
	default:
		return
	}
	t.status.SetTitle(StatusText(method, family))
}

// StatusText is the status line for a method and family.
func StatusText(method input.Method, family gamepad.Family) string {
	switch method {
	case input.MethodController:
		return fmt.Sprintf("Input: controller (%s)", family)
	case input.MethodKeyboardMouse:
		return "Input: keyboard & mouse"
	}
	return "Input: none"
}

func (t *Tray) onReady(icon []byte) {
	if icon != nil {
		systray.SetIcon(icon)
	}
	systray.SetTitle("inputicons")
	systray.SetTooltip("inputicons " + t.url)

	t.status = systray.AddMenuItem(StatusText(input.MethodNone, gamepad.FamilyNone), "")
	t.status.Disable()
	systray.AddSeparator()
	t.open = systray.AddMenuItem("Open Preview", "Open the icon preview page")
	t.exit = systray.AddMenuItem("Exit", "Quit application")
	close(t.ready)

	go t.loop()
	t.log.Info("system tray initialized")
}

func (t *Tray) loop() {
	for {
		select {
		case <-t.open.ClickedCh:
			if !t.closing.Load() {
				t.openBrowser()
			}
		case <-t.exit.ClickedCh:
			if t.closing.CompareAndSwap(false, true) {
				t.once.Do(t.shutdown)
				systray.Quit()
				return
			}
		}
	}
}

func (t *Tray) openBrowser() {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", t.url)
	case "darwin":
		cmd = exec.Command("open", t.url)
	default:
		cmd = exec.Command("xdg-open", t.url)
	}
	if err := cmd.Start(); err != nil {
		t.log.WithError(err).WithField("url", t.url).Warn("failed to open browser")
	}
}
