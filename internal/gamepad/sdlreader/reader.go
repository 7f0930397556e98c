//go:build !nosdl

// Package sdlreader feeds joystick input read through SDL3 to a Sink.
// Build with -tags nosdl for hosts without libSDL3; Run then returns
// ErrUnavailable.
package sdlreader

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/jupiterrider/purego-sdl3/sdl"
	"github.com/sirupsen/logrus"

	"github.com/soar/inputicons/internal/gamepad"
)

const pollDelayNS = 16_000_000 // ~60Hz

type joystickInfo struct {
	joystick *sdl.Joystick
	mapping  *gamepad.DeviceMapping
	name     string
	id       sdl.JoystickID
}

// Reader reads joysticks through SDL3 and forwards connects, disconnects
// and button/axis events to a Sink. SDL instance ids are used as device
// indices.
type Reader struct {
	sink      Sink
	log       logrus.FieldLogger
	joysticks map[sdl.JoystickID]*joystickInfo

	// AfterInit runs on the reader thread once SDL is initialized.
	AfterInit func()
}

func NewReader(sink Sink, log logrus.FieldLogger) *Reader {
	return &Reader{
		sink:      sink,
		log:       log.WithField("component", "sdl"),
		joysticks: make(map[sdl.JoystickID]*joystickInfo),
	}
}

// Run initializes SDL and runs the event loop on a locked OS thread until
// ctx is done.
func (r *Reader) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if !sdl.Init(sdl.InitJoystick) {
		return fmt.Errorf("SDL init: %w", errors.New(sdl.GetError()))
	}
	defer sdl.Quit()

	r.log.Info("SDL3 joystick subsystem initialized")
	if r.AfterInit != nil {
		r.AfterInit()
	}

	// Check for already-connected joysticks
	for _, id := range sdl.GetJoysticks() {
		r.openJoystick(id)
	}

	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return nil
		default:
		}

		r.processEvents()
		sdl.DelayNS(pollDelayNS)
	}
}

func (r *Reader) processEvents() {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			r.openJoystick(event.JDevice().Which)

		case sdl.EventJoystickRemoved:
			r.removeJoystick(event.JDevice().Which)

		case sdl.EventJoystickButtonDown:
			be := event.JButton()
			info, ok := r.joysticks[be.Which]
			if !ok {
				continue
			}
			if ev, ok := info.mapping.ButtonEvent(int(be.Which), int32(be.Button)); ok {
				r.sink.HandleEvent(ev)
			} else {
				r.log.WithFields(logrus.Fields{"index": be.Button, "joystick": be.Which}).Debug("unmapped button")
			}

		case sdl.EventJoystickAxisMotion:
			ae := event.JAxis()
			info, ok := r.joysticks[ae.Which]
			if !ok {
				continue
			}
			if ev, ok := info.mapping.AxisEvent(int(ae.Which), int32(ae.Axis), ae.Value); ok {
				r.sink.HandleEvent(ev)
			}

		case sdl.EventJoystickHatMotion:
			he := event.JHat()
			info, ok := r.joysticks[he.Which]
			if !ok {
				continue
			}
			for _, ev := range info.mapping.HatEvents(int(he.Which), he.Value) {
				r.sink.HandleEvent(ev)
			}
		}
	}
}

func (r *Reader) openJoystick(instanceID sdl.JoystickID) {
	if _, exists := r.joysticks[instanceID]; exists {
		return
	}

	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		r.log.WithField("joystick", instanceID).Warnf("failed to open joystick: %s", sdl.GetError())
		return
	}

	jsID := sdl.GetJoystickID(js)
	vendorID := sdl.GetJoystickVendor(js)
	productID := sdl.GetJoystickProduct(js)
	name := sdl.GetJoystickName(js)
	mapping := gamepad.GetMapping(vendorID, productID)

	r.joysticks[jsID] = &joystickInfo{
		joystick: js,
		mapping:  mapping,
		name:     name,
		id:       jsID,
	}

	r.log.WithFields(logrus.Fields{
		"name":    name,
		"vid":     fmt.Sprintf("%04X", vendorID),
		"pid":     fmt.Sprintf("%04X", productID),
		"mapping": mapping.Name,
		"axes":    sdl.GetNumJoystickAxes(js),
		"buttons": sdl.GetNumJoystickButtons(js),
		"hats":    sdl.GetNumJoystickHats(js),
	}).Info("joystick connected")

	r.sink.Connect(int(jsID), name)
}

func (r *Reader) removeJoystick(instanceID sdl.JoystickID) {
	info, exists := r.joysticks[instanceID]
	if !exists {
		return
	}

	r.log.WithField("name", info.name).Info("joystick disconnected")
	sdl.CloseJoystick(info.joystick)
	delete(r.joysticks, instanceID)

	r.sink.Disconnect(int(instanceID))
}

func (r *Reader) closeAll() {
	for id, info := range r.joysticks {
		sdl.CloseJoystick(info.joystick)
		delete(r.joysticks, id)
	}
}
