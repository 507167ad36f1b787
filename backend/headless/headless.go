// Package headless provides a backend that has no real outputs or
// input devices. Outputs and devices are added by hand, which makes
// it useful for tests and for replaying recorded input.
package headless

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"deedles.dev/wlseat/display"
	"deedles.dev/wlseat/internal/debug"
	"deedles.dev/wlseat/seat"
	"golang.org/x/sys/unix"
)

// ErrRenderSetup is wrapped by the error returned from New when the
// render setup function fails.
var ErrRenderSetup = errors.New("render setup failed")

// RenderSetupFunc is called by New once the backend exists. A
// non-nil error aborts creation of the backend.
type RenderSetupFunc func(b *Backend) error

// Backend is a headless backend. It has no outputs or input devices
// until they are added.
type Backend struct {
	display *display.Display
	start   time.Time

	outputs []*Output
	inputs  []*InputDevice
	serial  int
}

// New creates a headless backend for d. If setup is not nil, it is
// called before New returns.
func New(d *display.Display, setup RenderSetupFunc) (*Backend, error) {
	if d == nil {
		return nil, seat.ErrNoDisplay
	}

	b := Backend{
		display: d,
		start:   time.Now(),
	}
	if setup != nil {
		err := setup(&b)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRenderSetup, err)
		}
	}

	return &b, nil
}

func (b *Backend) Display() *display.Display {
	return b.display
}

func (b *Backend) nextID() int {
	b.serial++
	return b.serial
}

// AddOutput creates an in-memory output with the given size. It
// returns nil if either dimension is zero.
func (b *Backend) AddOutput(width, height uint32) *Output {
	if width == 0 || height == 0 {
		debug.Log("invalid headless output size", "width", width, "height", height)
		return nil
	}

	o := Output{
		backend: b,
		name:    fmt.Sprintf("HEADLESS-%v", len(b.outputs)+1),
		width:   width,
		height:  height,
	}
	b.outputs = append(b.outputs, &o)
	return &o
}

// Outputs returns the outputs that have been added, in order.
func (b *Backend) Outputs() []*Output {
	return slices.Clone(b.outputs)
}

// AddInputDevice creates a new input device of type t. It returns nil
// if t is not a known device type.
//
// The device produces no input on its own. The caller is responsible
// for driving it and for notifying seats.
func (b *Backend) AddInputDevice(t InputType) *InputDevice {
	if !t.valid() {
		debug.Log("unknown headless input type", "type", t)
		return nil
	}

	dev := newInputDevice(b, t, fmt.Sprintf("headless-%v-%v", t, b.nextID()))
	b.inputs = append(b.inputs, dev)
	return dev
}

// InputDevices returns the input devices that have been added, in
// order.
func (b *Backend) InputDevices() []*InputDevice {
	return slices.Clone(b.inputs)
}

// Capabilities returns the seat capabilities that the backend's input
// devices provide between them.
func (b *Backend) Capabilities() seat.Capability {
	var caps seat.Capability
	for _, dev := range b.inputs {
		caps |= dev.Capability()
	}
	return caps
}

// Now returns the current time in milliseconds on the monotonic
// clock, truncated to 32 bits, for use as an input event timestamp.
func (b *Backend) Now() uint32 {
	var ts unix.Timespec
	err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts)
	if err != nil {
		return uint32(time.Since(b.start).Milliseconds())
	}
	return uint32(ts.Nano() / int64(time.Millisecond))
}

// IsHeadlessInputDevice returns true if dev is an input device that
// was created by a headless backend.
func IsHeadlessInputDevice(dev any) bool {
	d, ok := dev.(*InputDevice)
	return ok && d != nil
}

// IsHeadlessOutput returns true if output is an output that was
// created by a headless backend.
func IsHeadlessOutput(output any) bool {
	o, ok := output.(*Output)
	return ok && o != nil
}
