package trace

import (
	"fmt"

	"deedles.dev/wlseat/keyboard"
	"deedles.dev/wlseat/pointer"
	"deedles.dev/wlseat/seat"
	"deedles.dev/wlseat/wire"
)

// Pointer records pointer events. Events that don't name a surface
// are attributed to the surface most recently entered.
type Pointer struct {
	client *Client
	focus  string
}

func (p *Pointer) target() string {
	if p.focus == "" {
		return p.client.name
	}
	return p.focus
}

func (p *Pointer) Enter(serial uint32, surface seat.Surface, x, y wire.Fixed) {
	p.focus = surfaceName(surface)
	p.client.log.Record(Event{Target: p.focus, Kind: "pointer.enter", Serial: serial, X: x.Float(), Y: y.Float()})
}

func (p *Pointer) Leave(serial uint32, surface seat.Surface) {
	p.client.log.Record(Event{Target: surfaceName(surface), Kind: "pointer.leave", Serial: serial})
	p.focus = ""
}

func (p *Pointer) Motion(time uint32, x, y wire.Fixed) {
	p.client.log.Record(Event{Target: p.target(), Kind: "pointer.motion", Time: time, X: x.Float(), Y: y.Float()})
}

func (p *Pointer) Button(serial, time uint32, button pointer.Button, state pointer.ButtonState) {
	p.client.log.Record(Event{
		Target: p.target(),
		Kind:   "pointer.button",
		Serial: serial,
		Time:   time,
		Detail: fmt.Sprintf("%v %v", button, state),
	})
}

func (p *Pointer) Axis(time uint32, axis pointer.Axis, value wire.Fixed) {
	p.client.log.Record(Event{
		Target: p.target(),
		Kind:   "pointer.axis",
		Time:   time,
		Detail: fmt.Sprintf("%v %v", axis, value),
	})
}

// Keyboard records keyboard events.
type Keyboard struct {
	client *Client
	focus  string
}

func (k *Keyboard) target() string {
	if k.focus == "" {
		return k.client.name
	}
	return k.focus
}

func (k *Keyboard) Enter(serial uint32, surface seat.Surface, keys []uint32) {
	k.focus = surfaceName(surface)
	k.client.log.Record(Event{Target: k.focus, Kind: "keyboard.enter", Serial: serial, Detail: fmt.Sprint(keys)})
}

func (k *Keyboard) Leave(serial uint32, surface seat.Surface) {
	k.client.log.Record(Event{Target: surfaceName(surface), Kind: "keyboard.leave", Serial: serial})
	k.focus = ""
}

func (k *Keyboard) Key(serial, time, key uint32, state keyboard.KeyState) {
	k.client.log.Record(Event{
		Target: k.target(),
		Kind:   "keyboard.key",
		Serial: serial,
		Time:   time,
		Detail: fmt.Sprintf("%v %v", key, state),
	})
}

func (k *Keyboard) Modifiers(serial uint32, mods keyboard.Modifiers) {
	k.client.log.Record(Event{
		Target: k.target(),
		Kind:   "keyboard.modifiers",
		Serial: serial,
		Detail: fmt.Sprintf("depressed=%v latched=%v locked=%v group=%v", mods.Depressed, mods.Latched, mods.Locked, mods.Group),
	})
}

// Touch records touch events. Up and motion events are attributed to
// the surface that the point went down on.
type Touch struct {
	client *Client
	points map[seat.TouchID]string
}

func (t *Touch) target(id seat.TouchID) string {
	if s, ok := t.points[id]; ok {
		return s
	}
	return t.client.name
}

func (t *Touch) Down(serial, time uint32, surface seat.Surface, id seat.TouchID, x, y wire.Fixed) {
	t.points[id] = surfaceName(surface)
	t.client.log.Record(Event{
		Target: t.points[id],
		Kind:   "touch.down",
		Serial: serial,
		Time:   time,
		X:      x.Float(),
		Y:      y.Float(),
		Detail: fmt.Sprintf("id=%v", id),
	})
}

func (t *Touch) Up(serial, time uint32, id seat.TouchID) {
	t.client.log.Record(Event{Target: t.target(id), Kind: "touch.up", Serial: serial, Time: time, Detail: fmt.Sprintf("id=%v", id)})
	delete(t.points, id)
}

func (t *Touch) Motion(time uint32, id seat.TouchID, x, y wire.Fixed) {
	t.client.log.Record(Event{
		Target: t.target(id),
		Kind:   "touch.motion",
		Time:   time,
		X:      x.Float(),
		Y:      y.Float(),
		Detail: fmt.Sprintf("id=%v", id),
	})
}

func (t *Touch) Frame() {
	t.client.log.Record(Event{Target: t.client.name, Kind: "touch.frame"})
}
