package headless

import (
	"deedles.dev/wlseat/internal/set"
	"deedles.dev/wlseat/keyboard"
	"deedles.dev/wlseat/seat"
)

// InputType is the kind of an input device.
type InputType int

const (
	InputKeyboard InputType = iota
	InputPointer
	InputTouch
	InputTabletTool
	InputTabletPad
	InputSwitch
)

func (t InputType) valid() bool {
	return t >= InputKeyboard && t <= InputSwitch
}

func (t InputType) String() string {
	switch t {
	case InputKeyboard:
		return "keyboard"
	case InputPointer:
		return "pointer"
	case InputTouch:
		return "touch"
	case InputTabletTool:
		return "tablet-tool"
	case InputTabletPad:
		return "tablet-pad"
	case InputSwitch:
		return "switch"
	}

	return "unknown"
}

// Capability returns the seat capability that devices of type t
// provide, or zero if they provide none.
func (t InputType) Capability() seat.Capability {
	switch t {
	case InputKeyboard:
		return seat.CapKeyboard
	case InputPointer:
		return seat.CapPointer
	case InputTouch:
		return seat.CapTouch
	}
	return 0
}

// InputDevice is a fake input device.
//
// Keyboard devices track which keys are held down and the current
// modifier state so that a seat can use them as its active keyboard.
type InputDevice struct {
	backend *Backend
	typ     InputType
	name    string

	keys set.Set[uint32]
	mods keyboard.Modifiers
}

func newInputDevice(b *Backend, t InputType, name string) *InputDevice {
	dev := InputDevice{
		backend: b,
		typ:     t,
		name:    name,
	}
	if t == InputKeyboard {
		dev.keys = set.New[uint32]()
	}
	return &dev
}

func (dev *InputDevice) Backend() *Backend {
	return dev.backend
}

func (dev *InputDevice) Type() InputType {
	return dev.typ
}

func (dev *InputDevice) Name() string {
	return dev.name
}

func (dev *InputDevice) String() string {
	return dev.name
}

// Capability returns the seat capability that the device provides,
// or zero if it provides none.
func (dev *InputDevice) Capability() seat.Capability {
	return dev.typ.Capability()
}

// PressKey marks key as held down. It returns false if the device is
// not a keyboard or the key is already down.
func (dev *InputDevice) PressKey(key uint32) bool {
	if dev.keys == nil || dev.keys.Has(key) {
		return false
	}
	dev.keys.Add(key)
	return true
}

// ReleaseKey marks key as released. It returns false if the key was
// not down.
func (dev *InputDevice) ReleaseKey(key uint32) bool {
	if !dev.keys.Has(key) {
		return false
	}
	dev.keys.Delete(key)
	return true
}

// SetModifiers replaces the modifier state of a keyboard device.
func (dev *InputDevice) SetModifiers(mods keyboard.Modifiers) {
	if dev.typ != InputKeyboard {
		return
	}
	dev.mods = mods
}

// Keycodes returns the keys that are currently held down, in
// ascending order.
func (dev *InputDevice) Keycodes() []uint32 {
	if dev.keys == nil {
		return nil
	}
	return set.Sorted(dev.keys)
}

func (dev *InputDevice) Modifiers() keyboard.Modifiers {
	return dev.mods
}

var _ seat.KeyboardDevice = (*InputDevice)(nil)
