package seat

import (
	"deedles.dev/wlseat/keyboard"
	"deedles.dev/wlseat/pointer"
	"deedles.dev/wlseat/wire"
)

// Surface is anything that can hold input focus.
type Surface interface {
	// Client returns the client that owns the surface. A surface
	// without a client can be focused but never receives events.
	Client() Client
}

// Client is a client connection that binds a seat. The device
// methods return the objects that the client has created for each
// capability, or nil if it has not created one.
type Client interface {
	Capabilities(caps Capability)
	Name(name string)

	Pointer() PointerObject
	Keyboard() KeyboardObject
	Touch() TouchObject
}

// PointerObject receives the events of a client's pointer.
type PointerObject interface {
	Enter(serial uint32, surface Surface, x, y wire.Fixed)
	Leave(serial uint32, surface Surface)
	Motion(time uint32, x, y wire.Fixed)
	Button(serial, time uint32, button pointer.Button, state pointer.ButtonState)
	Axis(time uint32, axis pointer.Axis, value wire.Fixed)
}

// KeyboardObject receives the events of a client's keyboard.
type KeyboardObject interface {
	Enter(serial uint32, surface Surface, keys []uint32)
	Leave(serial uint32, surface Surface)
	Key(serial, time, key uint32, state keyboard.KeyState)
	Modifiers(serial uint32, mods keyboard.Modifiers)
}

// TouchObject receives the events of a client's touch device.
type TouchObject interface {
	Down(serial, time uint32, surface Surface, id TouchID, x, y wire.Fixed)
	Up(serial, time uint32, id TouchID)
	Motion(time uint32, id TouchID, x, y wire.Fixed)
	Frame()
}

// KeyboardDevice is a physical or synthetic keyboard whose state a
// compositor reports to newly focused surfaces.
type KeyboardDevice interface {
	Keycodes() []uint32
	Modifiers() keyboard.Modifiers
}
