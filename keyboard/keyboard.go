// Package keyboard contains the values carried by keyboard input.
package keyboard

import "strings"

// KeyState is the physical state of a key.
type KeyState uint32

const (
	KeyReleased KeyState = iota
	KeyPressed
)

func (s KeyState) String() string {
	switch s {
	case KeyReleased:
		return "released"
	case KeyPressed:
		return "pressed"
	}

	return "unknown"
}

// Modifier is a single modifier bit in a serialized modifier mask.
type Modifier uint32

const (
	ModShift Modifier = 1 << iota
	ModCaps
	ModCtrl
	ModAlt
	ModMod2
	ModMod3
	ModLogo
	ModMod5
)

var modNames = []string{"shift", "caps", "ctrl", "alt", "mod2", "mod3", "logo", "mod5"}

func (m Modifier) String() string {
	if m == 0 {
		return "none"
	}

	var names []string
	for i, name := range modNames {
		if m&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "unknown"
	}
	return strings.Join(names, "|")
}

// ParseModifier parses a single modifier name, as returned by
// Modifier.String for a single bit.
func ParseModifier(name string) (Modifier, bool) {
	for i, n := range modNames {
		if n == name {
			return 1 << i, true
		}
	}
	return 0, false
}

// Modifiers is the serialized modifier state of a keyboard, as sent
// to clients.
type Modifiers struct {
	Depressed Modifier
	Latched   Modifier
	Locked    Modifier
	Group     uint32
}

// Active returns every modifier that is currently in effect.
func (m Modifiers) Active() Modifier {
	return m.Depressed | m.Latched | m.Locked
}
