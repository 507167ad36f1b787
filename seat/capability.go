package seat

import (
	"fmt"
	"slices"
	"strings"
)

// Capability is a set of input device kinds that a seat offers.
type Capability uint32

const (
	CapPointer Capability = 1 << iota
	CapKeyboard
	CapTouch
)

var capNames = []string{"pointer", "keyboard", "touch"}

// Has returns true if every capability in o is also in c.
func (c Capability) Has(o Capability) bool {
	return c&o == o
}

func (c Capability) String() string {
	if c == 0 {
		return "none"
	}

	var names []string
	for i, name := range capNames {
		if c&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	if rest := c &^ (CapPointer | CapKeyboard | CapTouch); rest != 0 {
		names = append(names, fmt.Sprintf("%#x", uint32(rest)))
	}
	return strings.Join(names, "|")
}

// ParseCapabilities combines the named capabilities into a set.
func ParseCapabilities(names ...string) (Capability, error) {
	var c Capability
	for _, name := range names {
		i := slices.Index(capNames, strings.ToLower(strings.TrimSpace(name)))
		if i < 0 {
			return 0, fmt.Errorf("unknown capability %q", name)
		}
		c |= 1 << i
	}
	return c, nil
}
