// Package scenario loads scripted input sessions and replays them
// against seats on a headless backend.
package scenario

import (
	"errors"
	"fmt"
	"slices"

	"deedles.dev/wlseat/keyboard"
	"deedles.dev/wlseat/pointer"
	"deedles.dev/wlseat/seat"
	"github.com/spf13/viper"
)

// Scenario is a scripted session: the seats that exist, the clients
// bound to them and the input to replay.
type Scenario struct {
	Seats   []SeatConfig   `mapstructure:"seats"`
	Clients []ClientConfig `mapstructure:"clients"`
	Steps   []Step         `mapstructure:"steps"`

	// TimeStep is added to the clock before every step that doesn't
	// set its own time. If it is zero, the monotonic clock of the
	// backend is used instead.
	TimeStep uint32 `mapstructure:"time_step"`
}

type SeatConfig struct {
	Name         string   `mapstructure:"name"`
	Capabilities []string `mapstructure:"capabilities"`
}

type ClientConfig struct {
	Name     string   `mapstructure:"name"`
	Pointer  bool     `mapstructure:"pointer"`
	Keyboard bool     `mapstructure:"keyboard"`
	Touch    bool     `mapstructure:"touch"`
	Surfaces []string `mapstructure:"surfaces"`

	// Seats lists the seats that the client binds. An empty list
	// binds every seat.
	Seats []string `mapstructure:"seats"`
}

func (c ClientConfig) devices() seat.Capability {
	var caps seat.Capability
	if c.Pointer {
		caps |= seat.CapPointer
	}
	if c.Keyboard {
		caps |= seat.CapKeyboard
	}
	if c.Touch {
		caps |= seat.CapTouch
	}
	return caps
}

// Step is a single operation on a seat. Which fields are used depends
// on Op.
type Step struct {
	Seat    string  `mapstructure:"seat"`
	Op      string  `mapstructure:"op"`
	Surface string  `mapstructure:"surface"`
	Time    uint32  `mapstructure:"time"`
	X       float64 `mapstructure:"x"`
	Y       float64 `mapstructure:"y"`

	Button string  `mapstructure:"button"`
	State  string  `mapstructure:"state"`
	Axis   string  `mapstructure:"axis"`
	Value  float64 `mapstructure:"value"`
	Key    uint32  `mapstructure:"key"`
	ID     int32   `mapstructure:"id"`
	Name   string  `mapstructure:"name"`
	Serial uint32  `mapstructure:"serial"`

	MimeTypes []string `mapstructure:"mime_types"`
	Primary   bool     `mapstructure:"primary"`

	Capabilities []string `mapstructure:"capabilities"`
	Depressed    []string `mapstructure:"depressed"`
	Latched      []string `mapstructure:"latched"`
	Locked       []string `mapstructure:"locked"`
	Group        uint32   `mapstructure:"group"`
}

// Load reads a scenario from a YAML, TOML or JSON file. The format is
// chosen by the file's extension.
func Load(path string) (*Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("time_step", 1)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read scenario %q: %w", path, err)
	}

	var sc Scenario
	if err := v.Unmarshal(&sc); err != nil {
		return nil, fmt.Errorf("decode scenario %q: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %q: %w", path, err)
	}

	return &sc, nil
}

// StepError is returned for a step that can not be run.
type StepError struct {
	Index int
	Op    string
	Err   error
}

func (err *StepError) Error() string {
	return fmt.Sprintf("step %v (%v): %v", err.Index, err.Op, err.Err)
}

func (err *StepError) Unwrap() error {
	return err.Err
}

var (
	ErrNoSeats       = errors.New("no seats defined")
	ErrUnknownOp     = errors.New("unknown op")
	ErrUnknownSeat   = errors.New("unknown seat")
	ErrUnknownSurf   = errors.New("unknown surface")
	ErrDuplicateName = errors.New("duplicate name")
	ErrBadValue      = errors.New("bad value")
)

// Validate checks that every step names a known op and refers only
// to seats and surfaces that the scenario defines. Seats renamed by a
// name step are tracked.
func (sc *Scenario) Validate() error {
	if len(sc.Seats) == 0 {
		return ErrNoSeats
	}

	seats := make(map[string]struct{}, len(sc.Seats))
	for _, s := range sc.Seats {
		if _, ok := seats[s.Name]; ok {
			return fmt.Errorf("seat %q: %w", s.Name, ErrDuplicateName)
		}
		seats[s.Name] = struct{}{}

		if _, err := seat.ParseCapabilities(s.Capabilities...); err != nil {
			return fmt.Errorf("seat %q: %w", s.Name, err)
		}
	}

	surfaces := make(map[string]struct{})
	for _, c := range sc.Clients {
		for _, name := range c.Seats {
			if _, ok := seats[name]; !ok {
				return fmt.Errorf("client %q: %w %q", c.Name, ErrUnknownSeat, name)
			}
		}
		for _, name := range c.Surfaces {
			if _, ok := surfaces[name]; ok {
				return fmt.Errorf("surface %q: %w", name, ErrDuplicateName)
			}
			surfaces[name] = struct{}{}
		}
	}

	for i, step := range sc.Steps {
		err := sc.validateStep(step, seats, surfaces)
		if err != nil {
			return &StepError{Index: i, Op: step.Op, Err: err}
		}

		if step.Op == "name" {
			delete(seats, sc.seatName(step))
			seats[step.Name] = struct{}{}
		}
	}

	return nil
}

func (sc *Scenario) validateStep(step Step, seats, surfaces map[string]struct{}) error {
	op, ok := ops[step.Op]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownOp, step.Op)
	}

	name := sc.seatName(step)
	if _, ok := seats[name]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownSeat, name)
	}
	if op.surface {
		if _, ok := surfaces[step.Surface]; !ok {
			return fmt.Errorf("%w %q", ErrUnknownSurf, step.Surface)
		}
	}

	_, err := step.parse()
	return err
}

// seatName returns the seat that step applies to. Steps that don't
// name a seat apply to the first one.
func (sc *Scenario) seatName(step Step) string {
	if step.Seat != "" {
		return step.Seat
	}
	return sc.Seats[0].Name
}

// input holds the parsed form of a step's typed fields.
type input struct {
	button   pointer.Button
	btnState pointer.ButtonState
	axis     pointer.Axis
	keyState keyboard.KeyState
	mods     keyboard.Modifiers
	caps     seat.Capability
}

func (step Step) parse() (in input, err error) {
	switch step.Op {
	case "pointer_button":
		b, ok := pointer.ParseButton(step.Button)
		if !ok {
			return in, fmt.Errorf("%w: button %q", ErrBadValue, step.Button)
		}
		in.button = b

		switch step.State {
		case "pressed", "":
			in.btnState = pointer.ButtonPressed
		case "released":
			in.btnState = pointer.ButtonReleased
		default:
			return in, fmt.Errorf("%w: state %q", ErrBadValue, step.State)
		}

	case "pointer_axis":
		switch step.Axis {
		case "vertical", "":
			in.axis = pointer.AxisVertical
		case "horizontal":
			in.axis = pointer.AxisHorizontal
		default:
			return in, fmt.Errorf("%w: axis %q", ErrBadValue, step.Axis)
		}

	case "keyboard_key":
		switch step.State {
		case "pressed", "":
			in.keyState = keyboard.KeyPressed
		case "released":
			in.keyState = keyboard.KeyReleased
		default:
			return in, fmt.Errorf("%w: state %q", ErrBadValue, step.State)
		}

	case "keyboard_modifiers":
		in.mods.Group = step.Group
		for _, m := range []struct {
			names []string
			dst   *keyboard.Modifier
		}{
			{step.Depressed, &in.mods.Depressed},
			{step.Latched, &in.mods.Latched},
			{step.Locked, &in.mods.Locked},
		} {
			for _, name := range m.names {
				mod, ok := keyboard.ParseModifier(name)
				if !ok {
					return in, fmt.Errorf("%w: modifier %q", ErrBadValue, name)
				}
				*m.dst |= mod
			}
		}

	case "capabilities":
		in.caps, err = seat.ParseCapabilities(step.Capabilities...)
		if err != nil {
			return in, err
		}

	case "name":
		if step.Name == "" {
			return in, fmt.Errorf("%w: empty name", ErrBadValue)
		}
	}

	return in, nil
}

// Ops returns the names of every supported op, sorted.
func Ops() []string {
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
