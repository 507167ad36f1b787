package scenario

import (
	"context"
	"fmt"

	"deedles.dev/wlseat/backend/headless"
	"deedles.dev/wlseat/compositor"
	"deedles.dev/wlseat/display"
	"deedles.dev/wlseat/internal/debug"
	"deedles.dev/wlseat/internal/trace"
	"deedles.dev/wlseat/keyboard"
	"deedles.dev/wlseat/seat"
)

type op struct {
	// surface is true if the op requires Step.Surface.
	surface bool
	run     func(r *runner, s *seat.Seat, step Step, in input, time uint32) error
}

var ops = map[string]op{
	"capabilities": {run: func(r *runner, s *seat.Seat, step Step, in input, time uint32) error {
		s.SetCapabilities(in.caps)
		return nil
	}},
	"name": {run: func(r *runner, s *seat.Seat, step Step, in input, time uint32) error {
		name, _ := s.Name()
		return r.comp.RenameSeat(name, step.Name)
	}},
	"destroy_seat": {run: func(r *runner, s *seat.Seat, step Step, in input, time uint32) error {
		name, _ := s.Name()
		r.comp.DestroySeat(name)
		return nil
	}},
	"destroy_surface": {surface: true, run: func(r *runner, s *seat.Seat, step Step, in input, time uint32) error {
		surface := r.surfaces[step.Surface]
		for _, other := range r.comp.Seats() {
			other.SurfaceDestroyed(surface)
		}
		return nil
	}},
	"set_cursor": {surface: true, run: func(r *runner, s *seat.Seat, step Step, in input, time uint32) error {
		surface := r.surfaces[step.Surface]
		s.RequestSetCursor(surface.Client(), surface, step.Serial, int32(step.X), int32(step.Y))
		return nil
	}},
	"set_selection": {run: func(r *runner, s *seat.Seat, step Step, in input, time uint32) error {
		var src seat.DataSource
		if len(step.MimeTypes) > 0 {
			src = &trace.Source{Types: step.MimeTypes}
		}
		if step.Primary {
			s.SetPrimarySelection(src)
			return nil
		}
		s.SetSelection(src)
		return nil
	}},

	"pointer_enter": {surface: true, run: func(r *runner, s *seat.Seat, step Step, in input, time uint32) error {
		s.PointerNotifyEnter(r.surfaces[step.Surface], step.X, step.Y)
		return nil
	}},
	"pointer_clear_focus": {run: func(r *runner, s *seat.Seat, step Step, in input, time uint32) error {
		s.PointerClearFocus()
		return nil
	}},
	"pointer_motion": {run: func(r *runner, s *seat.Seat, step Step, in input, time uint32) error {
		s.PointerNotifyMotion(time, step.X, step.Y)
		return nil
	}},
	"pointer_button": {run: func(r *runner, s *seat.Seat, step Step, in input, time uint32) error {
		s.PointerNotifyButton(time, in.button, in.btnState)
		return nil
	}},
	"pointer_axis": {run: func(r *runner, s *seat.Seat, step Step, in input, time uint32) error {
		s.PointerNotifyAxis(time, in.axis, step.Value)
		return nil
	}},
	"pointer_grab": {run: func(r *runner, s *seat.Seat, step Step, in input, time uint32) error {
		s.PointerStartGrab(&pointerGrab{log: r.log, name: grabName(step)})
		return nil
	}},
	"pointer_ungrab": {run: func(r *runner, s *seat.Seat, step Step, in input, time uint32) error {
		s.PointerEndGrab()
		return nil
	}},

	"keyboard_enter": {surface: true, run: func(r *runner, s *seat.Seat, step Step, in input, time uint32) error {
		var keys []uint32
		var mods keyboard.Modifiers
		if kb := r.keyboard(s); kb != nil {
			keys, mods = kb.Keycodes(), kb.Modifiers()
		}
		s.KeyboardNotifyEnter(r.surfaces[step.Surface], keys, mods)
		return nil
	}},
	"keyboard_clear_focus": {run: func(r *runner, s *seat.Seat, step Step, in input, time uint32) error {
		s.KeyboardClearFocus()
		return nil
	}},
	"keyboard_key": {run: func(r *runner, s *seat.Seat, step Step, in input, time uint32) error {
		kb := r.keyboard(s)
		if kb != nil {
			if in.keyState == keyboard.KeyPressed {
				kb.PressKey(step.Key)
			} else {
				kb.ReleaseKey(step.Key)
			}
		}
		s.KeyboardNotifyKey(time, step.Key, in.keyState)
		return nil
	}},
	"keyboard_modifiers": {run: func(r *runner, s *seat.Seat, step Step, in input, time uint32) error {
		if kb := r.keyboard(s); kb != nil {
			kb.SetModifiers(in.mods)
		}
		s.KeyboardNotifyModifiers(in.mods)
		return nil
	}},
	"keyboard_grab": {run: func(r *runner, s *seat.Seat, step Step, in input, time uint32) error {
		s.KeyboardStartGrab(&keyboardGrab{log: r.log, name: grabName(step)})
		return nil
	}},
	"keyboard_ungrab": {run: func(r *runner, s *seat.Seat, step Step, in input, time uint32) error {
		s.KeyboardEndGrab()
		return nil
	}},

	"touch_down": {surface: true, run: func(r *runner, s *seat.Seat, step Step, in input, time uint32) error {
		s.TouchNotifyDown(r.surfaces[step.Surface], time, seat.TouchID(step.ID), step.X, step.Y)
		return nil
	}},
	"touch_up": {run: func(r *runner, s *seat.Seat, step Step, in input, time uint32) error {
		s.TouchNotifyUp(time, seat.TouchID(step.ID))
		return nil
	}},
	"touch_motion": {run: func(r *runner, s *seat.Seat, step Step, in input, time uint32) error {
		s.TouchNotifyMotion(time, seat.TouchID(step.ID), step.X, step.Y)
		return nil
	}},
	"touch_focus": {surface: true, run: func(r *runner, s *seat.Seat, step Step, in input, time uint32) error {
		s.TouchPointFocus(r.surfaces[step.Surface], time, seat.TouchID(step.ID), step.X, step.Y)
		return nil
	}},
	"touch_clear_focus": {run: func(r *runner, s *seat.Seat, step Step, in input, time uint32) error {
		s.TouchPointClearFocus(time, seat.TouchID(step.ID))
		return nil
	}},
	"touch_grab": {run: func(r *runner, s *seat.Seat, step Step, in input, time uint32) error {
		s.TouchStartGrab(&touchGrab{log: r.log, name: grabName(step)})
		return nil
	}},
	"touch_ungrab": {run: func(r *runner, s *seat.Seat, step Step, in input, time uint32) error {
		s.TouchEndGrab()
		return nil
	}},
}

type runner struct {
	sc      *Scenario
	log     *trace.Log
	comp    *compositor.Compositor
	backend *headless.Backend

	surfaces  map[string]*trace.Surface
	keyboards map[*seat.Seat]*headless.InputDevice
	clock     uint32
}

// Run replays sc against fresh seats on a headless backend and
// returns every event that the scenario's clients, grabs and seat
// handlers saw, in order.
//
// Steps are queued on the display from a separate goroutine and run
// on the calling one. Run stops at the first step that fails.
func Run(ctx context.Context, sc *Scenario) ([]trace.Event, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	b, err := headless.New(display.New(), nil)
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}
	d := b.Display()

	r := runner{
		sc:        sc,
		log:       new(trace.Log),
		comp:      compositor.New(d),
		backend:   b,
		surfaces:  make(map[string]*trace.Surface),
		keyboards: make(map[*seat.Seat]*headless.InputDevice),
	}
	defer r.comp.Close()

	if err := r.setup(); err != nil {
		return r.log.Events(), err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var finished bool
	go func() {
		for i, step := range sc.Steps {
			err := d.Enqueue(func() error { return r.step(i, step) })
			if err != nil {
				return
			}
		}
		d.Enqueue(func() error { finished = true; return nil })
	}()

	for !finished {
		err := d.Dispatch(ctx)
		if err != nil {
			return r.log.Events(), err
		}
	}

	return r.log.Events(), nil
}

func (r *runner) setup() error {
	for _, cfg := range r.sc.Seats {
		caps, err := seat.ParseCapabilities(cfg.Capabilities...)
		if err != nil {
			return fmt.Errorf("seat %q: %w", cfg.Name, err)
		}

		s, err := r.comp.NewSeat(cfg.Name, &handler{log: r.log})
		if err != nil {
			return err
		}

		var devcaps seat.Capability
		for _, t := range []headless.InputType{headless.InputPointer, headless.InputKeyboard, headless.InputTouch} {
			if !caps.Has(t.Capability()) {
				continue
			}

			dev := r.backend.AddInputDevice(t)
			devcaps |= dev.Capability()
			if t == headless.InputKeyboard {
				s.SetKeyboard(dev)
				r.keyboards[s] = dev
			}
		}
		s.SetCapabilities(devcaps)
	}

	for _, cfg := range r.sc.Clients {
		c := trace.NewClient(r.log, cfg.Name, cfg.devices())
		for _, name := range cfg.Surfaces {
			r.surfaces[name] = c.NewSurface(name)
		}

		seats := cfg.Seats
		if len(seats) == 0 {
			for _, s := range r.sc.Seats {
				seats = append(seats, s.Name)
			}
		}
		for _, name := range seats {
			s, _ := r.comp.Seat(name)
			s.Bind(c)
		}
	}

	return nil
}

func (r *runner) keyboard(s *seat.Seat) *headless.InputDevice {
	return r.keyboards[s]
}

func (r *runner) now(step Step) uint32 {
	if step.Time != 0 {
		return step.Time
	}
	if r.sc.TimeStep == 0 {
		return r.backend.Now()
	}
	r.clock += r.sc.TimeStep
	return r.clock
}

func (r *runner) step(i int, step Step) error {
	name := r.sc.seatName(step)
	s, ok := r.comp.Seat(name)
	if !ok {
		return &StepError{Index: i, Op: step.Op, Err: compositor.UnknownSeatError{Name: name}}
	}

	in, err := step.parse()
	if err != nil {
		return &StepError{Index: i, Op: step.Op, Err: err}
	}

	debug.Log("scenario step", "index", i, "op", step.Op, "seat", name)
	err = ops[step.Op].run(r, s, step, in, r.now(step))
	if err != nil {
		return &StepError{Index: i, Op: step.Op, Err: err}
	}
	return nil
}

func grabName(step Step) string {
	if step.Name != "" {
		return step.Name
	}
	return "grab"
}
