package seat

// Handler receives the lifecycle events of a seat. While a method
// runs, the seat has been taken out of its registry, so the only way
// to reach it is through the *Seat passed in.
//
// Events that a Handler method causes on its own seat are not
// delivered to the Handler, as the seat can not be taken a second
// time. For example, replacing a pointer grab from inside
// ReceivedSelection cancels the old grab, but neither PointerReleased
// nor PointerGrabbed is called for it.
//
// Embed NopHandler to implement only some of the methods.
type Handler interface {
	// PointerGrabbed is called when a pointer grab starts.
	PointerGrabbed(reg Registry, s *Seat, g PointerGrab)

	// PointerReleased is called when a pointer grab ends.
	PointerReleased(reg Registry, s *Seat, g PointerGrab)

	KeyboardGrabbed(reg Registry, s *Seat, g KeyboardGrab)
	KeyboardReleased(reg Registry, s *Seat, g KeyboardGrab)

	TouchGrabbed(reg Registry, s *Seat, g TouchGrab)
	TouchReleased(reg Registry, s *Seat, g TouchGrab)

	// CursorSet is called when the client with pointer focus asks to
	// set the cursor image.
	CursorSet(reg Registry, s *Seat, req *CursorRequest)

	// ReceivedSelection is called when a client sets the selection.
	ReceivedSelection(reg Registry, s *Seat)

	// PrimarySelection is called when a client sets the primary
	// selection.
	PrimarySelection(reg Registry, s *Seat)

	// Destroy is called when the seat is being destroyed.
	Destroy(reg Registry, s *Seat)
}

// NopHandler implements Handler by doing nothing.
type NopHandler struct{}

func (NopHandler) PointerGrabbed(Registry, *Seat, PointerGrab)    {}
func (NopHandler) PointerReleased(Registry, *Seat, PointerGrab)   {}
func (NopHandler) KeyboardGrabbed(Registry, *Seat, KeyboardGrab)  {}
func (NopHandler) KeyboardReleased(Registry, *Seat, KeyboardGrab) {}
func (NopHandler) TouchGrabbed(Registry, *Seat, TouchGrab)        {}
func (NopHandler) TouchReleased(Registry, *Seat, TouchGrab)       {}
func (NopHandler) CursorSet(Registry, *Seat, *CursorRequest)      {}
func (NopHandler) ReceivedSelection(Registry, *Seat)              {}
func (NopHandler) PrimarySelection(Registry, *Seat)               {}
func (NopHandler) Destroy(Registry, *Seat)                        {}
