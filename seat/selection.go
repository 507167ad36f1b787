package seat

// DataSource is a source of data offered by a client, such as a
// clipboard selection.
type DataSource interface {
	MimeTypes() []string

	// Cancel is called when the source is replaced or the seat goes
	// away.
	Cancel()
}

// CursorRequest is a client's request to set the pointer image.
type CursorRequest struct {
	Client   Client
	Surface  Surface
	Serial   uint32
	HotspotX int32
	HotspotY int32
}

type selectionState struct {
	selection DataSource
	primary   DataSource
}

// Selection returns the current selection source, or nil.
func (s *Seat) Selection() DataSource {
	return s.selected.selection
}

// SetSelection replaces the selection. The previous source, if
// different, is cancelled before the selection event is emitted.
func (s *Seat) SetSelection(src DataSource) {
	if s.selected.selection == src {
		return
	}

	prev := s.selected.selection
	s.selected.selection = src
	if prev != nil {
		prev.Cancel()
	}

	s.events.selection.Emit(src)
}

// PrimarySelection returns the current primary selection source, or
// nil.
func (s *Seat) PrimarySelection() DataSource {
	return s.selected.primary
}

// SetPrimarySelection replaces the primary selection.
func (s *Seat) SetPrimarySelection(src DataSource) {
	if s.selected.primary == src {
		return
	}

	prev := s.selected.primary
	s.selected.primary = src
	if prev != nil {
		prev.Cancel()
	}

	s.events.primarySelection.Emit(src)
}

// RequestSetCursor is called when client asks to change the pointer
// image to surface. The request is ignored unless the client owns the
// surface with pointer focus.
func (s *Seat) RequestSetCursor(client Client, surface Surface, serial uint32, hotspotX, hotspotY int32) {
	if client == nil || s.pointer.client != client {
		return
	}

	s.events.requestSetCursor.Emit(&CursorRequest{
		Client:   client,
		Surface:  surface,
		Serial:   serial,
		HotspotX: hotspotX,
		HotspotY: hotspotY,
	})
}
