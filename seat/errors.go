package seat

import (
	"errors"
	"fmt"
)

// ErrNoDisplay is returned by Create when it is not given a display.
var ErrNoDisplay = errors.New("seat requires a display")

// SeatExistsError is returned when a seat is registered under a name
// that is already in use.
type SeatExistsError struct {
	Name string
}

func (err SeatExistsError) Error() string {
	return fmt.Sprintf("seat %q already exists", err.Name)
}
