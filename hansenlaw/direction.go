package hansenlaw

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned, wrapped, for arguments the transform does
// not recognise.
var ErrInvalidArgument = errors.New("hansenlaw: invalid argument")

// Direction selects the forward or the inverse Abel transform.
type Direction string

const (
	// Forward projects a radial source onto its line-of-sight profile.
	Forward Direction = "forward"
	// Inverse recovers the radial source from a projected profile.
	Inverse Direction = "inverse"
)

// ParseDirection returns the Direction named s.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if err := d.validate(); err != nil {
		return "", err
	}
	return d, nil
}

func (d Direction) validate() error {
	switch d {
	case Forward, Inverse:
		return nil
	}
	return fmt.Errorf("%w: unknown direction %q", ErrInvalidArgument, string(d))
}
