package popover

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidSide = errors.New("invalid side")

// Side is where the content sits relative to its trigger.
type Side int

const (
	Top Side = iota
	Bottom
	Left
	Right
)

// fallbackOrder is tried after the requested side and its opposite both fail.
var fallbackOrder = [...]Side{Bottom, Top, Right, Left}

func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

func (s Side) Opposite() Side {
	switch s {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	default:
		return Left
	}
}

// Vertical reports whether the side constrains the vertical axis.
func (s Side) Vertical() bool {
	return s == Top || s == Bottom
}

// Arrow is the indicator glyph pointing from the content back to the trigger.
func (s Side) Arrow() string {
	switch s {
	case Top:
		return "▼"
	case Bottom:
		return "▲"
	case Left:
		return "▶"
	default:
		return "◀"
	}
}

func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return Top, nil
	case "bottom":
		return Bottom, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Top, fmt.Errorf("%w: %q", ErrInvalidSide, s)
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(text []byte) error {
	parsed, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
