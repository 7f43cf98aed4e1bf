package cpu

import "fmt"

// Mode selects how a filter extends the input beyond its edges.
type Mode string

// Boundary modes, named after scipy.ndimage. For the input (a b c d):
const (
	Reflect  Mode = "reflect"  // (d c b a | a b c d | d c b a)
	Constant Mode = "constant" // (0 0 0 0 | a b c d | 0 0 0 0)
	Nearest  Mode = "nearest"  // (a a a a | a b c d | d d d d)
	Mirror   Mode = "mirror"   // (d c b | a b c d | c b a)
	Wrap     Mode = "wrap"     // (a b c d | a b c d | a b c d)
)

// Modes lists every boundary mode.
var Modes = []Mode{Reflect, Constant, Nearest, Mirror, Wrap}

// ParseMode converts a mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown boundary mode %q", ErrInvalidParameter, s)
}

// Validate reports whether m is a known mode.
func (m Mode) Validate() error {
	_, err := ParseMode(string(m))
	return err
}

// index maps a possibly out-of-range position onto [0, n). ok is false when
// the position falls on constant (zero) padding.
func (m Mode) index(i, n int) (idx int, ok bool) {
	if i >= 0 && i < n {
		return i, true
	}
	switch m {
	case Constant:
		return 0, false
	case Nearest:
		if i < 0 {
			return 0, true
		}
		return n - 1, true
	case Wrap:
		return mod(i, n), true
	case Reflect:
		period := 2 * n
		i = mod(i, period)
		if i < n {
			return i, true
		}
		return period - 1 - i, true
	case Mirror:
		if n == 1 {
			return 0, true
		}
		period := 2*n - 2
		i = mod(i, period)
		if i < n {
			return i, true
		}
		return period - i, true
	default:
		panic(fmt.Sprintf("cpu: unknown boundary mode %q", string(m)))
	}
}

func mod(i, n int) int {
	r := i % n
	if r < 0 {
		r += n
	}
	return r
}
