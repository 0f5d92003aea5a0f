// Package animation drives the hammer swing from the frame clock.
package animation

import (
	"fmt"
	gomath "math"
)

// Phase is the two-valued swing state.
type Phase int

const (
	Neutral Phase = iota
	Deflected
)

func (p Phase) String() string {
	if p == Deflected {
		return "deflected"
	}
	return "neutral"
}

// Mode selects how clock readings are bucketed into whole seconds.
type Mode int

const (
	// ModeBracket compares the integer seconds immediately below and above
	// the current instant. Integral instants are neutral, everything strictly
	// between two integers is deflected, so on a real frame clock the hammer
	// stays deflected.
	ModeBracket Mode = iota
	// ModeRounded rounds the instant to the nearest second (half away from
	// zero) and deflects while that second is odd, a 1 Hz toggle.
	ModeRounded
)

func (m Mode) String() string {
	switch m {
	case ModeBracket:
		return "bracket"
	case ModeRounded:
		return "rounded"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses a mode name as used in the config file. Empty means rounded.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "bracket":
		return ModeBracket, nil
	case "", "rounded":
		return ModeRounded, nil
	default:
		return 0, fmt.Errorf("unknown animation mode %q", s)
	}
}

// PhaseAt returns the swing phase for a clock reading in seconds.
func PhaseAt(t float64, mode Mode) Phase {
	var lower, upper int64
	switch mode {
	case ModeRounded:
		lower = int64(gomath.Round(t))
		if float64(lower) >= t {
			upper = int64(gomath.Round(t - 1))
		} else {
			upper = int64(gomath.Round(t + 1))
		}
		// Only an odd rounded second followed by an even neighbour swings.
		if odd(lower) && !odd(upper) {
			return Deflected
		}
		return Neutral
	default:
		lower = int64(gomath.Floor(t))
		upper = int64(gomath.Ceil(t))
		if odd(lower) != odd(upper) {
			return Deflected
		}
		return Neutral
	}
}

func odd(n int64) bool {
	return n&1 == 1
}

// Driver samples the swing phase once per frame.
type Driver struct {
	mode    Mode
	enabled bool

	phase       Phase
	transitions int
}

// NewDriver creates a driver. A disabled driver always reports Neutral.
func NewDriver(mode Mode, enabled bool) *Driver {
	return &Driver{mode: mode, enabled: enabled}
}

// Sample evaluates the phase at t and remembers it as the current phase.
func (d *Driver) Sample(t float64) Phase {
	p := Neutral
	if d.enabled {
		p = PhaseAt(t, d.mode)
	}
	if p != d.phase {
		d.transitions++
	}
	d.phase = p
	return p
}

// Phase returns the phase from the most recent Sample.
func (d *Driver) Phase() Phase {
	return d.phase
}

// Transitions returns how many times the phase changed between samples.
func (d *Driver) Transitions() int {
	return d.transitions
}

// Mode returns the bucketing mode.
func (d *Driver) Mode() Mode {
	return d.mode
}
