// Package input turns raw tilt readings into player commands.
// The engine only knows about discrete moves and speed modes; the
// debounce and threshold policy lives here.
package input

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/lane-dodge/internal/config"
	"github.com/vovakirdan/lane-dodge/internal/core"
)

// ErrMalformedSample is returned for feed lines that are not "x y" pairs.
var ErrMalformedSample = errors.New("input: malformed tilt sample")

// Sample is one accelerometer reading. X is the sideways tilt, Y the
// forward/back tilt.
type Sample struct {
	X  float64
	Y  float64
	At time.Time
}

// ParseSample reads "x y" (space or comma separated).
func ParseSample(line string, at time.Time) (Sample, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
	if len(fields) != 2 {
		return Sample{}, fmt.Errorf("%w: %q", ErrMalformedSample, line)
	}

	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Sample{}, fmt.Errorf("%w: %q", ErrMalformedSample, line)
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Sample{}, fmt.Errorf("%w: %q", ErrMalformedSample, line)
	}
	return Sample{X: x, Y: y, At: at}, nil
}

// Decision is what one sample asks of the game.
type Decision struct {
	// Accepted is false when the sample arrived inside the debounce window.
	Accepted bool
	// Move is -1, 0 or +1.
	Move int
	// Speed is the mode the tilt selects; only meaningful with SpeedChanged.
	Speed        core.SpeedMode
	SpeedChanged bool
}

// TiltMapper maps samples to moves and speed modes.
// Tilting right (positive X) moves left, matching how the device is held.
type TiltMapper struct {
	cfg      config.TiltConfig
	last     time.Time
	seen     bool
	baseline *float64
	speed    core.SpeedMode
}

// NewTiltMapper creates a mapper with the given thresholds.
func NewTiltMapper(cfg config.TiltConfig) *TiltMapper {
	return &TiltMapper{cfg: cfg}
}

// Map applies the policy to one sample.
func (m *TiltMapper) Map(s Sample) Decision {
	if m.seen && s.At.Sub(m.last) < m.cfg.Debounce() {
		return Decision{}
	}
	m.seen = true
	m.last = s.At

	d := Decision{Accepted: true, Speed: m.speed}
	if math.Abs(s.X) >= m.cfg.MoveThreshold {
		if s.X > 0 {
			d.Move = -1
		} else {
			d.Move = 1
		}
	}

	// The first reading is the neutral position.
	if m.baseline == nil {
		y := s.Y
		m.baseline = &y
		d.SpeedChanged = m.setSpeed(core.SpeedNormal)
		d.Speed = m.speed
		return d
	}

	dy := -(s.Y - *m.baseline)
	mode := core.SpeedNormal
	switch {
	case math.Abs(dy) < m.cfg.Deadzone:
		mode = core.SpeedNormal
	case dy > m.cfg.FastThreshold:
		mode = core.SpeedFast
	case dy < m.cfg.SlowThreshold:
		mode = core.SpeedSlow
	}
	d.SpeedChanged = m.setSpeed(mode)
	d.Speed = m.speed
	return d
}

// Reset forgets the baseline and returns to normal speed. Call it when
// switching to sensor control.
func (m *TiltMapper) Reset() {
	m.baseline = nil
	m.seen = false
	m.last = time.Time{}
	m.speed = core.SpeedNormal
}

// Speed returns the mode selected by the last accepted sample.
func (m *TiltMapper) Speed() core.SpeedMode {
	return m.speed
}

// Calibrated reports whether a baseline was captured.
func (m *TiltMapper) Calibrated() bool {
	return m.baseline != nil
}

func (m *TiltMapper) setSpeed(mode core.SpeedMode) bool {
	if m.speed == mode {
		return false
	}
	m.speed = mode
	return true
}
