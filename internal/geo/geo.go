// Package geo provides the location attached to high-score records.
// A missing fix is normal: records are then stored without coordinates.
package geo

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoFix is returned when no location is available, including when the
// user never granted one.
var ErrNoFix = errors.New("geo: no location fix")

// Fix is a latitude/longitude pair in degrees.
type Fix struct {
	Lat float64
	Lng float64
}

// Validate checks that the fix is on the globe.
func (f Fix) Validate() error {
	if f.Lat < -90 || f.Lat > 90 {
		return fmt.Errorf("geo: latitude %v out of range", f.Lat)
	}
	if f.Lng < -180 || f.Lng > 180 {
		return fmt.Errorf("geo: longitude %v out of range", f.Lng)
	}
	return nil
}

// Locator resolves the current location. Implementations may block and
// must honour ctx.
type Locator interface {
	Locate(ctx context.Context) (Fix, error)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(ctx context.Context) (Fix, error)

// Locate calls f.
func (f LocatorFunc) Locate(ctx context.Context) (Fix, error) {
	return f(ctx)
}

// None never has a fix.
type None struct{}

// Locate always returns ErrNoFix.
func (None) Locate(context.Context) (Fix, error) {
	return Fix{}, ErrNoFix
}

// Static always reports the same configured position.
type Static struct {
	fix Fix
}

// NewStatic creates a fixed locator.
func NewStatic(lat, lng float64) (*Static, error) {
	f := Fix{Lat: lat, Lng: lng}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &Static{fix: f}, nil
}

// Locate returns the configured fix unless ctx is done.
func (s *Static) Locate(ctx context.Context) (Fix, error) {
	if err := ctx.Err(); err != nil {
		return Fix{}, err
	}
	return s.fix, nil
}

// Chain tries locators in order and returns the first fix, the way a
// cached last-known position falls back to a fresh lookup.
type Chain []Locator

// Locate returns the first successful fix, or ErrNoFix.
func (c Chain) Locate(ctx context.Context) (Fix, error) {
	for _, l := range c {
		if err := ctx.Err(); err != nil {
			return Fix{}, err
		}
		f, err := l.Locate(ctx)
		if err == nil {
			return f, nil
		}
	}
	return Fix{}, ErrNoFix
}

// Coordinates resolves a fix into the optional pair stored with a record.
// Any failure yields nil coordinates.
func Coordinates(ctx context.Context, l Locator) (lat, lng *float64) {
	if l == nil {
		return nil, nil
	}
	f, err := l.Locate(ctx)
	if err != nil {
		return nil, nil
	}
	return &f.Lat, &f.Lng
}
