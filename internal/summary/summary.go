// Package summary derives the key values reported for a beam: the shear
// extremes, the peak bending moment and the station of zero shear.
package summary

import "github.com/alexiusacademia/beamreport/internal/beam"

// Extreme is an extreme value together with the row it was read from
type Extreme struct {
	Value    float64
	Position float64 // position of the same row (m)
	Index    int     // row index in source order
}

// Metrics holds the values derived from one dataset
type Metrics struct {
	Rows       int
	BeamLength float64

	MaxShear  Extreme // kN
	MinShear  Extreme // kN
	MaxMoment Extreme // kN-m

	// ZeroShear is the position of the first row whose shear is exactly
	// zero, or nil when no such row exists. No interpolation is done.
	ZeroShear *float64
}

// HasZeroShear reports whether a station of exactly zero shear was found
func (m Metrics) HasZeroShear() bool {
	return m.ZeroShear != nil
}

// Summarize scans the dataset once. Ties keep the first row in source order.
func Summarize(ds *beam.Dataset) Metrics {
	if ds == nil || ds.Len() == 0 {
		return Metrics{}
	}

	first := ds.At(0)
	m := Metrics{
		Rows:       ds.Len(),
		BeamLength: ds.Length(),
		MaxShear:   Extreme{Value: first.Shear, Position: first.Position},
		MinShear:   Extreme{Value: first.Shear, Position: first.Position},
		MaxMoment:  Extreme{Value: first.Moment, Position: first.Position},
	}

	for i := 0; i < ds.Len(); i++ {
		r := ds.At(i)
		if r.Shear > m.MaxShear.Value {
			m.MaxShear = Extreme{Value: r.Shear, Position: r.Position, Index: i}
		}
		if r.Shear < m.MinShear.Value {
			m.MinShear = Extreme{Value: r.Shear, Position: r.Position, Index: i}
		}
		if r.Moment > m.MaxMoment.Value {
			m.MaxMoment = Extreme{Value: r.Moment, Position: r.Position, Index: i}
		}
		if m.ZeroShear == nil && r.Shear == 0 {
			x := r.Position
			m.ZeroShear = &x
		}
	}

	return m
}
