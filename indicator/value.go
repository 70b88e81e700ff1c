// Package indicator computes technical indicator columns aligned 1:1 with a
// bar series. Values that cannot be computed yet (warm-up) are carried as
// absent rather than as zero or NaN.
package indicator

import "math"

// Value is an indicator reading that may be absent.
type Value struct {
	V     float64
	Valid bool
}

func Some(v float64) Value { return Value{V: v, Valid: true} }
func None() Value          { return Value{} }

// Less reports v < x. An absent value never compares true.
func (v Value) Less(x float64) bool { return v.Valid && v.V < x }

// Greater reports v > x. An absent value never compares true.
func (v Value) Greater(x float64) bool { return v.Valid && v.V > x }

// Column is an indicator series aligned with the input bars.
type Column []Value

func newColumn(n int) Column { return make(Column, n) }

// Floats converts the column to plain floats with NaN for absent values.
func (c Column) Floats() []float64 {
	out := make([]float64, len(c))
	for i, v := range c {
		if v.Valid {
			out[i] = v.V
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// ValidFrom returns the index of the first present value, or -1.
func (c Column) ValidFrom() int {
	for i, v := range c {
		if v.Valid {
			return i
		}
	}
	return -1
}
