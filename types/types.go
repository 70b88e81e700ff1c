package types

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrUnordered          = errors.New("observations are not strictly ordered by timestamp")
	ErrInvalidObservation = errors.New("invalid observation")
)

// Observation is a single OHLCV bar.
type Observation struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// Series is the ordered bar history of one pair on one timeframe. It is
// produced by the data source and treated as read-only afterwards.
type Series struct {
	Pair         string
	Timeframe    string
	Observations []Observation
}

func (s Series) Len() int { return len(s.Observations) }

// Closes returns a fresh slice of closing prices.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s.Observations))
	for i, o := range s.Observations {
		out[i] = o.Close
	}
	return out
}

// Volumes returns a fresh slice of bar volumes.
func (s Series) Volumes() []float64 {
	out := make([]float64, len(s.Observations))
	for i, o := range s.Observations {
		out[i] = o.Volume
	}
	return out
}

// Validate checks ordering and basic sanity of every bar and returns the
// first problem found.
func (s Series) Validate() error {
	for i, o := range s.Observations {
		if err := o.validate(); err != nil {
			return fmt.Errorf("%w at index %d: %v", ErrInvalidObservation, i, err)
		}
		if i > 0 && !o.Timestamp.After(s.Observations[i-1].Timestamp) {
			return fmt.Errorf("%w: index %d (%s) follows %s", ErrUnordered, i,
				o.Timestamp.Format(time.RFC3339), s.Observations[i-1].Timestamp.Format(time.RFC3339))
		}
	}
	return nil
}

func (o Observation) validate() error {
	for _, v := range []float64{o.Open, o.High, o.Low, o.Close, o.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("non-finite value")
		}
		if v < 0 {
			return errors.New("negative value")
		}
	}
	if o.High < o.Low {
		return fmt.Errorf("high %.8f below low %.8f", o.High, o.Low)
	}
	return nil
}
