package indicator

import (
	"errors"

	"github.com/evdnx/goti"
)

// DefaultRSIPeriod is the classic 14-bar lookback.
const DefaultRSIPeriod = 14

// RSIStream is an incremental Wilder RSI backed by goti. The first value
// appears once period+1 closes have been added.
//
// goti reads 50 for a window with neither gains nor losses; RSIStream
// reports 0 there, the TA-Lib convention the strategy thresholds were
// tuned against.
type RSIStream struct {
	rsi   *goti.RelativeStrengthIndex
	first float64
	seen  bool
	moved bool
}

// NewRSIStream returns an incremental RSI. period must be at least 2.
func NewRSIStream(period int) (*RSIStream, error) {
	if period < 2 {
		return nil, errors.New("RSI period must be at least 2")
	}
	r, err := goti.NewRelativeStrengthIndexWithParams(period, goti.DefaultConfig())
	if err != nil {
		return nil, err
	}
	return &RSIStream{rsi: r}, nil
}

// Add feeds one close and returns the RSI after it, absent during warm-up.
// A rejected close (negative or non-finite) leaves the state untouched.
func (s *RSIStream) Add(close float64) (Value, error) {
	if err := s.rsi.Add(close); err != nil {
		return None(), err
	}
	if !s.seen {
		s.first, s.seen = close, true
	} else if close != s.first {
		s.moved = true
	}
	v, err := s.rsi.Calculate()
	if err != nil {
		return None(), nil
	}
	if !s.moved {
		return Some(0), nil
	}
	return Some(v), nil
}

// RSI computes Wilder's relative strength index over closes. The first
// value appears at index period; earlier entries are absent. The seed
// averages are simple means of the first period changes, after which the
// averages are smoothed as avg = (avg*(period-1) + x) / period. A window
// with neither gains nor losses reads 0. Invalid closes are skipped and
// read absent.
func RSI(closes []float64, period int) Column {
	out := newColumn(len(closes))
	s, err := NewRSIStream(period)
	if err != nil {
		return out
	}
	for i, c := range closes {
		if v, err := s.Add(c); err == nil {
			out[i] = v
		}
	}
	return out
}
