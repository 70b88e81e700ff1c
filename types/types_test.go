package types

import (
	"errors"
	"math"
	"testing"
	"time"
)

func bars(n int) Series {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := Series{Pair: "BTC/USDT", Timeframe: "5m"}
	for i := 0; i < n; i++ {
		p := 100 + float64(i)
		s.Observations = append(s.Observations, Observation{
			Timestamp: start.Add(time.Duration(i) * 5 * time.Minute),
			Open:      p, High: p + 1, Low: p - 1, Close: p, Volume: 10,
		})
	}
	return s
}

func TestSeriesValidate(t *testing.T) {
	if err := bars(5).Validate(); err != nil {
		t.Fatalf("expected valid series, got %v", err)
	}
}

func TestSeriesValidateUnordered(t *testing.T) {
	s := bars(3)
	s.Observations[2].Timestamp = s.Observations[1].Timestamp
	if err := s.Validate(); !errors.Is(err, ErrUnordered) {
		t.Fatalf("expected ErrUnordered, got %v", err)
	}
}

func TestSeriesValidateBadBar(t *testing.T) {
	s := bars(3)
	s.Observations[1].Close = math.NaN()
	if err := s.Validate(); !errors.Is(err, ErrInvalidObservation) {
		t.Fatalf("expected ErrInvalidObservation, got %v", err)
	}
	s = bars(3)
	s.Observations[0].High = 1
	if err := s.Validate(); !errors.Is(err, ErrInvalidObservation) {
		t.Fatalf("expected ErrInvalidObservation for high<low, got %v", err)
	}
}

func TestSeriesColumns(t *testing.T) {
	s := bars(3)
	c := s.Closes()
	c[0] = -1
	if s.Observations[0].Close != 100 {
		t.Fatal("Closes must not alias the series")
	}
	if v := s.Volumes(); len(v) != 3 || v[2] != 10 {
		t.Fatalf("unexpected volumes %v", v)
	}
}
