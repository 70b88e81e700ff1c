package evaluator

import (
	"math/rand"
	"testing"
	"time"

	"github.com/evdnx/gosignal/config"
	"github.com/evdnx/gosignal/testutils"
	"github.com/evdnx/gosignal/types"
)

var t0 = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

// seriesFromCloses builds 5m bars around the supplied closes.
func seriesFromCloses(closes []float64, volume float64) types.Series {
	s := types.Series{Pair: "BTC/USDT", Timeframe: "5m"}
	prev := closes[0]
	for i, c := range closes {
		hi, lo := c+0.5, c-0.5
		if prev > hi {
			hi = prev
		}
		if prev < lo {
			lo = prev
		}
		s.Observations = append(s.Observations, types.Observation{
			Timestamp: t0.Add(time.Duration(i) * 5 * time.Minute),
			Open:      prev, High: hi, Low: lo, Close: c, Volume: volume,
		})
		prev = c
	}
	return s
}

func randomCloses(n int, seed int64) []float64 {
	r := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	p := 100.0
	for i := range out {
		p += r.NormFloat64() * 1.5
		if p < 5 {
			p = 5
		}
		out[i] = p
	}
	return out
}

// downtrend falls one unit per bar with a small bounce every fifth bar.
func downtrend(n int) []float64 {
	out := make([]float64, n)
	p := 200.0
	for i := range out {
		if i%5 == 4 {
			p += 0.3
		} else {
			p--
		}
		out[i] = p
	}
	return out
}

func uptrend(n int) []float64 {
	out := make([]float64, n)
	p := 100.0
	for i := range out {
		if i%5 == 4 {
			p -= 0.3
		} else {
			p++
		}
		out[i] = p
	}
	return out
}

func bandsCfg() config.EvaluatorConfig {
	cfg := config.Default()
	cfg.Variant = config.VariantBands
	return cfg
}

func buildEvaluator(t *testing.T, cfg config.EvaluatorConfig) (*Evaluator, *testutils.MockLogger) {
	t.Helper()
	log := testutils.NewMockLogger()
	e, err := NewEvaluator(cfg, log)
	if err != nil {
		t.Fatalf("NewEvaluator failed: %v", err)
	}
	return e, log
}
