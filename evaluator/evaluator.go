// Package evaluator turns a bar series into RSI / Bollinger indicator
// columns and the enter_long / exit_long signal columns consumed by a
// trading engine.
package evaluator

import (
	"github.com/evdnx/gosignal/config"
	"github.com/evdnx/gosignal/indicator"
	"github.com/evdnx/gosignal/logger"
	"github.com/evdnx/gosignal/metrics"
	"github.com/evdnx/gosignal/types"
)

const (
	KindEnterLong = "enter_long"
	KindExitLong  = "exit_long"
)

// Frame is a series together with its indicator columns. Bands is nil
// when the configuration does not ask for them.
type Frame struct {
	Series types.Series
	RSI    indicator.Column
	Bands  *indicator.Bands
}

func (f Frame) Len() int { return f.Series.Len() }

func (f Frame) rsiAt(i int) indicator.Value { return valueAt(f.RSI, i) }

func (f Frame) lowerAt(i int) indicator.Value {
	if f.Bands == nil {
		return indicator.None()
	}
	return valueAt(f.Bands.Lower, i)
}

func (f Frame) upperAt(i int) indicator.Value {
	if f.Bands == nil {
		return indicator.None()
	}
	return valueAt(f.Bands.Upper, i)
}

func valueAt(c indicator.Column, i int) indicator.Value {
	if i < 0 || i >= len(c) {
		return indicator.None()
	}
	return c[i]
}

// Result is the evaluator output for one series.
type Result struct {
	Frame
	EnterLong []bool
	ExitLong  []bool
}

// Counts returns the number of true entry and exit cells.
func (r Result) Counts() (entries, exits int) {
	return countTrue(r.EnterLong), countTrue(r.ExitLong)
}

// Evaluator applies one validated configuration to bar series. It holds no
// per-series state and may be shared between goroutines.
type Evaluator struct {
	Cfg config.EvaluatorConfig
	Log logger.Logger
}

// NewEvaluator validates cfg and returns an evaluator. A nil log discards
// output.
func NewEvaluator(cfg config.EvaluatorConfig, log logger.Logger) (*Evaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Evaluator{Cfg: cfg, Log: log}, nil
}

// ComputeIndicators appends the RSI column and, when enabled, the three
// band columns. The series itself is not modified.
func (e *Evaluator) ComputeIndicators(series types.Series) Frame {
	closes := series.Closes()
	f := Frame{
		Series: series,
		RSI:    indicator.RSI(closes, e.Cfg.RSIPeriod),
	}
	if e.Cfg.BandsEnabled() {
		b := indicator.Bollinger(closes, e.Cfg.BandPeriod, e.Cfg.BandDevUp, e.Cfg.BandDevDown)
		f.Bands = &b
	}
	return f
}

// EntrySignal marks bars where RSI is under the buy threshold and the
// variant's companion condition holds. Absent indicator values never
// signal.
func (e *Evaluator) EntrySignal(f Frame) []bool {
	out := make([]bool, f.Len())
	for i, o := range f.Series.Observations {
		out[i] = enterLong(e.Cfg, f.rsiAt(i), o, f.lowerAt(i))
	}
	return out
}

// ExitSignal marks bars where the variant's exit rule holds.
func (e *Evaluator) ExitSignal(f Frame) []bool {
	out := make([]bool, f.Len())
	for i, o := range f.Series.Observations {
		out[i] = exitLong(e.Cfg, f.rsiAt(i), o, f.upperAt(i))
	}
	return out
}

// Evaluate runs indicators and both signal rules over series.
func (e *Evaluator) Evaluate(series types.Series) Result {
	f := e.ComputeIndicators(series)
	r := Result{
		Frame:     f,
		EnterLong: e.EntrySignal(f),
		ExitLong:  e.ExitSignal(f),
	}
	entries, exits := r.Counts()
	warmup := e.warmupBars(f)

	variant := string(e.Cfg.Variant)
	metrics.SeriesEvaluated.WithLabelValues(variant).Inc()
	metrics.ObservationsProcessed.WithLabelValues(variant).Add(float64(series.Len()))
	metrics.SignalsEmitted.WithLabelValues(variant, KindEnterLong).Add(float64(entries))
	metrics.SignalsEmitted.WithLabelValues(variant, KindExitLong).Add(float64(exits))
	metrics.WarmupObservations.WithLabelValues(variant).Set(float64(warmup))

	if warmup == series.Len() && series.Len() > 0 {
		e.Log.Warn("series_shorter_than_warmup",
			logger.String("pair", series.Pair),
			logger.Int("bars", series.Len()),
			logger.Int("rsi_period", e.Cfg.RSIPeriod),
		)
	}
	e.Log.Info("series_evaluated",
		logger.String("pair", series.Pair),
		logger.String("timeframe", series.Timeframe),
		logger.String("variant", variant),
		logger.Int("bars", series.Len()),
		logger.Int("warmup", warmup),
		logger.Int(KindEnterLong, entries),
		logger.Int(KindExitLong, exits),
	)
	return r
}

// warmupBars counts bars lacking any indicator the variant depends on.
func (e *Evaluator) warmupBars(f Frame) int {
	n := 0
	for i := 0; i < f.Len(); i++ {
		if !f.rsiAt(i).Valid {
			n++
			continue
		}
		if e.Cfg.Variant == config.VariantBands && !f.lowerAt(i).Valid {
			n++
		}
	}
	return n
}

func enterLong(cfg config.EvaluatorConfig, rsi indicator.Value, o types.Observation, lower indicator.Value) bool {
	if !rsi.Less(cfg.BuyThreshold()) {
		return false
	}
	switch cfg.Variant {
	case config.VariantBands:
		return lower.Valid && o.Close < lower.V
	default:
		return o.Volume > 0
	}
}

func exitLong(cfg config.EvaluatorConfig, rsi indicator.Value, o types.Observation, upper indicator.Value) bool {
	switch cfg.Variant {
	case config.VariantBands:
		return rsi.Greater(cfg.SellThreshold()) || (upper.Valid && o.Close > upper.V)
	default:
		return rsi.Greater(cfg.SellThreshold()) && o.Volume > 0
	}
}

func countTrue(col []bool) int {
	n := 0
	for _, b := range col {
		if b {
			n++
		}
	}
	return n
}
