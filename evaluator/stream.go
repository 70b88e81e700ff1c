package evaluator

import (
	"time"

	"github.com/evdnx/gosignal/config"
	"github.com/evdnx/gosignal/indicator"
	"github.com/evdnx/gosignal/logger"
	"github.com/evdnx/gosignal/metrics"
	"github.com/evdnx/gosignal/types"
)

// Point is the evaluator output for a single bar.
type Point struct {
	Timestamp time.Time
	RSI       indicator.Value
	Upper     indicator.Value
	Middle    indicator.Value
	Lower     indicator.Value
	EnterLong bool
	ExitLong  bool
}

// Stream evaluates bars one at a time for live feeds. It applies the same
// RSI and band definitions as Evaluator, so after warm-up each Point
// matches the batch columns. A Stream is not safe for concurrent use.
type Stream struct {
	cfg    config.EvaluatorConfig
	log    logger.Logger
	rsi    *indicator.RSIStream
	window *indicator.Window
	pair   string
	bars   int
}

// NewStream validates cfg and builds the incremental indicators for pair.
func NewStream(pair string, cfg config.EvaluatorConfig, log logger.Logger) (*Stream, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNop()
	}
	rsi, err := indicator.NewRSIStream(cfg.RSIPeriod)
	if err != nil {
		return nil, err
	}
	s := &Stream{cfg: cfg, log: log, rsi: rsi, pair: pair}
	if cfg.BandsEnabled() {
		s.window = indicator.NewWindow(cfg.BandPeriod)
	}
	return s, nil
}

// Bars returns the number of bars processed so far.
func (s *Stream) Bars() int { return s.bars }

// Process feeds one bar and returns the indicator readings and signals for
// it. Bars must arrive in timestamp order.
func (s *Stream) Process(o types.Observation) Point {
	s.bars++
	p := Point{Timestamp: o.Timestamp}

	if s.window != nil {
		s.window.Add(o.Close)
		p.Upper, p.Middle, p.Lower = s.window.Bands(s.cfg.BandDevUp, s.cfg.BandDevDown)
	}

	rsi, err := s.rsi.Add(o.Close)
	if err != nil {
		s.log.Warn("rsi_add_error",
			logger.String("pair", s.pair),
			logger.Int("bar", s.bars),
			logger.Err(err),
		)
	}
	p.RSI = rsi

	p.EnterLong = enterLong(s.cfg, p.RSI, o, p.Lower)
	p.ExitLong = exitLong(s.cfg, p.RSI, o, p.Upper)

	variant := string(s.cfg.Variant)
	metrics.ObservationsProcessed.WithLabelValues(variant).Inc()
	if p.EnterLong {
		metrics.SignalsEmitted.WithLabelValues(variant, KindEnterLong).Inc()
		s.log.Info("signal",
			logger.String("pair", s.pair),
			logger.String("kind", KindEnterLong),
			logger.Float64("rsi", p.RSI.V),
			logger.Float64("close", o.Close),
		)
	}
	if p.ExitLong {
		metrics.SignalsEmitted.WithLabelValues(variant, KindExitLong).Inc()
		s.log.Info("signal",
			logger.String("pair", s.pair),
			logger.String("kind", KindExitLong),
			logger.Float64("rsi", p.RSI.V),
			logger.Float64("close", o.Close),
		)
	}
	return p
}
