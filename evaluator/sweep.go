package evaluator

import (
	"github.com/evdnx/gosignal/config"
	"github.com/evdnx/gosignal/logger"
	"github.com/evdnx/gosignal/types"
)

// SweepResult reports how often each rule fired for one threshold pair.
type SweepResult struct {
	Buy     int
	Sell    int
	Entries int
	Exits   int
}

// Sweep evaluates series under every threshold pair of config.Grid(cfg).
// Indicators are computed once since thresholds do not affect them.
func Sweep(series types.Series, cfg config.EvaluatorConfig, log logger.Logger) ([]SweepResult, error) {
	base, err := NewEvaluator(cfg, log)
	if err != nil {
		return nil, err
	}
	f := base.ComputeIndicators(series)

	grid := config.Grid(cfg)
	out := make([]SweepResult, 0, len(grid))
	for _, c := range grid {
		e := &Evaluator{Cfg: c, Log: base.Log}
		out = append(out, SweepResult{
			Buy:     c.BuyRSI.Value,
			Sell:    c.SellRSI.Value,
			Entries: countTrue(e.EntrySignal(f)),
			Exits:   countTrue(e.ExitSignal(f)),
		})
	}
	base.Log.Info("sweep_complete",
		logger.String("pair", series.Pair),
		logger.Int("combinations", len(out)),
	)
	return out, nil
}
