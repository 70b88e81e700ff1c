package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/evdnx/gosignal/config"
	"github.com/evdnx/gosignal/evaluator"
	"github.com/evdnx/gosignal/logger"
	"github.com/evdnx/gosignal/metrics"
	"github.com/evdnx/gosignal/ohlcv"
	"github.com/evdnx/gosignal/types"
)

const usage = `usage:
  gosignal evaluate -in bars.csv [-out signals.csv] [-config strategy.yaml] [-variant volume|bands]
  gosignal sweep    -in bars.csv [-config strategy.yaml] [-variant volume|bands]

environment: GOSIGNAL_LOG_LEVEL, GOSIGNAL_STRATEGY_FILE, GOSIGNAL_METRICS_FILE,
             GOSIGNAL_PAIR, GOSIGNAL_TIMEFRAME`

type options struct {
	in, out, strategy, variant, envFile string
	rt                                  config.Runtime
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.New(usage)
	}
	cmd, rest := args[0], args[1:]

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	var opts options
	fs.StringVar(&opts.in, "in", "", "input CSV of bars")
	fs.StringVar(&opts.out, "out", "", "output CSV (default stdout)")
	fs.StringVar(&opts.strategy, "config", "", "strategy YAML")
	fs.StringVar(&opts.variant, "variant", "", "override the strategy variant")
	fs.StringVar(&opts.envFile, "env", ".env", "optional dotenv file")
	pair := fs.String("pair", "", "pair name recorded on the series")
	timeframe := fs.String("timeframe", "", "timeframe recorded on the series")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	rt, err := config.LoadRuntime(opts.envFile)
	if err != nil {
		return err
	}
	opts.rt = rt
	if opts.strategy == "" {
		opts.strategy = opts.rt.StrategyFile
	}
	if *pair != "" {
		opts.rt.Pair = *pair
	}
	if *timeframe != "" {
		opts.rt.Timeframe = *timeframe
	}

	log, err := logger.NewZapLogger(opts.rt.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	switch cmd {
	case "evaluate":
		err = evaluate(opts, log, stdout)
	case "sweep":
		err = sweep(opts, log, stdout)
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
	if err != nil {
		log.Error("command_failed", logger.String("cmd", cmd), logger.Err(err))
		return err
	}
	if opts.rt.MetricsFile != "" {
		if err := metrics.WriteTextfile(opts.rt.MetricsFile); err != nil {
			log.Warn("metrics_write_failed", logger.String("path", opts.rt.MetricsFile), logger.Err(err))
		}
	}
	return nil
}

func loadInputs(opts options) (config.EvaluatorConfig, types.Series, error) {
	cfg := config.Default()
	if opts.strategy != "" {
		var err error
		if cfg, err = config.Load(opts.strategy); err != nil {
			return cfg, types.Series{}, err
		}
	}
	if opts.variant != "" {
		v, err := config.ParseVariant(opts.variant)
		if err != nil {
			return cfg, types.Series{}, err
		}
		cfg.Variant = v
	}
	if opts.in == "" {
		return cfg, types.Series{}, errors.New("-in is required")
	}
	f, err := os.Open(opts.in)
	if err != nil {
		return cfg, types.Series{}, err
	}
	defer f.Close()

	tf := opts.rt.Timeframe
	if tf == "" {
		tf = cfg.Timeframe
	}
	series, err := ohlcv.ReadCSV(f, opts.rt.Pair, tf)
	if err != nil {
		return cfg, types.Series{}, fmt.Errorf("%s: %w", opts.in, err)
	}
	return cfg, series, nil
}

func evaluate(opts options, log logger.Logger, stdout io.Writer) (err error) {
	cfg, series, err := loadInputs(opts)
	if err != nil {
		return err
	}
	e, err := evaluator.NewEvaluator(cfg, log)
	if err != nil {
		return err
	}
	res := e.Evaluate(series)

	w := stdout
	if opts.out != "" {
		var f *os.File
		if f, err = os.Create(opts.out); err != nil {
			return err
		}
		defer closeInto(f, opts.out, &err)
		w = f
	}
	return ohlcv.WriteCSV(w, res)
}

// closeInto closes c and reports its error through err unless an earlier
// error is already set.
func closeInto(c io.Closer, name string, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("close %s: %w", name, cerr)
	}
}

func sweep(opts options, log logger.Logger, stdout io.Writer) error {
	cfg, series, err := loadInputs(opts)
	if err != nil {
		return err
	}
	results, err := evaluator.Sweep(series, cfg, log)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "buy\tsell\tenter_long\texit_long")
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\n", r.Buy, r.Sell, r.Entries, r.Exits)
	}
	return tw.Flush()
}
