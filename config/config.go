package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/evdnx/gosignal/indicator"
)

// Variant selects which companion condition gates the RSI thresholds.
type Variant string

const (
	// VariantVolume: enter on RSI < buy with non-zero volume, exit on
	// RSI > sell with non-zero volume.
	VariantVolume Variant = "volume"
	// VariantBands: enter on RSI < buy with close under the lower band,
	// exit on RSI > sell or close over the upper band.
	VariantBands Variant = "bands"
)

func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case VariantVolume, VariantBands:
		return v, nil
	}
	return "", fmt.Errorf("unknown variant %q", s)
}

// IntParam is an integer threshold with a bounded tuning range.
type IntParam struct {
	Low      int    `yaml:"low"`
	High     int    `yaml:"high"`
	Default  int    `yaml:"default"`
	Value    int    `yaml:"value"`
	Space    string `yaml:"space"`
	Optimize bool   `yaml:"optimize"`
}

func (p IntParam) Validate() error {
	if p.Low < 0 || p.High > 100 {
		return fmt.Errorf("range [%d,%d] must lie within [0,100]", p.Low, p.High)
	}
	if p.Low > p.High {
		return fmt.Errorf("low %d above high %d", p.Low, p.High)
	}
	if p.Default < p.Low || p.Default > p.High {
		return fmt.Errorf("default %d outside [%d,%d]", p.Default, p.Low, p.High)
	}
	if p.Value < p.Low || p.Value > p.High {
		return fmt.Errorf("value %d outside [%d,%d]", p.Value, p.Low, p.High)
	}
	return nil
}

// Range enumerates every value from Low to High inclusive.
func (p IntParam) Range() []int {
	if p.High < p.Low {
		return nil
	}
	out := make([]int, 0, p.High-p.Low+1)
	for v := p.Low; v <= p.High; v++ {
		out = append(out, v)
	}
	return out
}

// Trailing mirrors the engine's trailing-stop settings. The evaluator does
// not act on it.
type Trailing struct {
	Enabled             bool    `yaml:"enabled"`
	Positive            float64 `yaml:"positive"`
	PositiveOffset      float64 `yaml:"positive_offset"`
	OnlyOffsetIsReached bool    `yaml:"only_offset_is_reached"`
}

// EvaluatorConfig holds the indicator parameters and signal thresholds.
// Timeframe, MinimalROI, Stoploss and Trailing belong to the execution
// engine; they are carried and validated here so one file describes the
// whole strategy.
type EvaluatorConfig struct {
	Variant      Variant `yaml:"variant"`
	RSIPeriod    int     `yaml:"rsi_period"`    // default 14
	BandPeriod   int     `yaml:"band_period"`   // default 20
	BandDevUp    float64 `yaml:"band_dev_up"`   // default 2.0
	BandDevDown  float64 `yaml:"band_dev_down"` // default 2.0
	IncludeBands bool    `yaml:"include_bands"`

	BuyRSI  IntParam `yaml:"buy_rsi"`  // [10,40], default 30
	SellRSI IntParam `yaml:"sell_rsi"` // [60,90], default 70

	Timeframe  string          `yaml:"timeframe"`
	MinimalROI map[int]float64 `yaml:"minimal_roi"` // minutes since entry -> ratio
	Stoploss   float64         `yaml:"stoploss"`
	Trailing   Trailing        `yaml:"trailing"`
}

func Default() EvaluatorConfig {
	return EvaluatorConfig{
		Variant:     VariantVolume,
		RSIPeriod:   indicator.DefaultRSIPeriod,
		BandPeriod:  indicator.DefaultBandPeriod,
		BandDevUp:   indicator.DefaultBandDev,
		BandDevDown: indicator.DefaultBandDev,
		BuyRSI:      IntParam{Low: 10, High: 40, Default: 30, Value: 30, Space: "buy", Optimize: true},
		SellRSI:     IntParam{Low: 60, High: 90, Default: 70, Value: 70, Space: "sell", Optimize: true},
		Timeframe:   "5m",
		MinimalROI:  map[int]float64{0: 0.1, 30: 0.05, 60: 0.025, 120: 0.01},
		Stoploss:    -0.15,
		Trailing: Trailing{
			Positive:            0.01,
			PositiveOffset:      0.02,
			OnlyOffsetIsReached: true,
		},
	}
}

func (c EvaluatorConfig) BuyThreshold() float64  { return float64(c.BuyRSI.Value) }
func (c EvaluatorConfig) SellThreshold() float64 { return float64(c.SellRSI.Value) }

// BandsEnabled reports whether the band columns must be computed.
func (c EvaluatorConfig) BandsEnabled() bool {
	return c.IncludeBands || c.Variant == VariantBands
}

// Validate returns the first configuration problem found.
func (c EvaluatorConfig) Validate() error {
	if _, err := ParseVariant(string(c.Variant)); err != nil {
		return err
	}
	if c.RSIPeriod < 2 {
		return fmt.Errorf("RSIPeriod (%d) must be at least 2", c.RSIPeriod)
	}
	if c.BandsEnabled() {
		if c.BandPeriod < 2 {
			return fmt.Errorf("BandPeriod (%d) must be at least 2", c.BandPeriod)
		}
		if c.BandDevUp <= 0 || c.BandDevDown <= 0 {
			return errors.New("band deviations must be positive")
		}
	}
	if err := c.BuyRSI.Validate(); err != nil {
		return fmt.Errorf("buy_rsi: %w", err)
	}
	if err := c.SellRSI.Validate(); err != nil {
		return fmt.Errorf("sell_rsi: %w", err)
	}
	if c.BuyRSI.Value >= c.SellRSI.Value {
		return fmt.Errorf("buy threshold %d must be below sell threshold %d", c.BuyRSI.Value, c.SellRSI.Value)
	}
	if c.Timeframe == "" {
		return errors.New("Timeframe must be set")
	}
	for minutes, roi := range c.MinimalROI {
		if minutes < 0 {
			return fmt.Errorf("minimal_roi key %d cannot be negative", minutes)
		}
		if roi < 0 {
			return fmt.Errorf("minimal_roi[%d] (%f) cannot be negative", minutes, roi)
		}
	}
	if c.Stoploss <= -1 || c.Stoploss >= 0 {
		return fmt.Errorf("Stoploss (%f) must be in (-1,0)", c.Stoploss)
	}
	if c.Trailing.Enabled {
		if c.Trailing.Positive <= 0 {
			return errors.New("trailing positive must be > 0 when enabled")
		}
		if c.Trailing.PositiveOffset < c.Trailing.Positive {
			return fmt.Errorf("trailing offset (%f) must be >= positive (%f)",
				c.Trailing.PositiveOffset, c.Trailing.Positive)
		}
	}
	return nil
}
