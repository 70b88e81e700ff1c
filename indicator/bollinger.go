package indicator

import "math"

const (
	DefaultBandPeriod = 20
	DefaultBandDev    = 2.0
)

// Bands holds the three Bollinger envelope columns.
type Bands struct {
	Upper  Column
	Middle Column
	Lower  Column
}

// Bollinger computes middle = SMA(period) and upper/lower = middle ±
// dev*σ, where σ is the population standard deviation of the same window.
// The first value appears at index period-1.
func Bollinger(closes []float64, period int, devUp, devDown float64) Bands {
	b := Bands{
		Upper:  newColumn(len(closes)),
		Middle: newColumn(len(closes)),
		Lower:  newColumn(len(closes)),
	}
	if period < 1 || len(closes) < period {
		return b
	}
	for i := period - 1; i < len(closes); i++ {
		mean, sd := meanStdDev(closes[i-period+1 : i+1])
		b.Middle[i] = Some(mean)
		b.Upper[i] = Some(mean + devUp*sd)
		b.Lower[i] = Some(mean - devDown*sd)
	}
	return b
}

// meanStdDev is a two-pass mean / population standard deviation; a window
// of identical values yields exactly zero deviation.
func meanStdDev(window []float64) (float64, float64) {
	if len(window) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range window {
		sum += v
	}
	mean := sum / float64(len(window))
	ss := 0.0
	for _, v := range window {
		d := v - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / float64(len(window)))
}
