// Package ohlcv reads bar series from CSV and writes evaluated frames back
// out with indicator and signal columns appended.
package ohlcv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/evdnx/gosignal/evaluator"
	"github.com/evdnx/gosignal/indicator"
	"github.com/evdnx/gosignal/types"
)

var ErrMissingColumn = errors.New("missing column")

var inputColumns = []string{"timestamp", "open", "high", "low", "close", "volume"}

// ReadCSV parses a header-led CSV of bars. Columns are matched by name,
// case-insensitively, and extra columns are ignored. Timestamps may be
// RFC3339 or unix seconds / milliseconds. The returned series is validated.
func ReadCSV(r io.Reader, pair, timeframe string) (types.Series, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return types.Series{}, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	cols := make([]int, len(inputColumns))
	for i, name := range inputColumns {
		j, ok := idx[name]
		if !ok {
			return types.Series{}, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
		cols[i] = j
	}

	s := types.Series{Pair: pair, Timeframe: timeframe}
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return types.Series{}, fmt.Errorf("line %d: %w", line, err)
		}
		o, err := parseRecord(rec, cols)
		if err != nil {
			return types.Series{}, fmt.Errorf("line %d: %w", line, err)
		}
		s.Observations = append(s.Observations, o)
	}
	if err := s.Validate(); err != nil {
		return types.Series{}, err
	}
	return s, nil
}

func parseRecord(rec []string, cols []int) (types.Observation, error) {
	field := func(i int) (string, error) {
		if cols[i] >= len(rec) {
			return "", fmt.Errorf("%w %q", ErrMissingColumn, inputColumns[i])
		}
		return strings.TrimSpace(rec[cols[i]]), nil
	}

	var o types.Observation
	raw, err := field(0)
	if err != nil {
		return o, err
	}
	if o.Timestamp, err = ParseTimestamp(raw); err != nil {
		return o, err
	}
	dst := []*float64{&o.Open, &o.High, &o.Low, &o.Close, &o.Volume}
	for i, p := range dst {
		raw, err := field(i + 1)
		if err != nil {
			return o, err
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return o, fmt.Errorf("%s: %w", inputColumns[i+1], err)
		}
		*p = v
	}
	return o, nil
}

// ParseTimestamp accepts RFC3339 (with or without fractional seconds) or a
// unix epoch in seconds; integers above 1e11 are read as milliseconds.
func ParseTimestamp(raw string) (time.Time, error) {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > 1e11 || n < -1e11 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q: %w", raw, err)
	}
	return t.UTC(), nil
}

// OutputHeader is the column order written by WriteCSV.
var OutputHeader = []string{
	"timestamp", "open", "high", "low", "close", "volume",
	"rsi", "bb_lowerband", "bb_middleband", "bb_upperband",
	evaluator.KindEnterLong, evaluator.KindExitLong,
}

// WriteCSV writes the evaluated frame. Absent indicator values are empty
// cells and signals are 1 or 0.
func WriteCSV(w io.Writer, r evaluator.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(OutputHeader); err != nil {
		return err
	}
	var lower, middle, upper indicator.Column
	if r.Bands != nil {
		lower, middle, upper = r.Bands.Lower, r.Bands.Middle, r.Bands.Upper
	}
	for i, o := range r.Series.Observations {
		rec := []string{
			o.Timestamp.UTC().Format(time.RFC3339),
			formatFloat(o.Open),
			formatFloat(o.High),
			formatFloat(o.Low),
			formatFloat(o.Close),
			formatFloat(o.Volume),
			formatValue(r.RSI, i),
			formatValue(lower, i),
			formatValue(middle, i),
			formatValue(upper, i),
			formatBool(r.EnterLong, i),
			formatBool(r.ExitLong, i),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func formatValue(c indicator.Column, i int) string {
	if i >= len(c) || !c[i].Valid {
		return ""
	}
	return strconv.FormatFloat(c[i].V, 'f', 6, 64)
}

func formatBool(col []bool, i int) string {
	if i < len(col) && col[i] {
		return "1"
	}
	return "0"
}
