package ohlcv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/evdnx/gosignal/config"
	"github.com/evdnx/gosignal/evaluator"
	"github.com/evdnx/gosignal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	in := "Volume,Timestamp,Open,High,Low,Close,extra\n" +
		"12.5,2024-01-01T00:00:00Z,100,101,99,100.5,x\n" +
		"0,1704067500,100.5,102,100,101,y\n" +
		"3,1704067800000,101,101.5,100.25,100.75,z\n"
	s, err := ReadCSV(strings.NewReader(in), "BTC/USDT", "5m")
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())
	assert.Equal(t, "BTC/USDT", s.Pair)
	assert.Equal(t, "5m", s.Timeframe)
	assert.Equal(t, 12.5, s.Observations[0].Volume)
	assert.Equal(t, 100.5, s.Observations[0].Close)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 5, 0, 0, time.UTC), s.Observations[1].Timestamp)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 10, 0, 0, time.UTC), s.Observations[2].Timestamp)
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("timestamp,open,high,low,close\n"), "X", "5m")
	assert.True(t, errors.Is(err, ErrMissingColumn))

	_, err = ReadCSV(strings.NewReader("timestamp,open,high,low,close,volume\nyesterday,1,1,1,1,1\n"), "X", "5m")
	assert.ErrorContains(t, err, "line 2")

	_, err = ReadCSV(strings.NewReader("timestamp,open,high,low,close,volume\n1704067200,1,1,1,abc,1\n"), "X", "5m")
	assert.ErrorContains(t, err, "close")

	unordered := "timestamp,open,high,low,close,volume\n1704067500,1,1,1,1,1\n1704067200,1,1,1,1,1\n"
	_, err = ReadCSV(strings.NewReader(unordered), "X", "5m")
	assert.True(t, errors.Is(err, types.ErrUnordered))

	_, err = ReadCSV(strings.NewReader(""), "X", "5m")
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	var b strings.Builder
	b.WriteString("timestamp,open,high,low,close,volume\n")
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		p := 100 - float64(i)
		fmt.Fprintf(&b, "%s,%g,%g,%g,%g,10\n", start.Add(time.Duration(i)*5*time.Minute).Format(time.RFC3339), p+1, p+1.5, p-0.5, p)
	}
	series, err := ReadCSV(strings.NewReader(b.String()), "ETH/USDT", "5m")
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Variant = config.VariantBands
	e, err := evaluator.NewEvaluator(cfg, nil)
	require.NoError(t, err)
	res := e.Evaluate(series)

	var out bytes.Buffer
	require.NoError(t, WriteCSV(&out, res))

	rows, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 31)
	assert.Equal(t, OutputHeader, rows[0])

	first := rows[1]
	assert.Equal(t, "2024-01-01T00:00:00Z", first[0])
	assert.Equal(t, "", first[6], "rsi absent during warm-up")
	assert.Equal(t, "", first[7], "band absent during warm-up")
	assert.Equal(t, "0", first[10])

	last := rows[30]
	assert.NotEmpty(t, last[6])
	assert.NotEmpty(t, last[9])
	for i, row := range rows[1:] {
		assert.Contains(t, []string{"0", "1"}, row[10], "row %d", i)
		assert.Contains(t, []string{"0", "1"}, row[11], "row %d", i)
	}
}

func TestWriteCSVWithoutBands(t *testing.T) {
	series, err := ReadCSV(strings.NewReader("timestamp,open,high,low,close,volume\n1704067200,1,1,1,1,1\n"), "X", "5m")
	require.NoError(t, err)
	e, err := evaluator.NewEvaluator(config.Default(), nil)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, WriteCSV(&out, e.Evaluate(series)))
	rows, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"", "", "", ""}, rows[1][6:10])
}

func TestParseTimestamp(t *testing.T) {
	ts, err := ParseTimestamp("2024-01-01T00:00:00.5+01:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 12, 31, 23, 0, 0, 500_000_000, time.UTC), ts)
	_, err = ParseTimestamp("01/01/2024")
	assert.Error(t, err)
}
