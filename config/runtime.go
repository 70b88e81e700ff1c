package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Runtime holds process settings for the command-line tool.
type Runtime struct {
	LogLevel     string
	StrategyFile string
	MetricsFile  string
	Pair         string
	Timeframe    string
}

// LoadRuntime reads GOSIGNAL_* environment variables, optionally layered
// over a dotenv-style file. A missing file is not an error; an unreadable
// or malformed one is. Timeframe stays empty unless set, so callers can
// fall back to the strategy file.
func LoadRuntime(envFile string) (Runtime, error) {
	v := viper.New()
	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
				return Runtime{}, fmt.Errorf("read runtime config %s: %w", envFile, err)
			}
		}
	}
	v.SetEnvPrefix("GOSIGNAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STRATEGY_FILE", "")
	v.SetDefault("METRICS_FILE", "")
	v.SetDefault("PAIR", "BTC/USDT")

	return Runtime{
		LogLevel:     v.GetString("LOG_LEVEL"),
		StrategyFile: v.GetString("STRATEGY_FILE"),
		MetricsFile:  v.GetString("METRICS_FILE"),
		Pair:         v.GetString("PAIR"),
		Timeframe:    v.GetString("TIMEFRAME"),
	}, nil
}
