package cmdutil

import "github.com/spf13/pflag"

// KLineFlags defines the flags selecting the kline csv input.
func KLineFlags(flags *pflag.FlagSet) {
	flags.String("decoder", "", "csv kline format: binance or metatrader")
	flags.String("symbol", "", "symbol of the klines, e.g. BTCUSDT")
	flags.String("interval", "", "interval of the klines, e.g. 1m, 1h, 1d")
}
