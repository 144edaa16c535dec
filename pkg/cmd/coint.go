package cmd

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/c9s/cyclekit/pkg/cmd/cmdutil"
	"github.com/c9s/cyclekit/pkg/config"
	"github.com/c9s/cyclekit/pkg/indicator"
	"github.com/c9s/cyclekit/pkg/replay"
	"github.com/c9s/cyclekit/pkg/style"
)

func init() {
	cmdutil.KLineFlags(CointCmd.Flags())
	CointCmd.Flags().Int("period", 100, "number of trailing kline pairs tested")
	CointCmd.Flags().Float64("decay", indicator.DefaultSpreadDecay, "weight decay of the dynamic spread regression")
	RootCmd.AddCommand(CointCmd)
}

// go run ./cmd/cyclekit coint --period 120 ETHUSDT.csv BTCUSDT.csv
var CointCmd = &cobra.Command{
	Use:          "coint [x.csv y.csv]",
	Short:        "test the closes of two kline csv files for cointegration",
	Args:         cobra.MaximumNArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig()
		if err != nil {
			return err
		}

		if err := applyKLineFlags(cmd, conf); err != nil {
			return err
		}

		if len(args) > 0 {
			conf.CSV = args
		}
		if len(conf.CSV) != 2 {
			return errors.Errorf("two csv files are required, given %d", len(conf.CSV))
		}

		if conf.Cointegration == nil {
			conf.Cointegration = &config.CointegrationConfig{}
		}
		if cmd.Flags().Changed("period") || conf.Cointegration.Period == 0 {
			conf.Cointegration.Period, _ = cmd.Flags().GetInt("period")
		}
		if cmd.Flags().Changed("decay") || conf.Cointegration.Decay == 0 {
			conf.Cointegration.Decay, _ = cmd.Flags().GetFloat64("decay")
		}

		if err := conf.Validate(); err != nil {
			return err
		}

		xs, err := cmdutil.LoadKLines(conf.CSV[0], conf.Decoder, conf.Symbol, conf.Interval)
		if err != nil {
			return err
		}

		ys, err := cmdutil.LoadKLines(conf.CSV[1], conf.Decoder, conf.Symbol, conf.Interval)
		if err != nil {
			return err
		}

		r, pairs, err := replay.Cointegrate(xs, ys, conf.Cointegration.Period, conf.Cointegration.Decay)
		if err != nil {
			return err
		}

		log.Infof("tested %d kline pairs", pairs)
		if len(r) == 0 {
			return errors.Errorf("not enough kline pairs with the same start time, found %d", pairs)
		}

		renderResultSet(cmd.OutOrStdout(), conf.CSV[0]+" / "+conf.CSV[1], r, *style.NewDefaultTableStyle())
		return nil
	},
}
