package cmd

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/c9s/cyclekit/pkg/cmd/cmdutil"
	"github.com/c9s/cyclekit/pkg/config"
	"github.com/c9s/cyclekit/pkg/indicator"
	"github.com/c9s/cyclekit/pkg/metrics"
	"github.com/c9s/cyclekit/pkg/replay"
	"github.com/c9s/cyclekit/pkg/style"
	"github.com/c9s/cyclekit/pkg/types"
	"github.com/c9s/cyclekit/pkg/util"
)

func init() {
	cmdutil.KLineFlags(ReplayCmd.Flags())
	ReplayCmd.Flags().String("csv", "", "kline csv file or directory")
	ReplayCmd.Flags().StringArray("indicator", nil, "indicator to replay, name[:key=value,...], repeatable; defaults to every indicator")
	ReplayCmd.Flags().Var(new(types.Source), "source", "candle price fed to the indicators given by --indicator")
	ReplayCmd.Flags().Int("roc-period", 0, "also report the look-ahead rate of change over this many candles")
	ReplayCmd.Flags().Int("keep", replay.DefaultKeep, "number of trailing result rows to print per indicator")
	ReplayCmd.Flags().String("warn-rate", "3+1/1m", "rate of the skipped kline warnings before they turn into errors, b+n/duration")
	ReplayCmd.Flags().Bool("progress", false, "show a progress bar")
	ReplayCmd.Flags().Bool("json", false, "print the reports as json")
	RootCmd.AddCommand(ReplayCmd)
}

// loadConfig loads the --config file, or returns an empty config.
func loadConfig() (*config.Config, error) {
	configFile := viper.GetString("config")
	if configFile == "" {
		return &config.Config{}, nil
	}

	return config.Load(configFile)
}

// startMetricsServer serves metrics when --metrics-bind is given. The
// returned function stops the server.
func startMetricsServer() func() {
	bind := viper.GetString("metrics-bind")
	if bind == "" {
		return func() {}
	}

	srv := metrics.NewServer(bind)
	srv.Start()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		util.LogErr(srv.Stop(ctx), "metrics server shutdown error")
	}
}

// applyKLineFlags overrides the config with the kline flags that were set.
func applyKLineFlags(cmd *cobra.Command, conf *config.Config) error {
	if cmd.Flags().Changed("decoder") {
		conf.Decoder, _ = cmd.Flags().GetString("decoder")
	}

	if cmd.Flags().Changed("symbol") {
		conf.Symbol, _ = cmd.Flags().GetString("symbol")
	}

	if cmd.Flags().Changed("interval") {
		s, _ := cmd.Flags().GetString("interval")
		interval, err := types.ParseInterval(s)
		if err != nil {
			return err
		}
		conf.Interval = interval
	}

	if conf.Interval == "" {
		conf.Interval = types.Interval1h
	}

	return nil
}

var ReplayCmd = &cobra.Command{
	Use:          "replay [--csv file] [--indicator name[:key=value,...]]...",
	Short:        "replay kline csv data through the cycle indicators",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cmdutil.WithSignalCancel(context.Background())
		defer cancel()

		conf, err := loadConfig()
		if err != nil {
			return err
		}

		if err := applyKLineFlags(cmd, conf); err != nil {
			return err
		}

		csvPath, err := cmd.Flags().GetString("csv")
		if err != nil {
			return err
		}
		if csvPath == "" && len(conf.CSV) > 0 {
			csvPath = conf.CSV[0]
		}
		if csvPath == "" {
			return errors.New("--csv option or the csv config is required")
		}

		src := *cmd.Flags().Lookup("source").Value.(*types.Source)
		indicatorFlags, err := cmd.Flags().GetStringArray("indicator")
		if err != nil {
			return err
		}

		for _, s := range indicatorFlags {
			indicatorConf, err := cmdutil.ParseIndicatorFlag(s, src)
			if err != nil {
				return err
			}
			conf.Indicators = append(conf.Indicators, indicatorConf)
		}

		if len(conf.Indicators) == 0 {
			for _, name := range indicator.Names() {
				conf.Indicators = append(conf.Indicators, config.IndicatorConfig{Name: name, Source: src})
			}
		}

		if cmd.Flags().Changed("roc-period") {
			period, _ := cmd.Flags().GetInt("roc-period")
			conf.RateOfChange = &config.RateOfChangeConfig{Period: period}
		}

		if err := conf.Validate(); err != nil {
			return err
		}

		klines, err := cmdutil.LoadKLines(csvPath, conf.Decoder, conf.Symbol, conf.Interval)
		if err != nil {
			return err
		}
		log.Infof("loaded %d klines from %s", len(klines), csvPath)

		stopMetrics := startMetricsServer()
		defer stopMetrics()

		keep, err := cmd.Flags().GetInt("keep")
		if err != nil {
			return err
		}

		warnRate, err := cmd.Flags().GetString("warn-rate")
		if err != nil {
			return err
		}

		runner := replay.Runner{Symbol: conf.Symbol, Keep: keep, WarnRate: warnRate}

		showProgress, _ := cmd.Flags().GetBool("progress")
		if showProgress {
			bar := pb.Full.Start(len(klines) * len(conf.Indicators))
			runner.OnProgress = func() { bar.Increment() }
			defer bar.Finish()
		}

		reports, err := runner.Run(ctx, klines, conf.Indicators)
		if err != nil {
			return err
		}

		var roc []indicator.ResultSet
		if conf.RateOfChange != nil {
			roc, err = replay.RateOfChange(klines, conf.RateOfChange.Period)
			if err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Reports      []replay.Report       `json:"reports"`
				RateOfChange []indicator.ResultSet `json:"rateOfChange,omitempty"`
			}{reports, roc})
		}

		for _, report := range reports {
			renderReport(out, report, *style.NewDefaultTableStyle())
		}
		renderSummary(out, reports, *style.NewDefaultTableStyle())

		if len(roc) > 0 {
			start := len(roc) - keep
			if start < 0 {
				start = 0
			}
			for i := start; i < len(roc); i++ {
				renderResultSet(out, "rate of change at "+formatTime(klines[i].StartTime.Time()), roc[i], *style.NewDefaultTableStyle())
			}
		}

		return nil
	},
}
