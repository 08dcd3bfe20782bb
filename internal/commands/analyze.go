package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/rfm/internal/config"
	"github.com/cleared-dev/rfm/internal/logging"
	"github.com/cleared-dev/rfm/internal/pipeline"
	"github.com/cleared-dev/rfm/internal/report"
)

type analyzeOptions struct {
	configPath string
	chartsPath string
	noCharts   bool
	ranksCSV   string
	segments   bool
	logLevel   string
	logFormat  string
}

func newAnalyzeCommand() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Segment the customers of a transaction ledger and rank them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			load := config.LoadOrDefault
			if cmd.Flags().Changed("config") {
				load = config.Load
			}
			cfg, err := load(opts.configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, cfg, opts)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runAnalyze(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], cfg, opts.segments)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", config.FileName, "config file")
	cmd.Flags().StringVar(&opts.chartsPath, "charts", "", "chart workbook path (overrides report.charts_path)")
	cmd.Flags().BoolVar(&opts.noCharts, "no-charts", false, "skip rendering charts")
	cmd.Flags().StringVar(&opts.ranksCSV, "ranks-csv", "", "also write the rank table to this CSV file")
	cmd.Flags().BoolVar(&opts.segments, "segments", false, "print customers and statistics per segment")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", "", "log format: text or json")

	return cmd
}

// applyFlags overlays explicitly set flags on the loaded config.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts analyzeOptions) {
	flags := cmd.Flags()
	if flags.Changed("charts") {
		cfg.Report.ChartsPath = opts.chartsPath
	}
	if opts.noCharts {
		cfg.Report.ChartsPath = ""
	}
	if flags.Changed("ranks-csv") {
		cfg.Report.RanksCSVPath = opts.ranksCSV
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = opts.logFormat
	}
}

func runAnalyze(stdout, stderr io.Writer, path string, cfg *config.Config, segments bool) error {
	logger, err := logging.New(stderr, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}

	res, err := pipeline.Run(path, cfg, logger)
	if err != nil {
		logger.Error("analysis failed", "err", err)
		return err
	}

	if segments {
		if err := printSegments(stdout, res); err != nil {
			return err
		}
	}
	if err := report.PrintRanks(stdout, res.Ranks); err != nil {
		return fmt.Errorf("printing ranks: %w", err)
	}
	if err := report.PrintDistribution(stdout, res.Distribution); err != nil {
		return fmt.Errorf("printing distribution: %w", err)
	}

	if cfg.Report.ChartsPath != "" {
		if err := writeCharts(cfg.Report.ChartsPath, res); err != nil {
			return err
		}
		logger.Info("wrote charts", "path", cfg.Report.ChartsPath)
	}

	if cfg.Report.RanksCSVPath != "" {
		if err := writeRanks(cfg.Report.RanksCSVPath, res); err != nil {
			return err
		}
		logger.Info("wrote ranks", "path", cfg.Report.RanksCSVPath, "customers", len(res.Ranks))
	}

	return nil
}

func printSegments(w io.Writer, res *pipeline.Result) error {
	if err := report.PrintSegmentCustomers(w, res.Recency); err != nil {
		return err
	}
	if err := report.PrintSegmentStats(w, "Purchase count by segment", res.FrequencyStats); err != nil {
		return err
	}
	if err := report.PrintSegmentStats(w, "Days without purchase by segment", res.RecencyStats); err != nil {
		return err
	}
	return report.PrintSegmentStats(w, "Invoice total by segment", res.MonetaryStats)
}

func writeCharts(path string, res *pipeline.Result) error {
	charts, err := report.BuildCharts(report.Input{
		Frequency:      res.Frequency,
		FrequencyStats: res.FrequencyStats,
		RecencyStats:   res.RecencyStats,
		MonetaryStats:  res.MonetaryStats,
	})
	if err != nil {
		return fmt.Errorf("building charts: %w", err)
	}
	return report.WriteWorkbook(path, charts)
}

func writeRanks(path string, res *pipeline.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := report.WriteRanksCSV(f, res.Ranks); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
