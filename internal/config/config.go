package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the conventional name of the configuration file.
const FileName = "rfm.yaml"

// Config represents the top-level rfm.yaml configuration.
type Config struct {
	Input        InputConfig        `yaml:"input"`
	Cleaning     CleaningConfig     `yaml:"cleaning"`
	Segmentation SegmentationConfig `yaml:"segmentation"`
	Thresholds   ThresholdsConfig   `yaml:"thresholds"`
	Report       ReportConfig       `yaml:"report"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// InputConfig selects the ledger dialect.
type InputConfig struct {
	Format      string   `yaml:"format"`                 // registered parser name
	DateLayouts []string `yaml:"date_layouts,omitempty"` // overrides the parser's day-first layouts
}

// CleaningConfig controls which rows survive cleaning.
type CleaningConfig struct {
	MaxQuantity      int    `yaml:"max_quantity"`      // exclusive upper bound
	MinTransactions  int    `yaml:"min_transactions"`  // per customer
	ExcludeCancelled bool   `yaml:"exclude_cancelled"` // drop invoices starting with CancelPrefix
	CancelPrefix     string `yaml:"cancel_prefix"`
}

// SegmentationConfig controls quantile binning.
type SegmentationConfig struct {
	Quantiles int `yaml:"quantiles"`
}

// ThresholdsConfig holds the business cut-offs for the rank tiers.
// They are tuned to one dataset and are not derived from the data.
type ThresholdsConfig struct {
	RecencyDaysActive  int     `yaml:"recency_days_active"`  // X=1 at or below
	RecencyDaysLapsing int     `yaml:"recency_days_lapsing"` // X=2 at or below, X=3 above
	FrequencyPurchases int     `yaml:"frequency_purchases"`  // Y=1 above
	MonetaryValue      float64 `yaml:"monetary_value"`       // Z=1 above
}

// ReportConfig controls output artifacts.
type ReportConfig struct {
	ChartsPath   string `yaml:"charts_path"` // empty disables chart rendering
	RanksCSVPath string `yaml:"ranks_csv_path,omitempty"`
}

// LoggingConfig controls the logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Load reads an rfm.yaml file from disk. Fields absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path, or returns Default() if the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the configuration matching the Online Retail dataset.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Format: "online-retail",
		},
		Cleaning: CleaningConfig{
			MaxQuantity:      10000,
			MinTransactions:  2,
			ExcludeCancelled: true,
			CancelPrefix:     "C",
		},
		Segmentation: SegmentationConfig{
			Quantiles: 10,
		},
		Thresholds: ThresholdsConfig{
			RecencyDaysActive:  21,
			RecencyDaysLapsing: 105,
			FrequencyPurchases: 93,
			MonetaryValue:      418,
		},
		Report: ReportConfig{
			ChartsPath: "rfm-charts.xlsx",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var problems []string

	if c.Input.Format == "" {
		problems = append(problems, "input.format must not be empty")
	}
	if c.Cleaning.MaxQuantity < 2 {
		problems = append(problems, fmt.Sprintf("cleaning.max_quantity must be at least 2, got %d", c.Cleaning.MaxQuantity))
	}
	if c.Cleaning.MinTransactions < 1 {
		problems = append(problems, fmt.Sprintf("cleaning.min_transactions must be positive, got %d", c.Cleaning.MinTransactions))
	}
	if c.Cleaning.ExcludeCancelled && c.Cleaning.CancelPrefix == "" {
		problems = append(problems, "cleaning.cancel_prefix must be set when exclude_cancelled is true")
	}
	if c.Segmentation.Quantiles < 1 {
		problems = append(problems, fmt.Sprintf("segmentation.quantiles must be positive, got %d", c.Segmentation.Quantiles))
	}
	if c.Thresholds.RecencyDaysActive > c.Thresholds.RecencyDaysLapsing {
		problems = append(problems, fmt.Sprintf("thresholds.recency_days_active (%d) exceeds recency_days_lapsing (%d)",
			c.Thresholds.RecencyDaysActive, c.Thresholds.RecencyDaysLapsing))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid logging.level %q, must be one of: debug, info, warn, error", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid logging.format %q, must be one of: text, json", c.Logging.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
