// Package pipeline runs the segmentation stages in order: load, clean, aggregate,
// segment and rank. Each stage produces a new table; none is modified after it is built.
package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/cleared-dev/rfm/internal/aggregate"
	"github.com/cleared-dev/rfm/internal/clean"
	"github.com/cleared-dev/rfm/internal/config"
	"github.com/cleared-dev/rfm/internal/importer"
	"github.com/cleared-dev/rfm/internal/model"
	"github.com/cleared-dev/rfm/internal/rank"
	"github.com/cleared-dev/rfm/internal/segment"
)

var (
	// ErrNoTransactions means no row survived cleaning.
	ErrNoTransactions = errors.New("no valid transactions after cleaning")
	// ErrNoRepeatCustomers means no customer has enough transactions to be segmented.
	ErrNoRepeatCustomers = errors.New("no customer has the minimum number of transactions")
)

// Result holds every intermediate table of a run.
type Result struct {
	Raw      []model.Transaction
	Cleaning clean.Result
	// Removed lists customers dropped for having too few transactions.
	Removed      []string
	Transactions []model.Transaction

	Frequency []model.CustomerFrequency
	Recency   []model.CustomerRecency
	Invoices  []model.InvoiceTotal

	FrequencyStats []model.SegmentStats
	RecencyStats   []model.SegmentStats
	MonetaryStats  []model.SegmentStats

	Ranks        []model.RankRecord
	Distribution []model.RankShare
}

// Run executes the pipeline on the ledger at path. Any stage failure aborts the run.
func Run(path string, cfg *config.Config, logger *log.Logger) (*Result, error) {
	parser, err := selectParser(importer.DefaultRegistry(), cfg.Input)
	if err != nil {
		return nil, err
	}

	raw, err := importer.Open(path, parser)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded ledger", "path", path, "format", parser.Format(), "rows", len(raw))

	return Analyze(raw, cfg, logger)
}

// Analyze runs every stage after loading.
func Analyze(raw []model.Transaction, cfg *config.Config, logger *log.Logger) (*Result, error) {
	res := &Result{Raw: raw}

	res.Cleaning = clean.Clean(raw, clean.Options{
		MaxQuantity:      cfg.Cleaning.MaxQuantity,
		ExcludeCancelled: cfg.Cleaning.ExcludeCancelled,
		CancelPrefix:     cfg.Cleaning.CancelPrefix,
	})
	logger.Debug("dropped rows", "reason", "quantity", "rows", res.Cleaning.InvalidQuantity)
	logger.Debug("dropped rows", "reason", "unit price", "rows", res.Cleaning.InvalidPrice)
	logger.Debug("dropped rows", "reason", "incomplete", "rows", res.Cleaning.Incomplete)
	logger.Info("cancelled invoices",
		"rows", res.Cleaning.Cancelled,
		"cancel_prefix", cfg.Cleaning.CancelPrefix,
		"excluded", res.Cleaning.CancelledDropped)
	if len(res.Cleaning.Rows) == 0 {
		return nil, ErrNoTransactions
	}

	res.Transactions, res.Removed = clean.RetainRepeatCustomers(res.Cleaning.Rows, cfg.Cleaning.MinTransactions)
	logger.Info("cleaned ledger",
		"rows", len(res.Transactions),
		"dropped", res.Cleaning.Dropped(),
		"customers_removed", len(res.Removed))
	if len(res.Transactions) == 0 {
		return nil, fmt.Errorf("%w: minimum is %d", ErrNoRepeatCustomers, cfg.Cleaning.MinTransactions)
	}
	if err := clean.JoinErrors(clean.ValidateRows(res.Transactions, cfg.Cleaning.MaxQuantity)); err != nil {
		return nil, err
	}

	q := cfg.Segmentation.Quantiles
	var err error
	if res.Frequency, err = segment.Frequency(aggregate.Frequency(res.Transactions), q); err != nil {
		return nil, err
	}
	if res.Recency, err = segment.Recency(aggregate.Recency(res.Transactions), q); err != nil {
		return nil, err
	}
	if res.Invoices, err = segment.Monetary(aggregate.Monetary(res.Transactions), q); err != nil {
		return nil, err
	}
	logger.Info("aggregated",
		"customers", len(res.Frequency),
		"invoices", len(res.Invoices),
		"horizon", aggregate.Horizon(res.Transactions).Format("2006-01-02 15:04"))

	if res.FrequencyStats, err = segment.Stats(segment.FrequencyValues(res.Frequency)); err != nil {
		return nil, fmt.Errorf("frequency stats: %w", err)
	}
	if res.RecencyStats, err = segment.Stats(segment.RecencyValues(res.Recency)); err != nil {
		return nil, fmt.Errorf("recency stats: %w", err)
	}
	if res.MonetaryStats, err = segment.Stats(segment.MonetaryValues(res.Invoices)); err != nil {
		return nil, fmt.Errorf("monetary stats: %w", err)
	}
	warnCollapsed(logger, "purchase count", len(res.FrequencyStats), q)
	warnCollapsed(logger, "days without purchase", len(res.RecencyStats), q)
	warnCollapsed(logger, "invoice total", len(res.MonetaryStats), q)

	if res.Ranks, err = rank.Build(res.Recency, res.Frequency, res.Invoices, cfg.Thresholds); err != nil {
		return nil, err
	}
	res.Distribution = rank.Distribution(res.Ranks)
	logger.Info("ranked customers", "customers", len(res.Ranks), "ranks", len(res.Distribution))

	return res, nil
}

func warnCollapsed(logger *log.Logger, metric string, segments, q int) {
	if segments < q {
		logger.Warn("quantile bins collapsed", "metric", metric, "segments", segments, "requested", q)
	}
}

func selectParser(reg *importer.Registry, in config.InputConfig) (importer.Parser, error) {
	p := reg.Get(in.Format)
	if p == nil {
		return nil, fmt.Errorf("unknown input format %q (available: %s)", in.Format, strings.Join(reg.Formats(), ", "))
	}
	if rp, ok := p.(*importer.RetailParser); ok && len(in.DateLayouts) > 0 {
		return rp.WithDateLayouts(in.DateLayouts), nil
	}
	return p, nil
}
