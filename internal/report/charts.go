// Package report renders segmentation results as charts and terminal tables.
package report

import (
	"fmt"
	"math"

	"github.com/cleared-dev/rfm/internal/model"
	"github.com/cleared-dev/rfm/internal/segment"
)

// Series is one named run of values, aligned with Chart.Segments.
type Series struct {
	Name   string
	Values []float64
}

// Chart is a bar chart over segments with optional line overlays.
type Chart struct {
	Sheet    string
	Title    string
	XTitle   string
	YTitle   string
	Segments []int
	Bars     Series
	Lines    []Series
}

// Input holds the per-segment summaries the charts are drawn from. Frequency is the
// segmented customer table, used for the customer-level reference lines.
type Input struct {
	Frequency      []model.CustomerFrequency
	FrequencyStats []model.SegmentStats
	RecencyStats   []model.SegmentStats
	MonetaryStats  []model.SegmentStats
}

// BuildCharts lays out the six distribution charts: maximum value and population
// per segment for each of frequency, recency and invoice totals.
func BuildCharts(in Input) ([]Chart, error) {
	if len(in.Frequency) == 0 || len(in.FrequencyStats) == 0 {
		return nil, fmt.Errorf("frequency charts: %w", segment.ErrEmpty)
	}
	if len(in.RecencyStats) == 0 {
		return nil, fmt.Errorf("recency charts: %w", segment.ErrEmpty)
	}
	if len(in.MonetaryStats) == 0 {
		return nil, fmt.Errorf("monetary charts: %w", segment.ErrEmpty)
	}
	freqValues, _ := segment.FrequencyValues(in.Frequency)

	return []Chart{
		frequencyMax(in.FrequencyStats, segment.Summarize(freqValues)),
		counts(in.FrequencyStats, "FrequencyCounts",
			"The number of buyers in each segment",
			"Segments (in order of increasing number of purchases)",
			"Number of buyers"),
		recencyMax(in.RecencyStats),
		counts(in.RecencyStats, "RecencyCounts",
			"Distribution of customers by days without purchase",
			"Segments by day",
			"Number of customers"),
		monetaryMax(in.MonetaryStats),
		counts(in.MonetaryStats, "MonetaryCounts",
			"The number of invoices in each segment",
			"Segments (in ascending order of amount)",
			"Number of invoices"),
	}, nil
}

func segmentsOf(stats []model.SegmentStats) []int {
	out := make([]int, len(stats))
	for i, s := range stats {
		out[i] = s.Segment
	}
	return out
}

func column(stats []model.SegmentStats, f func(model.SegmentStats) float64) []float64 {
	out := make([]float64, len(stats))
	for i, s := range stats {
		out[i] = f(s)
	}
	return out
}

func constant(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func maxOf(s model.SegmentStats) float64    { return s.Max }
func countOf(s model.SegmentStats) float64  { return float64(s.Count) }
func medianOf(s model.SegmentStats) float64 { return s.Median }
func meanOf(s model.SegmentStats) float64   { return s.Mean }

// frequencyMax draws reference lines at the median and mean purchase count over all customers.
func frequencyMax(stats []model.SegmentStats, customers model.SegmentStats) Chart {
	n := len(stats)
	return Chart{
		Sheet:    "FrequencyMax",
		Title:    "Distribution of the number of purchases per customer by segment",
		XTitle:   "Segments (in order of increasing number of purchases)",
		YTitle:   "Maximum number of purchases",
		Segments: segmentsOf(stats),
		Bars:     Series{Name: "Maximum purchases", Values: column(stats, maxOf)},
		Lines: []Series{
			{Name: fmt.Sprintf("Median: %d", int(customers.Median)), Values: constant(customers.Median, n)},
			{Name: fmt.Sprintf("Mean: %d", int(customers.Mean)), Values: constant(customers.Mean, n)},
		},
	}
}

// recencyMax draws reference lines at the median and mean of the per-segment maxima.
func recencyMax(stats []model.SegmentStats) Chart {
	maxima := column(stats, maxOf)
	s := segment.Summarize(maxima)
	n := len(stats)
	return Chart{
		Sheet:    "RecencyMax",
		Title:    "Distribution of the number of days without a purchase by segments",
		XTitle:   "Segments (in ascending order of the number of days)",
		YTitle:   "Maximum number of days without purchase",
		Segments: segmentsOf(stats),
		Bars:     Series{Name: "Maximum days", Values: maxima},
		Lines: []Series{
			{Name: fmt.Sprintf("Median: %.1f", s.Median), Values: constant(s.Median, n)},
			{Name: fmt.Sprintf("Mean: %.1f", s.Mean), Values: constant(s.Mean, n)},
		},
	}
}

// monetaryMax overlays the per-segment median and mean as lines across segments.
func monetaryMax(stats []model.SegmentStats) Chart {
	medians := column(stats, medianOf)
	means := column(stats, meanOf)
	return Chart{
		Sheet:    "MonetaryMax",
		Title:    "Distribution of the median and average purchase amounts by segment",
		XTitle:   "Segments (in ascending order of amount)",
		YTitle:   "The value of the amount of purchases",
		Segments: segmentsOf(stats),
		Bars:     Series{Name: "Maximum amount", Values: column(stats, maxOf)},
		Lines: []Series{
			{Name: fmt.Sprintf("Median: %.0f", math.RoundToEven(segment.Summarize(medians).Mean)), Values: medians},
			{Name: fmt.Sprintf("Mean: %.0f", math.RoundToEven(segment.Summarize(means).Mean)), Values: means},
		},
	}
}

func counts(stats []model.SegmentStats, sheet, title, xTitle, yTitle string) Chart {
	return Chart{
		Sheet:    sheet,
		Title:    title,
		XTitle:   xTitle,
		YTitle:   yTitle,
		Segments: segmentsOf(stats),
		Bars:     Series{Name: yTitle, Values: column(stats, countOf)},
	}
}
