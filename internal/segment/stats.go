package segment

import (
	"fmt"
	"sort"

	"github.com/aclements/go-moremath/stats"

	"github.com/cleared-dev/rfm/internal/model"
)

// Stats groups values by their segment label and summarizes each group.
// The result is ordered by segment.
func Stats(values []float64, labels []int) ([]model.SegmentStats, error) {
	if len(values) != len(labels) {
		return nil, fmt.Errorf("stats: %d values but %d labels", len(values), len(labels))
	}
	if len(values) == 0 {
		return nil, ErrEmpty
	}

	groups := make(map[int][]float64)
	for i, v := range values {
		groups[labels[i]] = append(groups[labels[i]], v)
	}

	out := make([]model.SegmentStats, 0, len(groups))
	for seg, xs := range groups {
		s := Summarize(xs)
		s.Segment = seg
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Segment < out[j].Segment })
	return out, nil
}

// Summarize computes count, bounds, median and mean of xs, which must be non-empty.
func Summarize(xs []float64) model.SegmentStats {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	sample := stats.Sample{Xs: sorted, Sorted: true}

	min, max := sample.Bounds()
	return model.SegmentStats{
		Count:  len(xs),
		Min:    min,
		Max:    max,
		Median: sample.Quantile(0.5),
		Mean:   sample.Mean(),
	}
}

// FrequencyValues returns purchase counts and their segments in parallel slices.
func FrequencyValues(freq []model.CustomerFrequency) ([]float64, []int) {
	values := make([]float64, len(freq))
	labels := make([]int, len(freq))
	for i, f := range freq {
		values[i] = float64(f.PurchaseCount)
		labels[i] = f.PurchaseSegment
	}
	return values, labels
}

// RecencyValues returns days without purchase and their segments in parallel slices.
func RecencyValues(rec []model.CustomerRecency) ([]float64, []int) {
	values := make([]float64, len(rec))
	labels := make([]int, len(rec))
	for i, r := range rec {
		values[i] = float64(r.DaysWithoutPurchase)
		labels[i] = r.DaysSegment
	}
	return values, labels
}

// MonetaryValues returns invoice totals and their segments in parallel slices.
func MonetaryValues(invoices []model.InvoiceTotal) ([]float64, []int) {
	values := make([]float64, len(invoices))
	labels := make([]int, len(invoices))
	for i, inv := range invoices {
		values[i] = inv.Sum.InexactFloat64()
		labels[i] = inv.SumPerPurchase
	}
	return values, labels
}
