package segment

import (
	"fmt"

	"github.com/cleared-dev/rfm/internal/model"
)

// Frequency returns a copy of freq with PurchaseSegment set.
func Frequency(freq []model.CustomerFrequency, q int) ([]model.CustomerFrequency, error) {
	values := make([]float64, len(freq))
	for i, f := range freq {
		values[i] = float64(f.PurchaseCount)
	}
	labels, err := Quantile(values, q)
	if err != nil {
		return nil, fmt.Errorf("segmenting purchase counts: %w", err)
	}

	out := make([]model.CustomerFrequency, len(freq))
	for i, f := range freq {
		f.PurchaseSegment = labels[i]
		out[i] = f
	}
	return out, nil
}

// Recency returns a copy of rec with DaysSegment set.
func Recency(rec []model.CustomerRecency, q int) ([]model.CustomerRecency, error) {
	values := make([]float64, len(rec))
	for i, r := range rec {
		values[i] = float64(r.DaysWithoutPurchase)
	}
	labels, err := Quantile(values, q)
	if err != nil {
		return nil, fmt.Errorf("segmenting days without purchase: %w", err)
	}

	out := make([]model.CustomerRecency, len(rec))
	for i, r := range rec {
		r.DaysSegment = labels[i]
		out[i] = r
	}
	return out, nil
}

// Monetary returns a copy of invoices with SumPerPurchase set.
func Monetary(invoices []model.InvoiceTotal, q int) ([]model.InvoiceTotal, error) {
	values := make([]float64, len(invoices))
	for i, inv := range invoices {
		values[i] = inv.Sum.InexactFloat64()
	}
	labels, err := Quantile(values, q)
	if err != nil {
		return nil, fmt.Errorf("segmenting invoice totals: %w", err)
	}

	out := make([]model.InvoiceTotal, len(invoices))
	for i, inv := range invoices {
		inv.SumPerPurchase = labels[i]
		out[i] = inv
	}
	return out, nil
}

// Count returns the number of distinct labels, which is below q when bins collapsed.
func Count(labels []int) int {
	seen := make(map[int]bool)
	for _, l := range labels {
		seen[l] = true
	}
	return len(seen)
}
