// Package rank combines the recency, frequency and monetary tiers into one score per customer.
package rank

import (
	"errors"
	"math"
	"sort"

	"github.com/cleared-dev/rfm/internal/config"
	"github.com/cleared-dev/rfm/internal/model"
	"github.com/cleared-dev/rfm/internal/segment"
)

// ErrNoCustomers is returned when the three tables share no customer.
var ErrNoCustomers = errors.New("no customer appears in all of recency, frequency and invoice totals")

// Build joins the three tables on CustomerID and scores each customer.
//
// A customer's Z tier comes from their first invoice in (CustomerID, InvoiceNo) order.
// Customers missing from any table are skipped. The result is sorted by CustomerID.
func Build(
	recency []model.CustomerRecency,
	frequency []model.CustomerFrequency,
	invoices []model.InvoiceTotal,
	t config.ThresholdsConfig,
) ([]model.RankRecord, error) {
	counts := make(map[string]int, len(frequency))
	for _, f := range frequency {
		counts[f.CustomerID] = f.PurchaseCount
	}

	sorted := append([]model.InvoiceTotal(nil), invoices...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CustomerID != sorted[j].CustomerID {
			return sorted[i].CustomerID < sorted[j].CustomerID
		}
		return sorted[i].InvoiceNo < sorted[j].InvoiceNo
	})
	first := make(map[string]model.InvoiceTotal, len(sorted))
	for _, inv := range sorted {
		if _, ok := first[inv.CustomerID]; !ok {
			first[inv.CustomerID] = inv
		}
	}

	var out []model.RankRecord
	for _, r := range recency {
		count, ok := counts[r.CustomerID]
		if !ok {
			continue
		}
		inv, ok := first[r.CustomerID]
		if !ok {
			continue
		}

		x := segment.RecencyTier(r.DaysWithoutPurchase, t)
		y := segment.FrequencyTier(count, t)
		z := segment.MonetaryTier(inv.Sum.InexactFloat64(), t)
		out = append(out, model.RankRecord{
			CustomerID: r.CustomerID,
			X:          x,
			Y:          y,
			Z:          z,
			Rank:       model.ComposeRank(x, y, z),
		})
	}
	if len(out) == 0 {
		return nil, ErrNoCustomers
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })
	return out, nil
}

// Distribution returns the share of customers per rank, sorted by rank.
// Percentages are rounded to one decimal place.
func Distribution(ranks []model.RankRecord) []model.RankShare {
	if len(ranks) == 0 {
		return nil
	}

	counts := make(map[int]int)
	for _, r := range ranks {
		counts[r.Rank]++
	}

	total := float64(len(ranks))
	out := make([]model.RankShare, 0, len(counts))
	for rank, n := range counts {
		out = append(out, model.RankShare{
			Rank:    rank,
			Count:   n,
			Percent: math.RoundToEven(float64(n)/total*1000) / 10,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out
}
