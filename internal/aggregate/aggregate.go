// Package aggregate groups cleaned transactions into per-customer and per-invoice tables.
package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/rfm/internal/model"
)

// Frequency counts transactions per customer, sorted by CustomerID.
func Frequency(rows []model.Transaction) []model.CustomerFrequency {
	counts := make(map[string]int)
	for _, row := range rows {
		counts[row.CustomerID]++
	}

	out := make([]model.CustomerFrequency, 0, len(counts))
	for id, n := range counts {
		out = append(out, model.CustomerFrequency{CustomerID: id, PurchaseCount: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })
	return out
}

// Horizon returns the latest InvoiceDate in rows, or the zero time for no rows.
func Horizon(rows []model.Transaction) time.Time {
	var max time.Time
	for _, row := range rows {
		if row.InvoiceDate.After(max) {
			max = row.InvoiceDate
		}
	}
	return max
}

// Recency finds each customer's last purchase and the whole days between it and the
// dataset horizon. Sorted by CustomerID.
func Recency(rows []model.Transaction) []model.CustomerRecency {
	horizon := Horizon(rows)

	last := make(map[string]time.Time)
	for _, row := range rows {
		if cur, ok := last[row.CustomerID]; !ok || row.InvoiceDate.After(cur) {
			last[row.CustomerID] = row.InvoiceDate
		}
	}

	out := make([]model.CustomerRecency, 0, len(last))
	for id, date := range last {
		out = append(out, model.CustomerRecency{
			CustomerID:          id,
			LastPurchaseDate:    date,
			DaysWithoutPurchase: wholeDays(horizon.Sub(date)),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })
	return out
}

func wholeDays(d time.Duration) int {
	return int(d / (24 * time.Hour))
}

type invoiceKey struct {
	customer string
	invoice  string
}

// Monetary sums line totals per (CustomerID, InvoiceNo), sorted by both.
func Monetary(rows []model.Transaction) []model.InvoiceTotal {
	sums := make(map[invoiceKey]decimal.Decimal)
	for _, row := range rows {
		k := invoiceKey{row.CustomerID, row.InvoiceNo}
		sums[k] = sums[k].Add(row.Sum)
	}

	out := make([]model.InvoiceTotal, 0, len(sums))
	for k, sum := range sums {
		out = append(out, model.InvoiceTotal{CustomerID: k.customer, InvoiceNo: k.invoice, Sum: sum})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CustomerID != out[j].CustomerID {
			return out[i].CustomerID < out[j].CustomerID
		}
		return out[i].InvoiceNo < out[j].InvoiceNo
	})
	return out
}
