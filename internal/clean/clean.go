package clean

import (
	"sort"
	"strings"

	"github.com/cleared-dev/rfm/internal/model"
)

// Options controls which rows survive cleaning.
type Options struct {
	MaxQuantity      int  // exclusive
	ExcludeCancelled bool // drop invoices starting with CancelPrefix
	CancelPrefix     string
}

// Result is the cleaned table plus what was dropped on the way.
type Result struct {
	Rows []model.Transaction

	InvalidQuantity int
	InvalidPrice    int
	Incomplete      int
	// Cancelled counts rows with a cancellation invoice among the rows that passed the
	// other filters. They are removed only when Options.ExcludeCancelled is set.
	Cancelled        int
	CancelledDropped bool
}

// Dropped is the number of input rows not present in Rows.
func (r Result) Dropped() int {
	n := r.InvalidQuantity + r.InvalidPrice + r.Incomplete
	if r.CancelledDropped {
		n += r.Cancelled
	}
	return n
}

// Clean keeps rows with 0 < Quantity < MaxQuantity, UnitPrice > 0 and no empty field,
// and sets Sum on each. The input slice is not modified.
func Clean(rows []model.Transaction, opts Options) Result {
	var res Result
	kept := make([]model.Transaction, 0, len(rows))

	for _, row := range rows {
		switch {
		case row.Quantity <= 0 || row.Quantity >= opts.MaxQuantity:
			res.InvalidQuantity++
			continue
		case !row.UnitPrice.IsPositive():
			res.InvalidPrice++
			continue
		case row.Incomplete:
			res.Incomplete++
			continue
		}
		row.Sum = row.LineTotal()
		kept = append(kept, row)
	}

	if opts.CancelPrefix != "" {
		valid := ExcludeCancelled(kept, opts.CancelPrefix)
		res.Cancelled = len(kept) - len(valid)
		if opts.ExcludeCancelled {
			kept = valid
			res.CancelledDropped = true
		}
	}

	res.Rows = kept
	return res
}

// ExcludeCancelled returns the rows whose InvoiceNo does not start with prefix.
func ExcludeCancelled(rows []model.Transaction, prefix string) []model.Transaction {
	out := make([]model.Transaction, 0, len(rows))
	for _, row := range rows {
		if strings.HasPrefix(row.InvoiceNo, prefix) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// RetainRepeatCustomers drops every row of customers with fewer than minTransactions rows.
// It returns the kept rows and the IDs of the removed customers, sorted.
func RetainRepeatCustomers(rows []model.Transaction, minTransactions int) ([]model.Transaction, []string) {
	counts := make(map[string]int)
	for _, row := range rows {
		counts[row.CustomerID]++
	}

	var removed []string
	for id, n := range counts {
		if n < minTransactions {
			removed = append(removed, id)
		}
	}
	sort.Strings(removed)

	kept := make([]model.Transaction, 0, len(rows))
	for _, row := range rows {
		if counts[row.CustomerID] >= minTransactions {
			kept = append(kept, row)
		}
	}
	return kept, removed
}
