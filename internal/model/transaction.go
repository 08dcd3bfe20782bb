package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents one line item of the retail ledger.
type Transaction struct {
	InvoiceNo   string
	StockCode   string
	Description string
	Quantity    int
	InvoiceDate time.Time
	UnitPrice   decimal.Decimal
	CustomerID  string
	Country     string
	Sum         decimal.Decimal // Quantity * UnitPrice, set by the cleaner

	// Incomplete is set when any column present in the file was empty for this row.
	Incomplete bool
}

// LineTotal returns Quantity * UnitPrice.
func (t Transaction) LineTotal() decimal.Decimal {
	return t.UnitPrice.Mul(decimal.NewFromInt(int64(t.Quantity)))
}
