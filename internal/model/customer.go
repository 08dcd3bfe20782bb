package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerFrequency is the number of cleaned transactions for one customer.
type CustomerFrequency struct {
	CustomerID      string
	PurchaseCount   int
	PurchaseSegment int // 1-based decile, 0 until segmented
}

// CustomerRecency is how long a customer has gone without a purchase,
// measured against the last date in the dataset.
type CustomerRecency struct {
	CustomerID          string
	LastPurchaseDate    time.Time
	DaysWithoutPurchase int
	DaysSegment         int
}

// InvoiceTotal is the basket total of one invoice for one customer.
type InvoiceTotal struct {
	CustomerID     string
	InvoiceNo      string
	Sum            decimal.Decimal
	SumPerPurchase int // segment of Sum
}

// SegmentStats summarizes the values that fell into one segment.
type SegmentStats struct {
	Segment int
	Count   int
	Min     float64
	Max     float64
	Median  float64
	Mean    float64
}
