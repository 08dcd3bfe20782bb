package model

// RankRecord combines the recency (X), frequency (Y) and monetary (Z) tiers of a customer.
type RankRecord struct {
	CustomerID string
	X          int // 1..3
	Y          int // 1..2
	Z          int // 1..2
	Rank       int
}

// ComposeRank joins three tier digits into one number, e.g. (2,1,2) -> 212.
func ComposeRank(x, y, z int) int {
	return 100*x + 10*y + z
}

// RankShare is the share of customers holding a given rank.
type RankShare struct {
	Rank    int
	Count   int
	Percent float64 // rounded to one decimal place
}
