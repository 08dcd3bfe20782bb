// Package segment splits customer metrics into quantile bins and fixed business tiers.
package segment

import (
	"errors"
	"math"
	"sort"
)

// ErrEmpty is returned when there is nothing to bin.
var ErrEmpty = errors.New("no values to segment")

// Quantile assigns each value to one of up to q equal-population bins.
//
// Bin edges sit at the linearly interpolated k/q quantiles. Duplicate edges are
// collapsed, so heavily tied data yields fewer than q bins. Bins are closed on the
// right and the lowest edge is included. Labels are 1-based, ordered by value and
// renumbered so that the labels in use are exactly 1..k.
func Quantile(values []float64, q int) ([]int, error) {
	if len(values) == 0 {
		return nil, ErrEmpty
	}
	if q < 1 {
		q = 1
	}

	edges := Edges(values, q)
	labels := make([]int, len(values))
	used := make(map[int]bool)
	for i, v := range values {
		labels[i] = bin(edges, v)
		used[labels[i]] = true
	}

	if len(used) == 0 || len(used) == len(edges)-1 {
		return labels, nil
	}

	// Some bins came out empty, close the gaps.
	occupied := make([]int, 0, len(used))
	for l := range used {
		occupied = append(occupied, l)
	}
	sort.Ints(occupied)
	dense := make(map[int]int, len(occupied))
	for i, l := range occupied {
		dense[l] = i + 1
	}
	for i := range labels {
		labels[i] = dense[labels[i]]
	}
	return labels, nil
}

// Edges returns the distinct k/q quantiles of values, k = 0..q, in ascending order.
func Edges(values []float64, q int) []float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	edges := make([]float64, 0, q+1)
	for k := 0; k <= q; k++ {
		e := linear(sorted, float64(k)/float64(q))
		if len(edges) > 0 && e <= edges[len(edges)-1] {
			continue
		}
		edges = append(edges, e)
	}
	return edges
}

// linear interpolates the p-quantile between the closest ranks of sorted.
func linear(sorted []float64, p float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// bin returns the 1-based index of the first edge at or above v.
// A single edge means every value is equal and there is one bin.
func bin(edges []float64, v float64) int {
	if len(edges) < 2 {
		return 1
	}
	i := sort.SearchFloat64s(edges[1:], v)
	if i >= len(edges)-1 {
		i = len(edges) - 2
	}
	return i + 1
}
