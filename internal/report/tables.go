package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cleared-dev/rfm/internal/model"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
)

// newTable builds a bordered table whose columns listed in numeric are right aligned.
func newTable(headers []string, numeric ...int) *table.Table {
	right := make(map[int]bool, len(numeric))
	for _, c := range numeric {
		right[c] = true
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#333"))).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case right[col]:
				return numberStyle
			default:
				return cellStyle
			}
		})
}

func render(w io.Writer, title string, t *table.Table) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", titleStyle.Render(title), t.Render())
	return err
}

// PrintRanks prints the CustomerID to Rank table.
func PrintRanks(w io.Writer, ranks []model.RankRecord) error {
	t := newTable([]string{"CustomerID", "Rank"}, 1)
	for _, r := range ranks {
		t.Row(r.CustomerID, strconv.Itoa(r.Rank))
	}
	return render(w, "Customer ranks", t)
}

// PrintDistribution prints the share of customers holding each rank.
func PrintDistribution(w io.Writer, shares []model.RankShare) error {
	t := newTable([]string{"Rank", "Customers", "Percent"}, 1, 2)
	for _, s := range shares {
		t.Row(strconv.Itoa(s.Rank), strconv.Itoa(s.Count), fmt.Sprintf("%.1f%%", s.Percent))
	}
	return render(w, "Rank distribution", t)
}

// PrintSegmentCustomers lists the customers in each days-without-purchase segment.
func PrintSegmentCustomers(w io.Writer, recency []model.CustomerRecency) error {
	bySegment := make(map[int][]string)
	var segments []int
	for _, r := range recency {
		if _, ok := bySegment[r.DaysSegment]; !ok {
			segments = append(segments, r.DaysSegment)
		}
		bySegment[r.DaysSegment] = append(bySegment[r.DaysSegment], r.CustomerID)
	}
	sort.Ints(segments)

	t := newTable([]string{"Segment", "Customers", "CustomerIDs"}, 0, 1)
	for _, seg := range segments {
		ids := bySegment[seg]
		t.Row(strconv.Itoa(seg), strconv.Itoa(len(ids)), strings.Join(ids, " "))
	}
	return render(w, "Customers by days without purchase", t)
}

// PrintSegmentStats prints count, bounds, median and mean per segment.
func PrintSegmentStats(w io.Writer, title string, stats []model.SegmentStats) error {
	t := newTable([]string{"Segment", "Count", "Min", "Max", "Median", "Mean"}, 0, 1, 2, 3, 4, 5)
	for _, s := range stats {
		t.Row(
			strconv.Itoa(s.Segment),
			strconv.Itoa(s.Count),
			formatValue(s.Min),
			formatValue(s.Max),
			formatValue(s.Median),
			formatValue(s.Mean),
		)
	}
	return render(w, title, t)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
