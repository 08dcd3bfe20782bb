package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cleared-dev/rfm/internal/model"
)

// RanksHeader is the CSV header written by WriteRanksCSV.
const RanksHeader = "customer_id,x,y,z,rank"

// WriteRanksCSV writes the rank table, header included.
func WriteRanksCSV(w io.Writer, ranks []model.RankRecord) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(RanksHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range ranks {
		if err := cw.Write(marshalRank(r)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func marshalRank(r model.RankRecord) []string {
	return []string{
		r.CustomerID,
		strconv.Itoa(r.X),
		strconv.Itoa(r.Y),
		strconv.Itoa(r.Z),
		strconv.Itoa(r.Rank),
	}
}
