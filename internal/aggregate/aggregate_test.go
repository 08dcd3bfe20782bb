package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/rfm/internal/model"
)

func line(customer, invoice, date, sum string) model.Transaction {
	d, err := time.Parse("2006-01-02 15:04", date)
	if err != nil {
		panic(err)
	}
	return model.Transaction{
		CustomerID:  customer,
		InvoiceNo:   invoice,
		InvoiceDate: d,
		Sum:         decimal.RequireFromString(sum),
	}
}

func fixture() []model.Transaction {
	return []model.Transaction{
		line("17850", "536366", "2010-12-01 08:28", "11.10"),
		line("17850", "536365", "2010-12-01 08:26", "15.30"),
		line("13047", "536368", "2010-12-09 12:50", "54.08"),
		line("17850", "536365", "2010-12-01 08:26", "20.34"),
		line("13047", "536367", "2010-12-02 09:00", "750.00"),
		line("13047", "536368", "2010-12-09 12:50", "12.60"),
	}
}

func TestFrequency(t *testing.T) {
	got := Frequency(fixture())
	assert.Equal(t, []model.CustomerFrequency{
		{CustomerID: "13047", PurchaseCount: 3},
		{CustomerID: "17850", PurchaseCount: 3},
	}, got)
}

func TestFrequency_Empty(t *testing.T) {
	assert.Empty(t, Frequency(nil))
}

func TestRecency(t *testing.T) {
	got := Recency(fixture())
	require.Len(t, got, 2)

	assert.Equal(t, "13047", got[0].CustomerID)
	assert.Equal(t, 0, got[0].DaysWithoutPurchase)
	assert.Equal(t, time.Date(2010, 12, 9, 12, 50, 0, 0, time.UTC), got[0].LastPurchaseDate)

	// 8 days 4h22m before the horizon counts as 8 whole days.
	assert.Equal(t, "17850", got[1].CustomerID)
	assert.Equal(t, 8, got[1].DaysWithoutPurchase)
	assert.Equal(t, time.Date(2010, 12, 1, 8, 28, 0, 0, time.UTC), got[1].LastPurchaseDate)
}

func TestRecency_HorizonIsDatasetNotClock(t *testing.T) {
	rows := []model.Transaction{
		line("a", "1", "2001-01-01 00:00", "1"),
		line("b", "2", "2001-01-31 23:59", "1"),
	}
	got := Recency(rows)
	require.Len(t, got, 2)
	assert.Equal(t, 30, got[0].DaysWithoutPurchase)
	assert.Equal(t, 0, got[1].DaysWithoutPurchase)
}

func TestHorizon(t *testing.T) {
	assert.True(t, Horizon(nil).IsZero())
	assert.Equal(t, time.Date(2010, 12, 9, 12, 50, 0, 0, time.UTC), Horizon(fixture()))
}

func TestMonetary(t *testing.T) {
	got := Monetary(fixture())
	require.Len(t, got, 4)

	want := []struct {
		customer, invoice, sum string
	}{
		{"13047", "536367", "750.00"},
		{"13047", "536368", "66.68"},
		{"17850", "536365", "35.64"},
		{"17850", "536366", "11.10"},
	}
	for i, w := range want {
		assert.Equal(t, w.customer, got[i].CustomerID)
		assert.Equal(t, w.invoice, got[i].InvoiceNo)
		assert.Equal(t, w.sum, got[i].Sum.StringFixed(2), "invoice %s", w.invoice)
		assert.Zero(t, got[i].SumPerPurchase)
	}
}
