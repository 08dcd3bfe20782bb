package importer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const retailHeader = "InvoiceNo;StockCode;Description;Quantity;InvoiceDate;UnitPrice;CustomerID;Country\n"

func onlineRetail() *RetailParser {
	return NewRetailParser("online-retail", OnlineRetailDialect())
}

func TestRetailParser_Parse(t *testing.T) {
	txns, err := Open("../../testdata/online_retail.csv", onlineRetail())
	require.NoError(t, err)
	require.Len(t, txns, 15)

	first := txns[0]
	assert.Equal(t, "536365", first.InvoiceNo)
	assert.Equal(t, "85123A", first.StockCode)
	assert.Equal(t, "WHITE HANGING HEART T-LIGHT HOLDER", first.Description)
	assert.Equal(t, 6, first.Quantity)
	assert.Equal(t, "2.55", first.UnitPrice.StringFixed(2))
	assert.Equal(t, "17850", first.CustomerID)
	assert.Equal(t, "United Kingdom", first.Country)
	assert.False(t, first.Incomplete)
	assert.True(t, first.Sum.IsZero(), "Sum is derived by the cleaner")
}

func TestRetailParser_DayFirstDates(t *testing.T) {
	txns, err := Open("../../testdata/online_retail.csv", onlineRetail())
	require.NoError(t, err)

	// 09.12.2010 12:50 is the 9th of December, not the 12th of September.
	d := txns[6].InvoiceDate
	assert.Equal(t, 2010, d.Year())
	assert.Equal(t, 12, int(d.Month()))
	assert.Equal(t, 9, d.Day())
	assert.Equal(t, 12, d.Hour())
	assert.Equal(t, 50, d.Minute())
}

func TestRetailParser_DateLayouts(t *testing.T) {
	tests := []struct {
		value        string
		day, month   int
		hour, minute int
	}{
		{"01.12.2010 08:26", 1, 12, 8, 26},
		{"1.12.2010 8:26", 1, 12, 8, 26},
		{"13/01/2011 10:05", 13, 1, 10, 5},
		{"3/2/2011 9:07:30", 3, 2, 9, 7},
		{"05-06-2011 17:00", 5, 6, 17, 0},
		{"31.12.2010", 31, 12, 0, 0},
		{"2011-01-13 10:05:00", 13, 1, 10, 5},
	}
	p := onlineRetail()
	for _, tt := range tests {
		got, err := p.parseDate(tt.value)
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.day, got.Day(), tt.value)
		assert.Equal(t, tt.month, int(got.Month()), tt.value)
		assert.Equal(t, tt.hour, got.Hour(), tt.value)
		assert.Equal(t, tt.minute, got.Minute(), tt.value)
	}
}

func TestRetailParser_CommaDecimal(t *testing.T) {
	csv := retailHeader + "1;A;x;2;01.12.2010 08:26;1234,5;1;UK\n"
	txns, err := onlineRetail().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "1234.50", txns[0].UnitPrice.StringFixed(2))
}

func TestRetailParser_EmptyCellsMarkIncomplete(t *testing.T) {
	csv := retailHeader +
		"1;A;x;2;01.12.2010 08:26;1,5;;UK\n" +
		"2;A;;2;01.12.2010 08:26;1,5;7;UK\n" +
		"3;A;x;;01.12.2010 08:26;1,5;7;UK\n" +
		"4;A;x;2;;1,5;7;UK\n" +
		"5;A;x;2;01.12.2010 08:26;1,5;7;UK\n"
	txns, err := onlineRetail().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txns, 5)
	for i := 0; i < 4; i++ {
		assert.True(t, txns[i].Incomplete, "row %d should be incomplete", i)
	}
	assert.False(t, txns[4].Incomplete)
}

func TestRetailParser_BadDate(t *testing.T) {
	csv := retailHeader + "1;A;x;2;NOTADATE;1,5;7;UK\n"
	_, err := onlineRetail().Parse(strings.NewReader(csv))
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "InvoiceDate", pe.Field)
	assert.Equal(t, 2, pe.Row)
	assert.Contains(t, err.Error(), "parsing InvoiceDate")
}

func TestRetailParser_BadQuantity(t *testing.T) {
	csv := retailHeader + "1;A;x;two;01.12.2010 08:26;1,5;7;UK\n"
	_, err := onlineRetail().Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing Quantity")
}

func TestRetailParser_BadUnitPrice(t *testing.T) {
	tests := []string{"NOTANUMBER", "2.55"}
	for _, price := range tests {
		csv := retailHeader + "1;A;x;2;01.12.2010 08:26;" + price + ";7;UK\n"
		_, err := onlineRetail().Parse(strings.NewReader(csv))
		require.Error(t, err, price)
		assert.Contains(t, err.Error(), "parsing UnitPrice", price)
	}
}

func TestRetailParser_MissingColumn(t *testing.T) {
	csv := "InvoiceNo;Quantity;InvoiceDate;UnitPrice\n1;2;01.12.2010 08:26;1,5\n"
	_, err := onlineRetail().Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "customerid")
}

func TestRetailParser_HeaderCaseAndOrder(t *testing.T) {
	csv := "customerid;UnitPrice;quantity;INVOICEDATE;invoiceno\n42;0,99;3;02.01.2011 10:00;A1\n"
	txns, err := onlineRetail().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "42", txns[0].CustomerID)
	assert.Equal(t, "A1", txns[0].InvoiceNo)
	assert.Equal(t, 3, txns[0].Quantity)
	assert.False(t, txns[0].Incomplete, "absent optional columns do not make a row incomplete")
}

func TestRetailParser_EmptyFile(t *testing.T) {
	txns, err := onlineRetail().Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, txns)

	txns, err = onlineRetail().Parse(strings.NewReader(retailHeader))
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestRetailParser_WithDateLayouts(t *testing.T) {
	csv := retailHeader + "1;A;x;2;2010/12/01;1,5;7;UK\n"
	_, err := onlineRetail().Parse(strings.NewReader(csv))
	require.Error(t, err)

	txns, err := onlineRetail().WithDateLayouts([]string{"2006/01/02"}).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, txns[0].InvoiceDate.Day())
}

func TestCommaDialect(t *testing.T) {
	csv := "InvoiceNo,Quantity,InvoiceDate,UnitPrice,CustomerID\n1,2,01/12/2010 08:26,2.55,7\n"
	txns, err := DefaultRegistry().Get("csv").Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "2.55", txns[0].UnitPrice.StringFixed(2))
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("Online-Retail"))
	assert.NotNil(t, r.Get("CSV"))
	assert.Equal(t, []string{"csv", "online-retail"}, r.Formats())
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(onlineRetail())
	assert.Panics(t, func() { r.Register(onlineRetail()) })
}

func TestOpen_NotFound(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.csv"), onlineRetail())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
