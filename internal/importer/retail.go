package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/rfm/internal/model"
)

// Dialect describes how a ledger file is delimited and how its values are written.
type Dialect struct {
	Comma            rune
	DecimalSeparator rune
	DateLayouts      []string // tried in order
}

// dayFirstLayouts covers the day-first timestamps seen in retail exports.
// Single-digit day/month/hour layouts also accept two digits.
var dayFirstLayouts = []string{
	"2.1.2006 15:04",
	"2.1.2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006 15:04:05",
	"2-1-2006 15:04",
	"2-1-2006 15:04:05",
	"2.1.2006",
	"2/1/2006",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// OnlineRetailDialect is the semicolon-delimited, comma-decimal export.
func OnlineRetailDialect() Dialect {
	return Dialect{Comma: ';', DecimalSeparator: ',', DateLayouts: dayFirstLayouts}
}

// CommaDialect is a plain comma-delimited, dot-decimal export with day-first dates.
func CommaDialect() Dialect {
	return Dialect{Comma: ',', DecimalSeparator: '.', DateLayouts: dayFirstLayouts}
}

// Column names, matched case-insensitively.
const (
	colInvoiceNo   = "invoiceno"
	colStockCode   = "stockcode"
	colDescription = "description"
	colQuantity    = "quantity"
	colInvoiceDate = "invoicedate"
	colUnitPrice   = "unitprice"
	colCustomerID  = "customerid"
	colCountry     = "country"
)

var requiredColumns = []string{colInvoiceNo, colCustomerID, colInvoiceDate, colQuantity, colUnitPrice}

var optionalColumns = []string{colStockCode, colDescription, colCountry}

var errNoLayout = errors.New("no day-first layout matches")

// RetailParser parses line-item retail ledgers.
type RetailParser struct {
	name    string
	dialect Dialect
}

// NewRetailParser returns a parser registered under name.
func NewRetailParser(name string, d Dialect) *RetailParser {
	return &RetailParser{name: name, dialect: d}
}

// Format returns the parser name.
func (p *RetailParser) Format() string { return p.name }

// WithDateLayouts returns a copy of p that tries layouts instead of the dialect defaults.
func (p *RetailParser) WithDateLayouts(layouts []string) *RetailParser {
	d := p.dialect
	d.DateLayouts = append([]string(nil), layouts...)
	return &RetailParser{name: p.name, dialect: d}
}

// Parse reads the ledger. Empty cells mark the row Incomplete; the cleaner drops such rows.
// A non-empty value that does not parse fails the whole load with a *ParseError.
func (p *RetailParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.Comma = p.dialect.Comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var txns []model.Transaction
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading ledger: %w", err)
		}
		row, _ := cr.FieldPos(0)
		if isBlank(rec) {
			continue
		}
		txn, err := p.parseRow(rec, cols, row)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func indexColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}

	var missing []string
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return cols, nil
}

func (p *RetailParser) parseRow(rec []string, cols map[string]int, row int) (model.Transaction, error) {
	var txn model.Transaction

	cell := func(name string) (string, bool) {
		i, ok := cols[name]
		if !ok {
			return "", false
		}
		v := ""
		if i < len(rec) {
			v = strings.TrimSpace(rec[i])
		}
		if v == "" {
			txn.Incomplete = true
		}
		return v, true
	}

	txn.InvoiceNo, _ = cell(colInvoiceNo)
	txn.CustomerID, _ = cell(colCustomerID)
	for _, c := range optionalColumns {
		v, ok := cell(c)
		if !ok {
			continue
		}
		switch c {
		case colStockCode:
			txn.StockCode = v
		case colDescription:
			txn.Description = v
		case colCountry:
			txn.Country = v
		}
	}

	if v, _ := cell(colInvoiceDate); v != "" {
		date, err := p.parseDate(v)
		if err != nil {
			return model.Transaction{}, &ParseError{Row: row, Field: "InvoiceDate", Value: v, Err: err}
		}
		txn.InvoiceDate = date
	}

	if v, _ := cell(colQuantity); v != "" {
		qty, err := strconv.Atoi(v)
		if err != nil {
			return model.Transaction{}, &ParseError{Row: row, Field: "Quantity", Value: v, Err: err}
		}
		txn.Quantity = qty
	}

	if v, _ := cell(colUnitPrice); v != "" {
		price, err := p.parseDecimal(v)
		if err != nil {
			return model.Transaction{}, &ParseError{Row: row, Field: "UnitPrice", Value: v, Err: err}
		}
		txn.UnitPrice = price
	}

	return txn, nil
}

func (p *RetailParser) parseDate(v string) (time.Time, error) {
	for _, layout := range p.dialect.DateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errNoLayout
}

func (p *RetailParser) parseDecimal(v string) (decimal.Decimal, error) {
	if p.dialect.DecimalSeparator != '.' {
		if strings.ContainsRune(v, '.') {
			return decimal.Decimal{}, fmt.Errorf("unexpected '.' with decimal separator %q", p.dialect.DecimalSeparator)
		}
		v = strings.ReplaceAll(v, string(p.dialect.DecimalSeparator), ".")
	}
	return decimal.NewFromString(v)
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
