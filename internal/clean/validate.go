package clean

import (
	"fmt"
	"strings"

	"github.com/cleared-dev/rfm/internal/model"
)

// ValidationError describes a single invariant violation on a cleaned row.
type ValidationError struct {
	Invariant int
	Index     int // position in the cleaned table
	InvoiceNo string
	Message   string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [row %d, invoice %s]: %s", e.Invariant, e.Index, e.InvoiceNo, e.Message)
}

// ValidateRows enforces the cleaned-table invariants:
//
//  1. 0 < Quantity < maxQuantity
//  2. UnitPrice > 0
//  3. no required field is empty
//  4. Sum == Quantity * UnitPrice
func ValidateRows(rows []model.Transaction, maxQuantity int) []ValidationError {
	var errs []ValidationError

	for i, row := range rows {
		if row.Quantity <= 0 || row.Quantity >= maxQuantity {
			errs = append(errs, ValidationError{
				Invariant: 1,
				Index:     i,
				InvoiceNo: row.InvoiceNo,
				Message:   fmt.Sprintf("quantity %d outside (0, %d)", row.Quantity, maxQuantity),
			})
		}

		if !row.UnitPrice.IsPositive() {
			errs = append(errs, ValidationError{
				Invariant: 2,
				Index:     i,
				InvoiceNo: row.InvoiceNo,
				Message:   fmt.Sprintf("unit price %s is not positive", row.UnitPrice),
			})
		}

		if row.Incomplete || row.InvoiceNo == "" || row.CustomerID == "" || row.InvoiceDate.IsZero() {
			errs = append(errs, ValidationError{
				Invariant: 3,
				Index:     i,
				InvoiceNo: row.InvoiceNo,
				Message:   "row has an empty field",
			})
		}

		if want := row.LineTotal(); !row.Sum.Equal(want) {
			errs = append(errs, ValidationError{
				Invariant: 4,
				Index:     i,
				InvoiceNo: row.InvoiceNo,
				Message:   fmt.Sprintf("sum %s != %d * %s", row.Sum, row.Quantity, row.UnitPrice),
			})
		}
	}

	return errs
}

// JoinErrors folds validation errors into one message.
func JoinErrors(errs []ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, ve := range errs {
		msgs[i] = ve.Error()
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}
