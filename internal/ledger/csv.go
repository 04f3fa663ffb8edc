package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendsight/spendsight/internal/model"
)

// Header is the CSV header for the ledger file.
const Header = "id,account_id,date,description,amount,type,category,is_recurring,merchant_name,location,notes"

const (
	numFields    = 11
	dateFormat   = "2006-01-02"
	colID        = 0
	colAccountID = 1
	colDate      = 2
	colDesc      = 3
	colAmount    = 4
	colType      = 5
	colCategory  = 6
	colRecurring = 7
	colMerchant  = 8
	colLocation  = 9
	colNotes     = 10
)

// ReadTransactions reads every transaction from a ledger reader. Dates are
// calendar days in loc; a nil loc means UTC.
func ReadTransactions(r io.Reader, loc *time.Location) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	txns := make([]model.Transaction, 0, len(records)-1)
	for i, rec := range records[1:] {
		t, err := UnmarshalTransaction(rec, loc)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}

// WriteTransactions writes txns to w, header first.
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, t := range txns {
		if err := cw.Write(MarshalTransaction(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// AppendTransactions writes txns to w without a header.
func AppendTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, t := range txns {
		if err := cw.Write(MarshalTransaction(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = t.ID
	row[colAccountID] = t.AccountID
	row[colDate] = t.Date.Format(dateFormat)
	row[colDesc] = t.Description
	row[colAmount] = t.Amount.StringFixed(2)
	row[colType] = string(t.Type)
	row[colCategory] = string(t.Category)
	row[colRecurring] = strconv.FormatBool(t.IsRecurring)
	row[colMerchant] = t.MerchantName
	row[colLocation] = t.Location
	row[colNotes] = t.Notes
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction dated midnight in
// loc (UTC when nil).
func UnmarshalTransaction(record []string, loc *time.Location) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	if loc == nil {
		loc = time.UTC
	}

	date, err := time.ParseInLocation(dateFormat, record[colDate], loc)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	recurring := false
	if record[colRecurring] != "" {
		recurring, err = strconv.ParseBool(record[colRecurring])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing is_recurring %q: %w", record[colRecurring], err)
		}
	}

	return model.Transaction{
		ID:           record[colID],
		AccountID:    record[colAccountID],
		Date:         date,
		Description:  record[colDesc],
		Amount:       amount,
		Type:         model.TransactionType(record[colType]),
		Category:     model.Category(record[colCategory]),
		IsRecurring:  recurring,
		MerchantName: record[colMerchant],
		Location:     record[colLocation],
		Notes:        record[colNotes],
	}, nil
}
