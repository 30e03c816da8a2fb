package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finboard-dev/finboard/internal/id"
	"github.com/finboard-dev/finboard/internal/model"
)

// Header is the CSV header for ledger files.
const Header = "id,date,description,amount,type,category,account,reference,created_at"

const (
	numFields    = 9
	colID        = 0
	colDate      = 1
	colDesc      = 2
	colAmount    = 3
	colType      = 4
	colCategory  = 5
	colAccount   = 6
	colReference = 7
	colCreatedAt = 8
)

// ReadTransactions reads all transactions from a ledger CSV reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.Transaction
	seen := make(map[int64]int, len(records))
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if first, ok := seen[txn.ID]; ok {
			return nil, fmt.Errorf("row %d: duplicate transaction ID %d (first on row %d)", i+2, txn.ID, first)
		}
		seen[txn.ID] = i + 2
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteTransactions writes transactions to a ledger CSV writer (including header).
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = id.Format(txn.ID)
	row[colDate] = txn.DateString()
	row[colDesc] = txn.Description
	row[colAmount] = txn.Amount.String()
	row[colType] = string(txn.Type)
	row[colCategory] = string(txn.Category)
	row[colAccount] = txn.Account
	row[colReference] = txn.Reference
	if !txn.CreatedAt.IsZero() {
		row[colCreatedAt] = txn.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	txnID, err := id.Parse(record[colID])
	if err != nil {
		return model.Transaction{}, err
	}

	date, err := model.ParseDate(record[colDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}
	if amount.IsNegative() {
		return model.Transaction{}, fmt.Errorf("amount %q is negative", record[colAmount])
	}

	typ := model.TxnType(record[colType])
	if !typ.Valid() {
		return model.Transaction{}, fmt.Errorf("unknown type %q", record[colType])
	}

	var createdAt time.Time
	if record[colCreatedAt] != "" {
		createdAt, err = time.Parse(time.RFC3339Nano, record[colCreatedAt])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing created_at %q: %w", record[colCreatedAt], err)
		}
	}

	return model.Transaction{
		ID:          txnID,
		Date:        date,
		Description: record[colDesc],
		Amount:      amount,
		Type:        typ,
		Category:    model.Category(record[colCategory]),
		Account:     record[colAccount],
		Reference:   record[colReference],
		CreatedAt:   createdAt,
	}, nil
}
