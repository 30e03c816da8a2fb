package activity

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finboard-dev/finboard/internal/id"
)

// Action names recorded for ledger mutations.
const (
	ActionAdd            = "add"
	ActionEdit           = "edit"
	ActionDelete         = "delete"
	ActionBulkDelete     = "bulk_delete"
	ActionBulkCategorize = "bulk_categorize"
	ActionBulkEdit       = "bulk_edit"
	ActionImport         = "import"
)

// Entry is one row in the activity log.
type Entry struct {
	ID             string
	Timestamp      time.Time
	Action         string
	Details        string
	TransactionIDs []int64
}

// NewEntry creates an entry with a fresh ID.
func NewEntry(at time.Time, action, details string, txnIDs ...int64) Entry {
	return Entry{
		ID:             uuid.NewString(),
		Timestamp:      at,
		Action:         action,
		Details:        details,
		TransactionIDs: txnIDs,
	}
}

// Header is the CSV header for the activity log.
const Header = "id,timestamp,action,details,transaction_ids"

const (
	numFields    = 5
	colID        = 0
	colTimestamp = 1
	colAction    = 2
	colDetails   = 3
	colTxnIDs    = 4
	idSeparator  = ";"
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	ids := make([]string, len(e.TransactionIDs))
	for i, v := range e.TransactionIDs {
		ids[i] = id.Format(v)
	}

	row := make([]string, numFields)
	row[colID] = e.ID
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colAction] = e.Action
	row[colDetails] = e.Details
	row[colTxnIDs] = strings.Join(ids, idSeparator)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	var txnIDs []int64
	if record[colTxnIDs] != "" {
		txnIDs, err = id.ParseAll(strings.Split(record[colTxnIDs], idSeparator))
		if err != nil {
			return Entry{}, fmt.Errorf("parsing transaction_ids: %w", err)
		}
	}

	return Entry{
		ID:             record[colID],
		Timestamp:      ts,
		Action:         record[colAction],
		Details:        record[colDetails],
		TransactionIDs: txnIDs,
	}, nil
}

// Append writes entries to the log at path, creating the file and header if needed.
func Append(path string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating activity log dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns all entries from the log at path.
// Returns an empty slice if the file does not exist.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading activity log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
