package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/finboard-dev/finboard/internal/config"
	"github.com/finboard-dev/finboard/internal/model"
)

// Repository loads and saves the whole ledger.
type Repository interface {
	Load(ctx context.Context) ([]model.Transaction, error)
	Save(ctx context.Context, txns []model.Transaction) error
	Close() error
}

// Drivers.
const (
	DriverMemory = "memory"
	DriverCSV    = "csv"
	DriverSQLite = "sqlite"
)

// Open returns the repository selected by cfg.
func Open(cfg config.StorageConfig) (Repository, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", DriverMemory:
		return NewMemoryRepository(nil), nil
	case DriverCSV:
		if cfg.Path == "" {
			return nil, errors.New("csv storage requires a path")
		}
		return NewCSVRepository(cfg.Path), nil
	case DriverSQLite:
		if cfg.Path == "" {
			return nil, errors.New("sqlite storage requires a path")
		}
		return OpenSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// MemoryRepository keeps the ledger in process memory. A nil initial list
// means "never saved", which callers treat as a fresh ledger.
type MemoryRepository struct {
	mu   sync.Mutex
	txns []model.Transaction
}

// NewMemoryRepository creates a MemoryRepository holding txns.
func NewMemoryRepository(txns []model.Transaction) *MemoryRepository {
	return &MemoryRepository{txns: slices.Clone(txns)}
}

// Load returns a copy of the held transactions.
func (r *MemoryRepository) Load(_ context.Context) ([]model.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.txns), nil
}

// Save replaces the held transactions.
func (r *MemoryRepository) Save(_ context.Context, txns []model.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txns = slices.Clone(txns)
	if r.txns == nil {
		r.txns = []model.Transaction{}
	}
	return nil
}

// Close is a no-op.
func (r *MemoryRepository) Close() error { return nil }

// CSVRepository keeps the ledger in a single CSV file.
type CSVRepository struct {
	path string
}

// NewCSVRepository creates a CSVRepository for path.
func NewCSVRepository(path string) *CSVRepository {
	return &CSVRepository{path: path}
}

// Path returns the ledger file path.
func (r *CSVRepository) Path() string {
	return r.path
}

// Load reads the ledger file. A missing file yields nil with no error.
func (r *CSVRepository) Load(_ context.Context) ([]model.Transaction, error) {
	f, err := os.Open(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", r.path, err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", r.path, err)
	}
	if txns == nil {
		txns = []model.Transaction{}
	}
	return txns, nil
}

// Save rewrites the ledger file via a temp file and rename.
func (r *CSVRepository) Save(_ context.Context, txns []model.Transaction) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	var buf bytes.Buffer
	if err := WriteTransactions(&buf, txns); err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".ledger-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp ledger: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp ledger: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replacing ledger %s: %w", r.path, err)
	}
	return nil
}

// Close is a no-op.
func (r *CSVRepository) Close() error { return nil }
