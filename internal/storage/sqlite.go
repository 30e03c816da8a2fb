package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finboard-dev/finboard/internal/model"
)

// transactionRow is the SQLite representation of a transaction.
type transactionRow struct {
	ID          int64  `gorm:"primaryKey;autoIncrement:false"`
	Position    int    `gorm:"index;not null"`
	Date        string `gorm:"size:10;index;not null"`
	Description string `gorm:"not null"`
	Amount      string `gorm:"not null"` // decimal text, never float
	Type        string `gorm:"size:6;not null"`
	Category    string `gorm:"size:16;index"`
	Account     string
	Reference   string
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
}

func (transactionRow) TableName() string { return "transactions" }

// SQLiteRepository keeps the ledger in a SQLite database.
type SQLiteRepository struct {
	db *gorm.DB
}

// OpenSQLite opens (creating if needed) the database at path and migrates the schema.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database dir: %w", err)
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if err := db.AutoMigrate(&transactionRow{}, &ledgerMeta{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// ledgerMeta has a single row once the ledger has been saved, so an empty
// ledger can be told apart from one that was never written.
type ledgerMeta struct {
	ID      int `gorm:"primaryKey"`
	SavedAt time.Time
}

func (ledgerMeta) TableName() string { return "ledger_meta" }

// Load returns the stored transactions in ledger order, or nil if the ledger was never saved.
func (r *SQLiteRepository) Load(ctx context.Context) ([]model.Transaction, error) {
	var metas []ledgerMeta
	if err := r.db.WithContext(ctx).Limit(1).Find(&metas).Error; err != nil {
		return nil, fmt.Errorf("reading ledger metadata: %w", err)
	}
	if len(metas) == 0 {
		return nil, nil
	}

	var rows []transactionRow
	if err := r.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}

	txns := make([]model.Transaction, 0, len(rows))
	for _, row := range rows {
		txn, err := row.toModel()
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", row.ID, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// Save replaces every stored transaction in one database transaction.
func (r *SQLiteRepository) Save(ctx context.Context, txns []model.Transaction) error {
	rows := make([]transactionRow, len(txns))
	for i, txn := range txns {
		rows[i] = fromModel(txn, i)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&transactionRow{}).Error; err != nil {
			return fmt.Errorf("clearing transactions: %w", err)
		}
		if len(rows) > 0 {
			if err := tx.CreateInBatches(rows, 100).Error; err != nil {
				return fmt.Errorf("inserting transactions: %w", err)
			}
		}
		if err := tx.Save(&ledgerMeta{ID: 1, SavedAt: time.Now().UTC()}).Error; err != nil {
			return fmt.Errorf("writing ledger metadata: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("getting database handle: %w", err)
	}
	return sqlDB.Close()
}

func fromModel(txn model.Transaction, position int) transactionRow {
	return transactionRow{
		ID:          txn.ID,
		Position:    position,
		Date:        txn.DateString(),
		Description: txn.Description,
		Amount:      txn.Amount.String(),
		Type:        string(txn.Type),
		Category:    string(txn.Category),
		Account:     txn.Account,
		Reference:   txn.Reference,
		CreatedAt:   txn.CreatedAt.UTC(),
	}
}

func (row transactionRow) toModel() (model.Transaction, error) {
	date, err := model.ParseDate(row.Date)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", row.Date, err)
	}
	amount, err := decimal.NewFromString(row.Amount)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", row.Amount, err)
	}
	return model.Transaction{
		ID:          row.ID,
		Date:        date,
		Description: row.Description,
		Amount:      amount,
		Type:        model.TxnType(row.Type),
		Category:    model.Category(row.Category),
		Account:     row.Account,
		Reference:   row.Reference,
		CreatedAt:   row.CreatedAt.UTC(),
	}, nil
}
