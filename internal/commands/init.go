package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finboard-dev/finboard/internal/accounts"
	"github.com/finboard-dev/finboard/internal/config"
	"github.com/finboard-dev/finboard/internal/ledger"
	"github.com/finboard-dev/finboard/internal/logger"
	"github.com/finboard-dev/finboard/internal/model"
	"github.com/finboard-dev/finboard/internal/storage"
)

func newInitCommand(a *app) *cobra.Command {
	var name, driver string
	var empty bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new finboard project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(cmd, absDir, name, driver, empty); err != nil {
				return err
			}
			log := logger.FromContext(cmd.Context())
			log.Debug().Str("dir", absDir).Str("storage", driver).Msg("project initialized")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&driver, "storage", storage.DriverCSV, "ledger storage: csv, sqlite or memory")
	cmd.Flags().BoolVar(&empty, "empty", false, "start with an empty ledger instead of sample transactions")

	return cmd
}

func runInit(cmd *cobra.Command, dir, name, driver string, empty bool) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", cfgPath, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	// Write finboard.yaml.
	cfg := config.Default(name)
	cfg.ActivityLog = "activity.csv"
	cfg.Accounts = accounts.Default()
	cfg.Rules = ledger.DefaultRules()
	switch strings.ToLower(driver) {
	case storage.DriverCSV:
		cfg.Storage = config.StorageConfig{Driver: storage.DriverCSV, Path: "ledger.csv"}
	case storage.DriverSQLite:
		cfg.Storage = config.StorageConfig{Driver: storage.DriverSQLite, Path: "ledger.db"}
	case storage.DriverMemory:
		cfg.Storage = config.StorageConfig{Driver: storage.DriverMemory}
	default:
		return fmt.Errorf("unknown storage driver %q", driver)
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write .gitignore.
	gitignore := ".env\nledger.db\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	// Write the starting ledger.
	resolved := *cfg
	resolved.ResolvePaths(dir)
	repo, err := storage.Open(resolved.Storage)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer repo.Close()

	txns := ledger.Seed()
	if empty {
		txns = []model.Transaction{}
	}
	if err := repo.Save(cmd.Context(), txns); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized finboard project at %s (%d transactions)\n", dir, len(txns))
	return nil
}
