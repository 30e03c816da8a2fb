package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/finboard-dev/finboard/internal/buildinfo"
	"github.com/finboard-dev/finboard/internal/config"
	"github.com/finboard-dev/finboard/internal/logger"
)

// app carries what every subcommand needs once the root pre-run has loaded it.
type app struct {
	configPath string
	logLevel   string

	cfg *config.Config
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "finboard",
		Short:   "Small business transaction ledger",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.FileName, "path to finboard.yaml")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(
		newInitCommand(a),
		newListCommand(a),
		newSummaryCommand(a),
		newAddCommand(a),
		newEditCommand(a),
		newDeleteCommand(a),
		newBulkCommand(a),
		newImportCommand(a),
		newExportCommand(a),
		newSuggestCommand(a),
		newAccountsCommand(a),
		newActivityCommand(a),
	)

	return rootCmd
}

// load reads .env, finboard.yaml and FINBOARD_* overrides, then puts the
// logger on the command context.
func (a *app) load(cmd *cobra.Command) error {
	dir := filepath.Dir(a.configPath)
	if err := config.LoadEnvFile(filepath.Join(dir, ".env")); err != nil {
		return err
	}

	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	cfg.ResolvePaths(dir)
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	log, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}

	a.cfg = cfg
	log = log.With().Str("cmd", cmd.Name()).Logger()
	cmd.SetContext(logger.WithContext(cmd.Context(), log))
	log.Debug().Str("config", a.configPath).Str("storage", cfg.Storage.Driver).Msg("config loaded")
	return nil
}
