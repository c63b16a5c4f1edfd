package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/robinmackenzie/uk-election-map/internal/audit"
	"github.com/robinmackenzie/uk-election-map/internal/db"
	"github.com/robinmackenzie/uk-election-map/internal/loader"
	"github.com/robinmackenzie/uk-election-map/internal/progress"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import result documents into the SQLite result store",
	Long: `Reads every configured result document and stores it in the SQLite
database at database_path. Re-importing a year replaces its rows. Set
source: sqlite to serve the map from the store afterwards.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("db", "", "override database path (defaults to database_path)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = cfg.DatabasePath
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	store := db.NewResultStore(database)
	history := audit.NewStore(database)

	specs, err := cfg.DatasetSpecs()
	if err != nil {
		return err
	}

	ctx := context.Background()
	existing, err := store.Years(ctx)
	if err != nil {
		return err
	}

	l := loader.New(logger)
	reporter := progress.NewReporter(os.Stderr)
	actor := os.Getenv("USER")

	for _, spec := range specs {
		ds, err := l.Dataset(ctx, spec)
		if err != nil {
			failed := audit.Entry{Actor: actor, Action: audit.ActionFailed, Year: spec.Year, Source: spec.Location, Detail: err.Error()}
			if logErr := history.Log(ctx, failed); logErr != nil {
				logger.Warn("recording import history", zap.Error(logErr))
			}
			return err
		}
		entry := audit.Entry{Actor: actor, Action: audit.ActionImported, Year: spec.Year, Source: spec.Location, Records: ds.Len()}
		if slices.Contains(existing, spec.Year) {
			entry.Action = audit.ActionReplaced
		}

		reporter.Start(spec.Year, ds.Len())
		err = store.ImportDataset(ctx, ds, spec.Location, reporter.Update)
		reporter.Finish()
		if err != nil {
			entry.Action, entry.Detail = audit.ActionFailed, err.Error()
		}
		if logErr := history.Log(ctx, entry); logErr != nil {
			logger.Warn("recording import history", zap.Error(logErr))
		}
		if err != nil {
			return fmt.Errorf("importing %s: %w", spec.Year, err)
		}
		fmt.Printf("Imported %s: %d constituencies from %s\n", spec.Year, ds.Len(), spec.Location)
	}

	fmt.Printf("Result store: %s\n", dbPath)
	return nil
}
