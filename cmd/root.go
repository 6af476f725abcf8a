package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sedecyt/industria-cli/internal/config"
	"github.com/sedecyt/industria-cli/internal/store"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "industria-cli",
	Short: "Industrial survey ETL and dashboard pipeline",
	Long:  "Ingests the industrial development survey workbook, normalizes tax IDs, names, phones, and certifications, resolves municipalities and parks against catalogs, and loads companies, contacts, and responses plus pre-aggregated dashboard charts.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// initStore opens and migrates the configured store.
func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.New(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
