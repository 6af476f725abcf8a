package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sedecyt/industria-cli/internal/certs"
	"github.com/sedecyt/industria-cli/internal/model"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the reference catalogs",
	Long:  "Commands for syncing the built-in certification catalog and seeding the municipality and industrial-park catalogs.",
}

// -- catalog sync-certs --

var catalogSyncCertsCmd = &cobra.Command{
	Use:   "sync-certs",
	Short: "Sync the built-in certification catalog into the store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		n, err := st.SyncCertifications(ctx, certs.Catalog())
		if err != nil {
			return eris.Wrap(err, "sync certifications")
		}

		zap.L().Info("certification catalog synced", zap.Int64("rows", n))
		return nil
	},
}

// -- catalog seed --

var (
	seedTable string
	seedFile  string
)

var catalogSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed a geography catalog from a YAML file",
	Long:  "Loads catalog entries (name plus optional match keywords) into the municipalities or industrial_parks table, updating keywords for names already present.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(seedFile)
		if err != nil {
			return eris.Wrapf(err, "read seed file %s", seedFile)
		}

		var entries []model.CatalogEntry
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return eris.Wrap(err, "parse seed file")
		}
		if len(entries) == 0 {
			return eris.New("seed file has no entries")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.SeedCatalog(ctx, seedTable, entries); err != nil {
			return eris.Wrap(err, "seed catalog")
		}

		zap.L().Info("catalog seeded",
			zap.String("table", seedTable),
			zap.Int("entries", len(entries)),
		)
		return nil
	},
}

// -- catalog status --

var catalogStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show catalog row counts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		municipalities, err := st.ListMunicipalities(ctx)
		if err != nil {
			return eris.Wrap(err, "list municipalities")
		}
		parks, err := st.ListIndustrialParks(ctx)
		if err != nil {
			return eris.Wrap(err, "list industrial parks")
		}
		certifications, err := st.ListCertifications(ctx)
		if err != nil {
			return eris.Wrap(err, "list certifications")
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Municipalities:\t%d\n", len(municipalities))
		fmt.Fprintf(w, "Industrial parks:\t%d\n", len(parks))
		fmt.Fprintf(w, "Certifications:\t%d\n", len(certifications))
		return w.Flush()
	},
}

func init() {
	catalogSeedCmd.Flags().StringVar(&seedTable, "table", "", "target table: municipalities or industrial_parks (required)")
	catalogSeedCmd.Flags().StringVar(&seedFile, "file", "", "YAML seed file (required)")
	_ = catalogSeedCmd.MarkFlagRequired("table")
	_ = catalogSeedCmd.MarkFlagRequired("file")

	catalogCmd.AddCommand(catalogSyncCertsCmd)
	catalogCmd.AddCommand(catalogSeedCmd)
	catalogCmd.AddCommand(catalogStatusCmd)
	rootCmd.AddCommand(catalogCmd)
}
