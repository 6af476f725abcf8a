package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sedecyt/industria-cli/internal/catalog"
	"github.com/sedecyt/industria-cli/internal/certs"
	"github.com/sedecyt/industria-cli/internal/fetcher"
	"github.com/sedecyt/industria-cli/internal/model"
	"github.com/sedecyt/industria-cli/internal/pipeline"
	"github.com/sedecyt/industria-cli/internal/store"
)

var (
	etlFile  string
	etlSheet string
)

var etlCmd = &cobra.Command{
	Use:   "etl",
	Short: "Run the full survey ingestion pipeline",
	Long:  "Reads the survey workbook, cleans every row, assembles companies, contacts, and responses, and loads them into the store. The responses table is fully replaced each run.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		// The certification catalog ships with the binary; sync it first
		// so extraction resolves against the current definitions.
		if n, err := st.SyncCertifications(ctx, certs.Catalog()); err != nil {
			return eris.Wrap(err, "sync certifications")
		} else if n > 0 {
			zap.L().Info("certification catalog synced", zap.Int64("rows", n))
		}

		run, err := st.CreateRun(ctx)
		if err != nil {
			return eris.Wrap(err, "create run")
		}

		if err := runETL(ctx, st, run); err != nil {
			run.Status = model.RunStatusFailed
			if ferr := st.FinishRun(ctx, run); ferr != nil {
				zap.L().Error("finish run", zap.Error(ferr))
			}
			return err
		}

		run.Status = model.RunStatusComplete
		if err := st.FinishRun(ctx, run); err != nil {
			return eris.Wrap(err, "finish run")
		}

		zap.L().Info("etl complete",
			zap.String("run_id", run.ID),
			zap.Int("companies", run.Companies),
			zap.Int("contacts", run.Contacts),
			zap.Int("responses", run.Responses),
			zap.Int("orphans", run.Orphans),
			zap.Duration("elapsed", time.Since(run.StartedAt)),
		)
		return nil
	},
}

// runETL executes the pipeline steps for one run, filling the audit
// counters as it goes.
func runETL(ctx context.Context, st store.Store, run *model.ETLRun) error {
	path := etlFile
	if path == "" {
		path = cfg.Survey.Path
	}
	sheet := etlSheet
	if sheet == "" {
		sheet = cfg.Survey.SheetName
	}

	rules, err := pipeline.LoadCleaningMap(cfg.Survey.CleaningMap)
	if err != nil {
		return err
	}

	raws, err := fetcher.ReadSurvey(path, sheet)
	if err != nil {
		return err
	}

	cats, err := catalog.Load(ctx, st, cfg.Match)
	if err != nil {
		return err
	}

	p := pipeline.New(rules, cats)
	tables := pipeline.Assemble(p.CleanRows(raws))

	if _, err := st.UpsertCompanies(ctx, tables.Companies); err != nil {
		return eris.Wrap(err, "upsert companies")
	}
	run.Companies = len(tables.Companies)

	if _, err := st.UpsertContacts(ctx, tables.Contacts); err != nil {
		return eris.Wrap(err, "upsert contacts")
	}
	run.Contacts = len(tables.Contacts)

	companyIDs, err := st.CompanyIDsByTaxID(ctx)
	if err != nil {
		return eris.Wrap(err, "load company ids")
	}
	contactIDs, err := st.ContactIDsByEmail(ctx)
	if err != nil {
		return eris.Wrap(err, "load contact ids")
	}

	kept, orphans := pipeline.MapForeignKeys(tables.Responses, companyIDs, contactIDs)
	run.Orphans = orphans

	if _, err := st.ReplaceResponses(ctx, kept); err != nil {
		return eris.Wrap(err, "replace responses")
	}
	run.Responses = len(kept)

	return nil
}

func init() {
	etlCmd.Flags().StringVar(&etlFile, "file", "", "survey workbook path (default from config)")
	etlCmd.Flags().StringVar(&etlSheet, "sheet", "", "worksheet name (default from config)")
	rootCmd.AddCommand(etlCmd)
}
