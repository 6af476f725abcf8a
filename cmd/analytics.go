package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sedecyt/industria-cli/internal/catalog"
	"github.com/sedecyt/industria-cli/internal/pipeline"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Regenerate dashboard chart data",
	Long:  "Aggregates the stored companies and responses into chart series and upserts the configured dashboards and charts. A chart that fails to build or upload is logged and skipped; the rest still update.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		cats, err := catalog.Load(ctx, st, cfg.Match)
		if err != nil {
			return err
		}

		companies, err := st.ListCompanies(ctx)
		if err != nil {
			return eris.Wrap(err, "list companies")
		}
		responses, err := st.ListResponses(ctx)
		if err != nil {
			return eris.Wrap(err, "list responses")
		}

		sources := map[string][]pipeline.Record{
			pipeline.SourceCompanies: pipeline.EnrichCompanies(companies, cats),
			pipeline.SourceResponses: pipeline.EnrichResponses(responses, companies, cats),
		}

		uploaded, skipped := 0, 0
		for _, def := range pipeline.Dashboards() {
			dashboardID, err := st.UpsertDashboard(ctx, def.Dashboard())
			if err != nil {
				zap.L().Error("upsert dashboard failed",
					zap.String("dashboard", def.Slug), zap.Error(err))
				continue
			}

			for i, chartDef := range def.Charts {
				chart := pipeline.BuildChart(chartDef, sources[chartDef.Source], cats, i+1)
				if chart == nil {
					zap.L().Warn("chart has no data, skipping",
						zap.String("chart", chartDef.Slug))
					skipped++
					continue
				}
				chart.DashboardID = dashboardID

				if err := st.UpsertChart(ctx, *chart); err != nil {
					zap.L().Error("upsert chart failed",
						zap.String("chart", chartDef.Slug), zap.Error(err))
					skipped++
					continue
				}
				uploaded++
			}
		}

		zap.L().Info("analytics update complete",
			zap.Int("companies", len(companies)),
			zap.Int("responses", len(responses)),
			zap.Int("charts_uploaded", uploaded),
			zap.Int("charts_skipped", skipped),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
}
