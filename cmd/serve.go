package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sedecyt/industria-cli/internal/model"
	"github.com/sedecyt/industria-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard read API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(st, cfg.Server.AllowedOrigins),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newRouter builds the read-only API. Store failures render as empty
// lists rather than error pages: the dashboard frontend shows blank
// charts instead of breaking.
func newRouter(st store.Store, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		status := "ok"
		code := http.StatusOK
		if err := st.Ping(req.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, map[string]string{"status": status})
	})

	r.Get("/api/dashboards", func(w http.ResponseWriter, req *http.Request) {
		dashboards, err := st.ListDashboards(req.Context())
		if err != nil {
			zap.L().Error("list dashboards", zap.Error(err))
			dashboards = nil
		}
		if dashboards == nil {
			dashboards = []model.Dashboard{}
		}
		writeJSON(w, http.StatusOK, dashboards)
	})

	r.Get("/api/dashboards/{slug}", func(w http.ResponseWriter, req *http.Request) {
		slug := chi.URLParam(req, "slug")

		d, err := st.GetDashboard(req.Context(), slug)
		if err != nil {
			zap.L().Error("get dashboard", zap.String("slug", slug), zap.Error(err))
			writeJSON(w, http.StatusOK, model.Dashboard{Slug: slug, Charts: []model.Chart{}})
			return
		}
		if d == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "dashboard not found"})
			return
		}
		if d.Charts == nil {
			d.Charts = []model.Chart{}
		}
		writeJSON(w, http.StatusOK, d)
	})

	r.Get("/api/runs", func(w http.ResponseWriter, req *http.Request) {
		runs, err := st.ListRuns(req.Context(), 20)
		if err != nil {
			zap.L().Error("list runs", zap.Error(err))
			runs = nil
		}
		if runs == nil {
			runs = []model.ETLRun{}
		}
		writeJSON(w, http.StatusOK, runs)
	})

	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
