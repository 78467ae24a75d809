package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"activitylog/internal/config"
	"activitylog/internal/dashboard"
	apphttp "activitylog/internal/http"
	"activitylog/internal/log"
	"activitylog/internal/services"
	"activitylog/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand() *cobra.Command {
	var (
		file string
		port int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard web server",
		Long: `Start the dashboard web server.

Examples:
  activitylog serve                          # PORT or 8081
  activitylog serve --port 3000
  activitylog serve --file ./october.csv     # read this CSV instead`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd, func(c *config.Config) {
				applyFileFlag(c, file)
				if port != 0 {
					c.Port = strconv.Itoa(port)
				}
			})
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), rt)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV activity log to read (forces the csv backend)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (overrides PORT)")
	return cmd
}

func runServe(ctx context.Context, rt *runtime) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := services.NewDashboardService(rt.source, rt.summary, rt.cfg.ReportCacheTTL, rt.logger)
	defer svc.Close()

	srv := apphttp.NewServer(":"+rt.cfg.Port, svc, apphttp.Options{
		Dashboard:          dashboard.Options{AssetsHost: rt.cfg.ChartAssetsHost},
		RateLimitPerMinute: rt.cfg.RateLimitPerMinute,
	}, rt.logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.NewRefresher(svc, rt.cfg.ReportRefreshInterval, rt.logger).Run(gctx)
	})
	g.Go(func() error {
		rt.logger.Info("Starting activity log dashboard", "port", rt.cfg.Port, log.FieldSource, rt.cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on :%s: %w", rt.cfg.Port, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		rt.logger.Info("Shutting down", log.FieldOperation, log.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	rt.logger.Info("Server stopped gracefully")
	return nil
}

// applyFileFlag points the run at a local CSV when --file is given.
func applyFileFlag(c *config.Config, file string) {
	if file == "" {
		return
	}
	c.DataBackend = config.BackendCSV
	c.CSVPath = file
}
