// Package worker keeps the dashboard report warm in the background.
package worker

import (
	"context"
	"fmt"
	"time"

	"activitylog/internal/core"
	"activitylog/internal/log"
)

// ReportBuilder is the pipeline the refresher drives.
type ReportBuilder interface {
	Report(ctx context.Context) (core.Report, error)
}

// Refresher rebuilds the report on a fixed interval so page loads hit a
// warm cache. A failed refresh is logged and retried on the next tick.
type Refresher struct {
	reports  ReportBuilder
	interval time.Duration
	timeout  time.Duration
	logger   *log.Logger
}

func NewRefresher(reports ReportBuilder, interval time.Duration, logger *log.Logger) *Refresher {
	timeout := interval
	if timeout <= 0 || timeout > time.Minute {
		timeout = time.Minute
	}
	return &Refresher{
		reports:  reports,
		interval: interval,
		timeout:  timeout,
		logger:   logger.WithComponent(log.ComponentDashboard),
	}
}

// RefreshOnce builds the report a single time.
func (r *Refresher) RefreshOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	report, err := r.reports.Report(ctx)
	if err != nil {
		return fmt.Errorf("refresh report: %w", err)
	}
	r.logger.DebugContext(ctx, "Report refreshed", log.FieldRecords, report.Records)
	return nil
}

// Run refreshes immediately and then on every tick until ctx is done. It
// returns nil on cancellation and does nothing when the interval is not
// positive.
func (r *Refresher) Run(ctx context.Context) error {
	if r.interval <= 0 {
		return nil
	}
	r.logger.Info("Starting report refresher", "interval", r.interval.String())

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if err := r.RefreshOnce(ctx); err != nil && ctx.Err() == nil {
			r.logger.LogError(ctx, "Periodic report refresh failed", err, log.OpBuild, nil)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
