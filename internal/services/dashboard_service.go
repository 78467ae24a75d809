package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"activitylog/internal/cache"
	"activitylog/internal/core"
	"activitylog/internal/log"
	"activitylog/internal/observability"
	"activitylog/internal/sources"
)

// reportCacheSize bounds how many source versions are remembered.
const reportCacheSize = 4

// ErrNoSource is returned when the service has nothing to read from.
var ErrNoSource = errors.New("no activity source configured")

// DashboardService runs load -> enrich -> aggregate for every dashboard
// request, reusing the last report while the source version is unchanged.
type DashboardService struct {
	source  sources.RecordReader
	options core.SummaryOptions
	logger  *log.Logger

	reports *cache.LRUCache[core.Report]
	manager *cache.Manager
}

// NewDashboardService wires a source to the aggregation pipeline. A ttl of
// zero disables report caching, as does a source without a Versioner.
func NewDashboardService(source sources.RecordReader, opts core.SummaryOptions, ttl time.Duration, logger *log.Logger) *DashboardService {
	s := &DashboardService{
		source:  source,
		options: opts,
		logger:  logger.WithComponent(log.ComponentDashboard),
	}
	if _, ok := source.(sources.Versioner); ok && ttl > 0 {
		s.reports = cache.NewLRUCache[core.Report](reportCacheSize, ttl)
		s.manager = cache.NewManager(logger)
		s.manager.Register(s.reports)
		s.manager.StartCleanup(ttl)
	}
	return s
}

// Report returns the aggregated report for the current source content.
// The returned slices are shared with the cache and must not be modified.
func (s *DashboardService) Report(ctx context.Context) (core.Report, error) {
	if s.source == nil {
		return core.Report{}, ErrNoSource
	}
	start := time.Now()

	key := s.cacheKey(ctx)
	if key != "" {
		if report, ok := s.reports.Get(key); ok {
			s.logger.DebugContext(ctx, "Report cache hit", log.FieldCacheHit, true, log.FieldSource, key)
			observability.RecordReportBuild(observability.OutcomeCacheHit, time.Since(start))
			return report, nil
		}
	}

	records, err := s.source.ReadRecords(ctx)
	if err != nil {
		s.logger.LogError(ctx, "Failed to load activity log", err, log.OpLoad, nil)
		observability.RecordReportBuild(observability.OutcomeLoadError, time.Since(start))
		return core.Report{}, fmt.Errorf("load activity log: %w", err)
	}
	observability.RecordRecordsLoaded(len(records))

	report, err := core.Summarize(records, s.options)
	if err != nil {
		fields := log.NewFields()
		fields[log.FieldRecords] = len(records)
		s.logger.LogError(ctx, "Failed to summarize activity log", err, log.OpSummarize, fields)
		observability.RecordReportBuild(observability.OutcomeSummarizeError, time.Since(start))
		return core.Report{}, fmt.Errorf("summarize activity log: %w", err)
	}

	if key != "" {
		s.reports.Set(key, report)
	}
	observability.RecordReportBuild(observability.OutcomeOK, time.Since(start))
	s.logger.InfoContext(ctx, "Report built", log.NewFields().WithReport(
		report.Records,
		len(report.Categories),
		len(report.Moods),
		report.Headline.SleepHours.String(),
		report.Headline.PositiveHours.String(),
	).WithOperation(log.OpBuild).ToSlice()...)
	return report, nil
}

// cacheKey returns "" when the report must be rebuilt unconditionally.
func (s *DashboardService) cacheKey(ctx context.Context) string {
	if s.reports == nil {
		return ""
	}
	version, err := s.source.(sources.Versioner).Version(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Source version unavailable, skipping cache", log.FieldError, err.Error())
		return ""
	}
	return "report:" + version
}

// Check reports whether the source is reachable. Sources that cannot tell
// are assumed ready.
func (s *DashboardService) Check(ctx context.Context) error {
	if s.source == nil {
		return ErrNoSource
	}
	if hc, ok := s.source.(sources.HealthChecker); ok {
		return hc.Check(ctx)
	}
	return nil
}

// Close stops the cache cleanup goroutine.
func (s *DashboardService) Close() error {
	if s.manager != nil {
		s.manager.Stop()
	}
	return nil
}
