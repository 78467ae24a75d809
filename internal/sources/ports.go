package sources

import (
	"context"

	"activitylog/internal/core"
)

// Ports for inbound activity data.
type (
	// RecordReader loads the whole activity table in one call.
	RecordReader interface {
		ReadRecords(ctx context.Context) ([]core.ActivityRecord, error)
	}

	// Versioner is implemented by sources that can cheaply tell whether
	// their content changed since the last read.
	Versioner interface {
		Version(ctx context.Context) (string, error)
	}

	// HealthChecker reports whether the source is reachable.
	HealthChecker interface {
		Check(ctx context.Context) error
	}
)
