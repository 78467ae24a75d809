package services

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activitylog/internal/core"
	"activitylog/internal/log"
	"activitylog/internal/sources/memory"
)

func discardLogger() *log.Logger {
	return log.New(log.Config{Output: io.Discard})
}

func record(day int, desc, hours, mood string) core.ActivityRecord {
	return core.ActivityRecord{
		Date:        core.NewDate(2023, 10, day),
		Description: desc,
		Duration:    core.MustHours(hours),
		Mood:        mood,
	}
}

func sampleRecords() []core.ActivityRecord {
	return []core.ActivityRecord{
		record(1, "Sleep", "7.5", "Refreshed"),
		record(1, "Lecture", "2", "Tired"),
		record(2, "Sleep", "6", ""),
		record(2, "Dinner", "1", "Happy"),
	}
}

// readCounter counts how often the pipeline reaches the source.
type readCounter struct {
	*memory.Store
	reads int
}

func (c *readCounter) ReadRecords(ctx context.Context) ([]core.ActivityRecord, error) {
	c.reads++
	return c.Store.ReadRecords(ctx)
}

func TestDashboardService_Report(t *testing.T) {
	svc := NewDashboardService(memory.New(sampleRecords()...), core.DefaultSummaryOptions(), 0, discardLogger())
	defer svc.Close()

	report, err := svc.Report(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, report.Records)
	assert.Equal(t, "13.5", report.Headline.SleepHours.String())
	assert.Equal(t, "8.5", report.Headline.PositiveHours.String())
	require.Len(t, report.DailySleep, 2)
	assert.Equal(t, 1, report.DailySleep[0].Day)
	assert.True(t, report.DailySleep[0].Hours.Equal(core.MustHours("7.5")))
	assert.Equal(t, 2, report.DailySleep[1].Day)
	assert.True(t, report.DailySleep[1].Hours.Equal(core.MustHours("6")))
	assert.Len(t, report.Moods, 3)
}

func TestDashboardService_ReportCachesByVersion(t *testing.T) {
	store := &readCounter{Store: memory.New(sampleRecords()...)}
	svc := NewDashboardService(store, core.DefaultSummaryOptions(), time.Hour, discardLogger())
	defer svc.Close()

	ctx := context.Background()
	first, err := svc.Report(ctx)
	require.NoError(t, err)
	second, err := svc.Report(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, store.reads)
	assert.Equal(t, first.Headline, second.Headline)

	store.Replace(record(3, "Sleep", "9", "Great"))
	third, err := svc.Report(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, store.reads)
	assert.Equal(t, "9", third.Headline.SleepHours.String())
}

func TestDashboardService_ZeroTTLAlwaysReloads(t *testing.T) {
	store := &readCounter{Store: memory.New(sampleRecords()...)}
	svc := NewDashboardService(store, core.DefaultSummaryOptions(), 0, discardLogger())
	defer svc.Close()

	for i := 0; i < 3; i++ {
		_, err := svc.Report(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 3, store.reads)
}

func TestDashboardService_Errors(t *testing.T) {
	tests := []struct {
		name    string
		store   func() *memory.Store
		wantErr error
	}{
		{
			name: "source failure",
			store: func() *memory.Store {
				s := memory.New(sampleRecords()...)
				s.Fail(core.ErrMissingColumn)
				return s
			},
			wantErr: core.ErrMissingColumn,
		},
		{
			name: "no moods at all",
			store: func() *memory.Store {
				return memory.New(record(1, "Sleep", "8", ""), record(1, "Lunch", "1", ""))
			},
			wantErr: core.ErrEmptyMoodText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewDashboardService(tt.store(), core.DefaultSummaryOptions(), time.Minute, discardLogger())
			defer svc.Close()

			_, err := svc.Report(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestDashboardService_Check(t *testing.T) {
	store := memory.New()
	svc := NewDashboardService(store, core.DefaultSummaryOptions(), 0, discardLogger())
	defer svc.Close()

	assert.NoError(t, svc.Check(context.Background()))
	store.Fail(errors.New("offline"))
	assert.EqualError(t, svc.Check(context.Background()), "offline")

	var empty DashboardService
	assert.ErrorIs(t, empty.Check(context.Background()), ErrNoSource)
}
