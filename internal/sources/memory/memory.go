// Package memory is an in-process activity source, used for demos and tests.
package memory

import (
	"context"
	"strconv"
	"sync"

	"activitylog/internal/core"
	"activitylog/internal/sources"
)

type Store struct {
	mu      sync.Mutex
	items   []core.ActivityRecord
	version int
	err     error
}

var (
	_ sources.RecordReader  = (*Store)(nil)
	_ sources.Versioner     = (*Store)(nil)
	_ sources.HealthChecker = (*Store)(nil)
)

func New(records ...core.ActivityRecord) *Store {
	return &Store{items: append([]core.ActivityRecord(nil), records...), version: 1}
}

// Replace swaps the stored records and bumps the version.
func (s *Store) Replace(records ...core.ActivityRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]core.ActivityRecord(nil), records...)
	s.version++
}

// Fail makes every subsequent call return err; nil clears it.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// ReadRecords returns a copy so callers may enrich it in place.
func (s *Store) ReadRecords(_ context.Context) ([]core.ActivityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]core.ActivityRecord(nil), s.items...), nil
}

func (s *Store) Version(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	return "mem:" + strconv.Itoa(s.version), nil
}

func (s *Store) Check(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
