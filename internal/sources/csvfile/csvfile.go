// Package csvfile reads the activity log from a delimited text file.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"activitylog/internal/core"
	"activitylog/internal/sources"
)

type Source struct {
	path string
}

// Ensure interface conformance
var (
	_ sources.RecordReader  = (*Source)(nil)
	_ sources.Versioner     = (*Source)(nil)
	_ sources.HealthChecker = (*Source)(nil)
)

func New(path string) *Source {
	return &Source{path: path}
}

// Path returns the file the source reads from.
func (s *Source) Path() string {
	return s.path
}

// ReadRecords opens the file and decodes every row.
func (s *Source) ReadRecords(ctx context.Context) ([]core.ActivityRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open activity log: %w", err)
	}
	defer f.Close()

	records, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return records, nil
}

// Version identifies the file content by size and an xxhash of its bytes.
// Modification times are not used: a same-size rewrite within the
// filesystem's timestamp resolution would otherwise keep the old version.
func (s *Source) Version(_ context.Context) (string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return "", fmt.Errorf("open activity log: %w", err)
	}
	defer f.Close()

	h := xxhash.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", fmt.Errorf("hash activity log: %w", err)
	}
	return strconv.FormatInt(n, 10) + ":" + strconv.FormatUint(h.Sum64(), 16), nil
}

// Check verifies the file exists and is a regular file.
func (s *Source) Check(_ context.Context) error {
	info, err := os.Stat(s.path)
	if err != nil {
		return fmt.Errorf("stat activity log: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("activity log %s is not a regular file", s.path)
	}
	return nil
}

// Decode reads a CSV stream whose first row is the header.
func Decode(r io.Reader) ([]core.ActivityRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file has no header row", core.ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return sources.DecodeTable(header, rows)
}
