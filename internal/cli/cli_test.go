package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activitylog/internal/config"
	"activitylog/internal/core"
	"activitylog/internal/sources/csvfile"
)

const sampleCSV = `Date,Activity Description,Duration (hours),How I feel
10/10/2023,Sleep,7.5,Refreshed
10/10/2023,Class,2,Tired
11/10/2023,Sleep ,6,Happy
11/10/2023,Assignment (PM),1.5,Happy
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATA_BACKEND", "csv")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("PORT", "8081")
	t.Setenv("CATEGORY_RULES_FILE", "")
	t.Setenv("POSITIVE_MOODS", "Excited,Happy,Refreshed,Overjoyed,Chill,Satisfied,Great,Productive")
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSummaryCommand(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, "log.csv", sampleCSV)

	out, err := runCommand(t, "summary", "--file", path)
	require.NoError(t, err)

	// 7.5 + 6 = 13.5 -> 14; 7.5 + 6 + 1.5 = 15
	assert.Regexp(t, `Total Sleeping Time\s+14 hours`, out)
	assert.Regexp(t, `Positive Moods\s+15 hours`, out)
	assert.Regexp(t, `Study/Class \(Academic\)\s+3.5`, out)
	assert.Regexp(t, `(?m)^10\s+7.5$`, out)
	assert.Regexp(t, `(?m)^11\s+6$`, out)
	assert.Regexp(t, `(?m)^Happy\s+2$`, out)
}

func TestSummaryCommandJSON(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, "log.csv", sampleCSV)

	out, err := runCommand(t, "summary", "--file", path, "--json")
	require.NoError(t, err)

	var report struct {
		Records  int `json:"records"`
		Headline struct {
			SleepHours float64 `json:"sleep_hours"`
		} `json:"headline"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 4, report.Records)
	assert.Equal(t, 13.5, report.Headline.SleepHours)
}

func TestSummaryCommandFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "missing column",
			content: "Date,Activity Description,Duration (hours)\n10/10/2023,Sleep,8\n",
			wantErr: core.ErrMissingColumn,
		},
		{
			name:    "bad date",
			content: "Date,Activity Description,Duration (hours),How I feel\n2023-10-10,Sleep,8,Happy\n",
			wantErr: core.ErrInvalidDate,
		},
		{
			name:    "no moods",
			content: "Date,Activity Description,Duration (hours),How I feel\n10/10/2023,Sleep,8,\n",
			wantErr: core.ErrEmptyMoodText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			path := writeFile(t, "log.csv", tt.content)

			out, err := runCommand(t, "summary", "--file", path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Empty(t, out)
		})
	}
}

func TestSummaryCommandMissingFile(t *testing.T) {
	isolateEnv(t)
	_, err := runCommand(t, "summary", "--file", filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestSummaryCommandRejectsBadConfig(t *testing.T) {
	isolateEnv(t)
	t.Setenv("LOG_LEVEL", "loud")
	_, err := runCommand(t, "summary", "--file", writeFile(t, "log.csv", sampleCSV))
	assert.ErrorContains(t, err, "configuration validation failed")
}

func TestApplyFileFlag(t *testing.T) {
	cfg := &config.Config{DataBackend: config.BackendSheets, CSVPath: "default.csv"}
	applyFileFlag(cfg, "")
	assert.Equal(t, config.BackendSheets, cfg.DataBackend)

	applyFileFlag(cfg, "mine.csv")
	assert.Equal(t, config.BackendCSV, cfg.DataBackend)
	assert.Equal(t, "mine.csv", cfg.CSVPath)
}

func TestNewSource(t *testing.T) {
	src, err := NewSource(context.Background(), &config.Config{DataBackend: config.BackendCSV, CSVPath: "x.csv"})
	require.NoError(t, err)
	assert.Equal(t, "x.csv", src.(*csvfile.Source).Path())

	_, err = NewSource(context.Background(), &config.Config{DataBackend: config.BackendSheets})
	assert.Error(t, err)

	_, err = NewSource(context.Background(), &config.Config{DataBackend: "ftp"})
	assert.Error(t, err)
}

func TestSummaryOptionsRulesFile(t *testing.T) {
	path := writeFile(t, "rules.json", `[{"name":"Reading","activities":["Read novel"]}]`)
	opts, err := SummaryOptions(&config.Config{CategoryRulesFile: path, PositiveMoods: []string{"Calm"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"Calm"}, opts.PositiveMoods)
	assert.Equal(t, "Reading", opts.Rules.Categorize("Read novel"))

	bad := writeFile(t, "bad.json", `{`)
	_, err = SummaryOptions(&config.Config{CategoryRulesFile: bad})
	assert.Error(t, err)
}
