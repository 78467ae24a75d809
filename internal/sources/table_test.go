package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activitylog/internal/core"
)

var header = []string{"Date", "Activity Description", "Duration (hours)", "How I feel"}

func TestDecodeTable(t *testing.T) {
	rows := [][]string{
		{"10/10/2023", "Sleep ", "7", "Refreshed"},
		{"10/10/2023", "Class", "1,5", ""},
		{"", "", "", ""},
		{"11/10/2023", "Lunch", "0.5"},
	}
	records, err := DecodeTable(header, rows)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, 10, records[0].Day())
	assert.Equal(t, "Sleep ", records[0].Description)
	assert.Equal(t, "7", records[0].Duration.String())
	assert.Equal(t, "Refreshed", records[0].Mood)

	assert.Equal(t, "1.5", records[1].Duration.String())
	assert.False(t, records[1].HasMood())

	assert.Equal(t, 11, records[2].Day())
	assert.False(t, records[2].HasMood())
}

func TestDecodeTableTrimsMoods(t *testing.T) {
	rows := [][]string{
		{"10/10/2023", "Lunch", "1", " Happy "},
		{"10/10/2023", "Phone", "1", "   "},
	}
	records, err := DecodeTable(header, rows)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Happy", records[0].Mood)
	assert.False(t, records[1].HasMood())
	assert.True(t, core.PositiveHours(records, core.DefaultPositiveMoods()).Equal(core.MustHours("1")))
}

func TestDecodeTableNormalizesHeaders(t *testing.T) {
	h := []string{"\ufeffDATE", "  activity description ", "Extra", "Duration (Hours)", "How I Feel"}
	records, err := DecodeTable(h, [][]string{{"1/9/2023", "Phone", "x", "2", "Bored"}})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Phone", records[0].Description)
	assert.Equal(t, "Bored", records[0].Mood)
}

func TestDecodeTableMissingColumn(t *testing.T) {
	_, err := DecodeTable([]string{"Date", "Activity Description", "How I feel"}, nil)
	require.ErrorIs(t, err, core.ErrMissingColumn)
	assert.Contains(t, err.Error(), ColumnDuration)
}

func TestDecodeTableBadCells(t *testing.T) {
	_, err := DecodeTable(header, [][]string{{"2023-10-10", "Sleep", "7", ""}})
	require.ErrorIs(t, err, core.ErrInvalidDate)
	assert.Contains(t, err.Error(), "row 2")

	_, err = DecodeTable(header, [][]string{
		{"10/10/2023", "Sleep", "7", ""},
		{"10/10/2023", "Sleep", "seven", ""},
	})
	require.ErrorIs(t, err, core.ErrInvalidDuration)
	assert.Contains(t, err.Error(), "row 3")
}
