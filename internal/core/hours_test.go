package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHours(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"7", "7", true},
		{" 1.5 ", "1.5", true},
		{"0,25", "0.25", true},
		{"", "0", true},
		{"0", "0", true},
		{"-1", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			h, err := ParseHours(tc.in)
			if !tc.ok {
				assert.ErrorIs(t, err, ErrInvalidDuration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, h.String())
		})
	}
}

func TestHoursWholeRoundsHalfToEven(t *testing.T) {
	assert.EqualValues(t, 8, MustHours("7.5").Whole())
	assert.EqualValues(t, 6, MustHours("6.5").Whole())
	assert.EqualValues(t, 7, MustHours("6.51").Whole())
	assert.EqualValues(t, 0, MustHours("0.4").Whole())
}

func TestHoursSumIsExact(t *testing.T) {
	var total Hours
	for i := 0; i < 10; i++ {
		total = total.Add(MustHours("0.1"))
	}
	assert.True(t, total.Equal(MustHours("1")))
}

func TestHoursMarshalJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		H Hours `json:"h"`
	}{MustHours("2.25")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"h": 2.25}`, string(b))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("10/10/2023")
	require.NoError(t, err)
	assert.Equal(t, 10, d.Day())
	assert.Equal(t, 2023, d.Year())

	d, err = ParseDate("4/9/2023")
	require.NoError(t, err)
	assert.Equal(t, 4, d.Day())
	assert.EqualValues(t, 9, d.Month())
	assert.Equal(t, "04/09/2023", d.String())

	_, err = ParseDate("2023-10-10")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDate("32/10/2023")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
