package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the DD/MM/YYYY layout of the activity log. Day and month
// may be written without leading zeros.
const DateLayout = "2/1/2006"

// SleepActivity is the literal description used for sleep entries.
const SleepActivity = "Sleep"

type (
	Date struct {
		time.Time
	}

	// ActivityRecord is one logged activity. Category is empty until Enrich runs.
	ActivityRecord struct {
		Date        Date
		Description string
		Duration    Hours
		Mood        string // empty when not recorded
		Category    string
	}
)

var (
	ErrMissingColumn   = errors.New("missing column")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidDuration = errors.New("invalid duration")
	ErrEmptyMoodText   = errors.New("no mood text to build a word cloud from")
)

// ParseDate parses a DD/MM/YYYY date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w %q: expected DD/MM/YYYY", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// String formats the date back to the log layout.
func (d Date) String() string {
	return d.Format("02/01/2006")
}

// Day is the day-of-month the activity was logged on.
func (r ActivityRecord) Day() int {
	return r.Date.Day()
}

// HasMood reports whether a feeling was recorded for the activity.
func (r ActivityRecord) HasMood() bool {
	return r.Mood != ""
}

// IsSleep reports whether the trimmed description is exactly "Sleep".
func (r ActivityRecord) IsSleep() bool {
	return strings.TrimSpace(r.Description) == SleepActivity
}
