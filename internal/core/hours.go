// Package core provides the activity log domain: records, categorization
// and the aggregations behind the dashboard.
//
// This file contains the Hours type. Durations are kept as decimals so that
// grouped sums always add back up to the grand total.
package core

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Hours is a non-negative duration expressed in decimal hours.
type Hours struct {
	d decimal.Decimal
}

// ParseHours converts a decimal string to Hours.
//
// It accepts both dot (1.5) and comma (1,5) decimal separators. An empty
// cell is a missing value and counts as zero hours. Negative or non-numeric
// values return ErrInvalidDuration.
//
// Examples:
//
//	ParseHours("7")    -> 7
//	ParseHours("0,25") -> 0.25
//	ParseHours("")     -> 0
func ParseHours(s string) (Hours, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Hours{}, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Hours{}, fmt.Errorf("%w %q", ErrInvalidDuration, s)
	}
	if d.IsNegative() {
		return Hours{}, fmt.Errorf("%w %q: must not be negative", ErrInvalidDuration, s)
	}
	return Hours{d: d}, nil
}

// MustHours is ParseHours for literals; it panics on bad input.
func MustHours(s string) Hours {
	h, err := ParseHours(s)
	if err != nil {
		panic(err)
	}
	return h
}

// Add returns h + o.
func (h Hours) Add(o Hours) Hours {
	return Hours{d: h.d.Add(o.d)}
}

// Equal compares the exact decimal values.
func (h Hours) Equal(o Hours) bool {
	return h.d.Equal(o.d)
}

func (h Hours) IsZero() bool {
	return h.d.IsZero()
}

// Whole rounds to whole hours, half to even.
func (h Hours) Whole() int64 {
	return h.d.RoundBank(0).IntPart()
}

// Float64 returns the value for chart axes. Use Add for arithmetic.
func (h Hours) Float64() float64 {
	return h.d.InexactFloat64()
}

func (h Hours) String() string {
	return h.d.String()
}

// MarshalJSON encodes hours as a JSON number.
func (h Hours) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.d.InexactFloat64())
}

// SumHours adds up the durations of records.
func SumHours(records []ActivityRecord) Hours {
	var total Hours
	for _, r := range records {
		total = total.Add(r.Duration)
	}
	return total
}
