package core

import (
	"slices"
	"sort"
)

// DefaultTopMoods is how many moods the ranked bar chart shows.
const DefaultTopMoods = 10

type (
	// CategoryHours is the total duration logged under a category.
	CategoryHours struct {
		Name  string `json:"name"`
		Hours Hours  `json:"hours"`
	}

	// DayHours is the total duration for a day of the month.
	DayHours struct {
		Day   int   `json:"day"`
		Hours Hours `json:"hours"`
	}

	MoodCount struct {
		Mood  string `json:"mood"`
		Count int    `json:"count"`
	}

	// Headline holds the two numbers shown above the charts.
	Headline struct {
		SleepHours    Hours `json:"sleep_hours"`
		PositiveHours Hours `json:"positive_hours"`
	}

	// Report is everything the dashboard displays, computed in one pass.
	Report struct {
		Records    int             `json:"records"`
		Headline   Headline        `json:"headline"`
		Categories []CategoryHours `json:"categories"`
		DailySleep []DayHours      `json:"daily_sleep"`
		Moods      []MoodCount     `json:"moods"`
		TopMoods   []MoodCount     `json:"top_moods"`
		MoodText   string          `json:"-"`
		Words      []WordWeight    `json:"words"`
	}

	SummaryOptions struct {
		Rules         CategoryRules
		PositiveMoods []string
		SubBuckets    []string
		TopMoods      int
		MaxWords      int
	}
)

// DefaultPositiveMoods is the allow-list behind the positive hours headline.
func DefaultPositiveMoods() []string {
	return []string{"Excited", "Happy", "Refreshed", "Overjoyed", "Chill", "Satisfied", "Great", "Productive"}
}

func DefaultSummaryOptions() SummaryOptions {
	return SummaryOptions{
		Rules:         DefaultCategoryRules(),
		PositiveMoods: DefaultPositiveMoods(),
		SubBuckets:    DisplaySubBuckets(),
		TopMoods:      DefaultTopMoods,
		MaxWords:      DefaultMaxWords,
	}
}

// Summarize enriches records in place and computes the full report.
// It fails with ErrEmptyMoodText when no record carries a mood.
func Summarize(records []ActivityRecord, opts SummaryOptions) (Report, error) {
	if opts.Rules == nil {
		opts.Rules = DefaultCategoryRules()
	}
	if opts.TopMoods <= 0 {
		opts.TopMoods = DefaultTopMoods
	}
	if opts.MaxWords <= 0 {
		opts.MaxWords = DefaultMaxWords
	}

	Enrich(records, opts.Rules)

	text := MoodText(records)
	words, err := WordFrequencies(text, opts.MaxWords)
	if err != nil {
		return Report{}, err
	}

	moods := MoodTally(records)
	return Report{
		Records: len(records),
		Headline: Headline{
			SleepHours:    TotalSleep(records),
			PositiveHours: PositiveHours(records, opts.PositiveMoods),
		},
		Categories: ConsolidateForDisplay(CategoryTotals(records), opts.SubBuckets),
		DailySleep: DailySleep(records),
		Moods:      moods,
		TopMoods:   TopMoods(moods, opts.TopMoods),
		MoodText:   text,
		Words:      words,
	}, nil
}

// TotalSleep sums the durations of sleep records. It uses the same trimmed
// match as DailySleep, so the headline equals the sum of the daily series.
func TotalSleep(records []ActivityRecord) Hours {
	var total Hours
	for _, r := range records {
		if r.IsSleep() {
			total = total.Add(r.Duration)
		}
	}
	return total
}

// PositiveHours sums durations whose mood is in allow (exact match).
func PositiveHours(records []ActivityRecord, allow []string) Hours {
	var total Hours
	for _, r := range records {
		if r.HasMood() && slices.Contains(allow, r.Mood) {
			total = total.Add(r.Duration)
		}
	}
	return total
}

// CategoryTotals groups durations by category in order of first appearance.
func CategoryTotals(records []ActivityRecord) []CategoryHours {
	index := map[string]int{}
	var out []CategoryHours
	for _, r := range records {
		i, ok := index[r.Category]
		if !ok {
			i = len(out)
			index[r.Category] = i
			out = append(out, CategoryHours{Name: r.Category})
		}
		out[i].Hours = out[i].Hours.Add(r.Duration)
	}
	return out
}

// ConsolidateForDisplay relabels sub-bucket categories as Others and merges
// the rows that end up sharing a name.
func ConsolidateForDisplay(totals []CategoryHours, subBuckets []string) []CategoryHours {
	index := map[string]int{}
	out := make([]CategoryHours, 0, len(totals))
	for _, t := range totals {
		name := t.Name
		if slices.Contains(subBuckets, name) {
			name = CategoryOthers
		}
		if i, ok := index[name]; ok {
			out[i].Hours = out[i].Hours.Add(t.Hours)
			continue
		}
		index[name] = len(out)
		out = append(out, CategoryHours{Name: name, Hours: t.Hours})
	}
	return out
}

// DailySleep sums sleep durations per day of month, ascending by day.
// Days without a sleep record are absent.
func DailySleep(records []ActivityRecord) []DayHours {
	byDay := map[int]Hours{}
	for _, r := range records {
		if r.IsSleep() {
			byDay[r.Day()] = byDay[r.Day()].Add(r.Duration)
		}
	}
	out := make([]DayHours, 0, len(byDay))
	for day, h := range byDay {
		out = append(out, DayHours{Day: day, Hours: h})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// MoodTally counts recorded moods, most frequent first. Ties keep the
// order in which the moods first appear.
func MoodTally(records []ActivityRecord) []MoodCount {
	index := map[string]int{}
	var out []MoodCount
	for _, r := range records {
		if !r.HasMood() {
			continue
		}
		i, ok := index[r.Mood]
		if !ok {
			i = len(out)
			index[r.Mood] = i
			out = append(out, MoodCount{Mood: r.Mood})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// TopMoods returns at most n entries from the head of a tally. A negative
// n yields an empty result.
func TopMoods(tally []MoodCount, n int) []MoodCount {
	if n < 0 {
		n = 0
	}
	if n < len(tally) {
		tally = tally[:n]
	}
	return append([]MoodCount(nil), tally...)
}
