package core

import (
	"sort"
	"strings"
)

// DefaultMaxWords caps the number of words placed in the cloud.
const DefaultMaxWords = 200

// WordWeight is a word and how often it occurs in the mood text.
type WordWeight struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// MoodText joins every recorded mood with single spaces. Repetition
// carries the frequency.
func MoodText(records []ActivityRecord) string {
	var b strings.Builder
	for _, r := range records {
		if !r.HasMood() {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(r.Mood)
	}
	return b.String()
}

// WordFrequencies splits text on whitespace and counts each word, most
// frequent first, ties in order of first appearance. At most maxWords
// entries are returned.
func WordFrequencies(text string, maxWords int) ([]WordWeight, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, ErrEmptyMoodText
	}
	index := map[string]int{}
	var out []WordWeight
	for _, w := range fields {
		i, ok := index[w]
		if !ok {
			i = len(out)
			index[w] = i
			out = append(out, WordWeight{Word: w})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if maxWords > 0 && len(out) > maxWords {
		out = out[:maxWords]
	}
	return out, nil
}
