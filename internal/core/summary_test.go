package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(day int, desc, hours, mood string) ActivityRecord {
	return ActivityRecord{
		Date:        NewDate(2023, 10, day),
		Description: desc,
		Duration:    MustHours(hours),
		Mood:        mood,
	}
}

func sampleRecords() []ActivityRecord {
	return []ActivityRecord{
		record(10, "Sleep", "7", "Refreshed"),
		record(10, "Class", "2.5", "Productive"),
		record(10, "Assignment (PM)", "1.25", "Stressed"),
		record(11, "Sleep ", "6.5", "Tired"),
		record(11, "Lunch", "0.75", "Happy"),
		record(11, "Personal Care/Preparation", "0.5", ""),
		record(12, "Phone", "1.5", "Happy"),
		record(12, "Organization Work", "2", "Productive"),
		record(12, "Sleep", "1", "Happy"),
	}
}

func TestSummarizeExample(t *testing.T) {
	records := []ActivityRecord{
		record(1, "Sleep", "7", "Happy"),
		record(1, "Sleep", "1", "Happy"),
		record(1, "Class", "2", "Sad"),
	}
	report, err := Summarize(records, DefaultSummaryOptions())
	require.NoError(t, err)

	assert.True(t, report.Headline.SleepHours.Equal(MustHours("8")))
	require.Len(t, report.Categories, 2)
	assert.Equal(t, CategorySleep, report.Categories[0].Name)
	assert.True(t, report.Categories[0].Hours.Equal(MustHours("8")))
	assert.Equal(t, CategoryAcademic, report.Categories[1].Name)
	assert.True(t, report.Categories[1].Hours.Equal(MustHours("2")))
}

func TestCategoryTotalsPartitionAllDurations(t *testing.T) {
	records := sampleRecords()
	Enrich(records, DefaultCategoryRules())

	var sum Hours
	for _, c := range CategoryTotals(records) {
		sum = sum.Add(c.Hours)
	}
	assert.True(t, sum.Equal(SumHours(records)), "sum=%s total=%s", sum, SumHours(records))

	var display Hours
	for _, c := range ConsolidateForDisplay(CategoryTotals(records), DisplaySubBuckets()) {
		display = display.Add(c.Hours)
	}
	assert.True(t, display.Equal(SumHours(records)))
}

func TestConsolidateForDisplay(t *testing.T) {
	totals := []CategoryHours{
		{Name: CategorySleep, Hours: MustHours("8")},
		{Name: "Personal Care/Preparation", Hours: MustHours("1")},
		{Name: CategoryOthers, Hours: MustHours("2")},
		{Name: "Organization Work", Hours: MustHours("0.5")},
	}
	got := ConsolidateForDisplay(totals, DisplaySubBuckets())

	require.Len(t, got, 2)
	assert.Equal(t, CategorySleep, got[0].Name)
	assert.Equal(t, CategoryOthers, got[1].Name)
	assert.True(t, got[1].Hours.Equal(MustHours("3.5")))
}

func TestDailySleep(t *testing.T) {
	records := []ActivityRecord{
		record(12, "Sleep", "1", ""),
		record(10, "Sleep", "7", ""),
		record(12, " Sleep", "6", ""),
		record(11, "Lunch", "1", ""),
		record(10, "Sleep in car", "1", ""),
	}
	got := DailySleep(records)

	require.Len(t, got, 2)
	assert.Equal(t, 10, got[0].Day)
	assert.True(t, got[0].Hours.Equal(MustHours("7")))
	assert.Equal(t, 12, got[1].Day)
	assert.True(t, got[1].Hours.Equal(MustHours("7")))
}

func TestMoodTally(t *testing.T) {
	records := []ActivityRecord{
		record(1, "a", "1", "Happy"),
		record(1, "a", "1", "Happy"),
		record(1, "a", "1", "Sad"),
	}
	assert.Equal(t, []MoodCount{{"Happy", 2}, {"Sad", 1}}, MoodTally(records))
}

func TestMoodTallyTiesAndMissing(t *testing.T) {
	records := []ActivityRecord{
		record(1, "a", "1", "Calm"),
		record(1, "a", "1", ""),
		record(1, "a", "1", "Tired"),
		record(1, "a", "1", "Happy"),
		record(1, "a", "1", "Tired"),
		record(1, "a", "1", "Happy"),
	}
	got := MoodTally(records)
	assert.Equal(t, []MoodCount{{"Tired", 2}, {"Happy", 2}, {"Calm", 1}}, got)

	total := 0
	for _, m := range got {
		total += m.Count
	}
	assert.Equal(t, 5, total)
}

func TestTopMoods(t *testing.T) {
	var tally []MoodCount
	for i := 0; i < 12; i++ {
		tally = append(tally, MoodCount{Mood: string(rune('A' + i)), Count: 12 - i})
	}
	top := TopMoods(tally, DefaultTopMoods)
	require.Len(t, top, 10)
	assert.Equal(t, "A", top[0].Mood)
	assert.Equal(t, "J", top[9].Mood)

	assert.Len(t, TopMoods(tally[:3], DefaultTopMoods), 3)
	assert.Empty(t, TopMoods(tally, 0))
	assert.Empty(t, TopMoods(tally, -1))
	assert.Empty(t, TopMoods(nil, -5))
}

func TestTotalSleepMatchesDailySleep(t *testing.T) {
	records := []ActivityRecord{
		record(10, "Sleep ", "7", ""),
		record(10, "Sleep", "1", ""),
		record(11, "  Sleep", "6.5", ""),
		record(11, "Sleeping", "2", ""),
	}

	total := TotalSleep(records)
	assert.True(t, total.Equal(MustHours("14.5")), "got %s", total)

	sum := Hours{}
	for _, d := range DailySleep(records) {
		sum = sum.Add(d.Hours)
	}
	assert.True(t, total.Equal(sum))
}

func TestHeadline(t *testing.T) {
	records := sampleRecords()

	assert.True(t, TotalSleep(records).Equal(MustHours("14.5")))
	// Refreshed 7 + Productive 2.5 + Happy 0.75 + Happy 1.5 + Productive 2 + Happy 1
	assert.True(t, PositiveHours(records, DefaultPositiveMoods()).Equal(MustHours("14.75")))
	assert.True(t, PositiveHours(records, []string{"happy"}).IsZero())
}

func TestSummarizeReport(t *testing.T) {
	report, err := Summarize(sampleRecords(), DefaultSummaryOptions())
	require.NoError(t, err)

	assert.Equal(t, 9, report.Records)
	assert.EqualValues(t, 14, report.Headline.SleepHours.Whole())
	assert.EqualValues(t, 15, report.Headline.PositiveHours.Whole())
	assert.Len(t, report.DailySleep, 3)
	assert.Equal(t, "Happy", report.TopMoods[0].Mood)
	assert.Equal(t, 3, report.TopMoods[0].Count)
	assert.Equal(t, "Refreshed Productive Stressed Tired Happy Happy Productive Happy", report.MoodText)

	names := map[string]Hours{}
	for _, c := range report.Categories {
		names[c.Name] = c.Hours
	}
	assert.True(t, names[CategoryAcademic].Equal(MustHours("3.75")))
	assert.True(t, names[CategoryOthers].Equal(MustHours("2.5")))
}

func TestSummarizeWithoutMoodsFails(t *testing.T) {
	records := []ActivityRecord{record(1, "Sleep", "8", "")}
	_, err := Summarize(records, DefaultSummaryOptions())
	assert.ErrorIs(t, err, ErrEmptyMoodText)
}
