// Package dashboard turns an aggregated report into the page model the
// renderer shows: two headline numbers followed by four ECharts charts.
package dashboard

import (
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"activitylog/internal/core"
)

// Page and section titles.
const (
	PageTitle       = "The Power of Data: How I Used a Dashboard to Monitor and Improve My Activities in Two Weeks"
	SleepHeading    = "Total Sleeping Time"
	PositiveHeading = "Positive Moods"

	PieTitle       = "A Slice of Life: A Pie Chart of My Activities for October 10-24"
	SleepTitle     = "My Sleep Patterns in Two Weeks: A Chart of My Daily Sleep Duration and Quality for October 10-24"
	WordCloudTitle = "How I Felt in Two Weeks: A Word Cloud of My Emotions for October 10-24"
	MoodBarTitle   = "Two Weeks of Emotions: A Bar Chart of My Top 10 Moods and Their Frequencies"

	SleepXAxisName = "October"
	SleepYAxisName = "Total Sleep Duration (hours)"
)

// Chart element ids, in render order.
const (
	ChartPie       = "chart-pie"
	ChartSleep     = "chart-sleep"
	ChartWordCloud = "chart-wordcloud"
	ChartMoods     = "chart-moods"
)

// DefaultAssetsHost serves echarts.min.js and echarts-wordcloud.min.js.
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

var (
	// Set3 is the qualitative palette used for category slices.
	Set3 = []string{
		"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3", "#fdb462",
		"#b3de69", "#fccde5", "#d9d9d9", "#bc80bd", "#ccebc5", "#ffed6f",
	}

	// MoodPalette colours one bar per mood.
	MoodPalette = []string{
		"#636efa", "#ef553b", "#00cc96", "#ab63fa", "#ffa15a",
		"#19d3f3", "#ff6692", "#b6e880", "#ff97ff", "#fecb52",
	}
)

type (
	Options struct {
		AssetsHost  string
		Palette     []string
		MoodPalette []string
		ChartWidth  string
		ChartHeight string
	}

	// Chart is one rendered section. Option holds the serialized ECharts
	// option document.
	Chart struct {
		ID      string
		Heading string
		Option  template.JS
	}

	// Headline is one of the two boxes above the charts.
	Headline struct {
		Heading string
		Hours   int64
	}

	Page struct {
		Title      string
		AssetsHost string
		Headlines  []Headline
		Charts     []Chart
	}
)

func DefaultOptions() Options {
	return Options{
		AssetsHost:  DefaultAssetsHost,
		Palette:     Set3,
		MoodPalette: MoodPalette,
		ChartWidth:  "900px",
		ChartHeight: "500px",
	}
}

// option is satisfied by every go-echarts chart.
type option interface {
	Validate()
	JSON() map[string]interface{}
}

// Build lays out the report in display order: sleep and positive-mood
// headlines, then pie, sleep line, word cloud and top-moods bar.
func Build(report core.Report, o Options) (Page, error) {
	if len(report.Words) == 0 {
		return Page{}, core.ErrEmptyMoodText
	}
	o = withDefaults(o)

	sections := []struct {
		id, heading string
		chart       option
	}{
		{ChartPie, PieTitle, categoryPie(report.Categories, o)},
		{ChartSleep, SleepTitle, sleepLine(report.DailySleep, o)},
		{ChartWordCloud, WordCloudTitle, moodCloud(report.Words, o)},
		{ChartMoods, MoodBarTitle, moodBar(report.TopMoods, o)},
	}

	page := Page{
		Title:      PageTitle,
		AssetsHost: o.AssetsHost,
		Headlines: []Headline{
			{Heading: SleepHeading, Hours: report.Headline.SleepHours.Whole()},
			{Heading: PositiveHeading, Hours: report.Headline.PositiveHours.Whole()},
		},
		Charts: make([]Chart, 0, len(sections)),
	}
	for _, s := range sections {
		raw, err := encode(s.chart)
		if err != nil {
			return Page{}, fmt.Errorf("encode %s: %w", s.id, err)
		}
		page.Charts = append(page.Charts, Chart{ID: s.id, Heading: s.heading, Option: raw})
	}
	return page, nil
}

func withDefaults(o Options) Options {
	d := DefaultOptions()
	if o.AssetsHost == "" {
		o.AssetsHost = d.AssetsHost
	}
	if len(o.Palette) == 0 {
		o.Palette = d.Palette
	}
	if len(o.MoodPalette) == 0 {
		o.MoodPalette = d.MoodPalette
	}
	if o.ChartWidth == "" {
		o.ChartWidth = d.ChartWidth
	}
	if o.ChartHeight == "" {
		o.ChartHeight = d.ChartHeight
	}
	return o
}

func encode(c option) (template.JS, error) {
	c.Validate()
	b, err := json.Marshal(c.JSON())
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

func initOpts(o Options) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		Width:      o.ChartWidth,
		Height:     o.ChartHeight,
		AssetsHost: o.AssetsHost,
	})
}

func categoryPie(totals []core.CategoryHours, o Options) *charts.Pie {
	data := make([]opts.PieData, 0, len(totals))
	for _, c := range totals {
		data = append(data, opts.PieData{Name: c.Name, Value: c.Hours.Float64()})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		initOpts(o),
		charts.WithTitleOpts(opts.Title{Title: PieTitle}),
		charts.WithColorsOpts(opts.Colors(o.Palette)),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Formatter: "{b}: {c} hours ({d}%)"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Orient: "vertical", Left: "right", Top: "middle"}),
	)
	pie.AddSeries("Duration (hours)", data,
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"30%", "75%"}}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{d}%"}),
	)
	return pie
}

func sleepLine(days []core.DayHours, o Options) *charts.Line {
	x := make([]int, 0, len(days))
	data := make([]opts.LineData, 0, len(days))
	for _, d := range days {
		x = append(x, d.Day)
		data = append(data, opts.LineData{Value: d.Hours.Float64()})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts(o),
		charts.WithTitleOpts(opts.Title{Title: SleepTitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: SleepXAxisName}),
		charts.WithYAxisOpts(opts.YAxis{Name: SleepYAxisName}),
	)
	line.SetXAxis(x).AddSeries("Sleep", data,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}),
		charts.WithMarkPointNameTypeItemOpts(
			opts.MarkPointNameTypeItem{Name: "Most", Type: "max"},
			opts.MarkPointNameTypeItem{Name: "Least", Type: "min"},
		),
	)
	return line
}

func moodCloud(words []core.WordWeight, o Options) *charts.WordCloud {
	data := make([]opts.WordCloudData, 0, len(words))
	for _, w := range words {
		data = append(data, opts.WordCloudData{Name: w.Word, Value: w.Count})
	}

	// A series without a text colour gets a JavaScript function default,
	// which does not survive JSON encoding. dashboard.js cycles the
	// palette per word; the first colour is the static fallback.
	color := o.MoodPalette[0]
	wc := charts.NewWordCloud()
	wc.SetGlobalOptions(
		initOpts(o),
		charts.WithTitleOpts(opts.Title{Title: WordCloudTitle}),
		charts.WithColorsOpts(opts.Colors(o.MoodPalette)),
	)
	wc.AddSeries("Mood", data,
		charts.WithTextStyleOpts(opts.TextStyle{Color: color, Normal: &opts.TextStyle{Color: color}}),
	)
	return wc
}

func moodBar(top []core.MoodCount, o Options) *charts.Bar {
	x := make([]string, 0, len(top))
	data := make([]opts.BarData, 0, len(top))
	for i, m := range top {
		x = append(x, m.Mood)
		data = append(data, opts.BarData{
			Name:      m.Mood,
			Value:     m.Count,
			ItemStyle: &opts.ItemStyle{Color: o.MoodPalette[i%len(o.MoodPalette)]},
		})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(o),
		charts.WithTitleOpts(opts.Title{Title: MoodBarTitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Mood"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Count"}),
	)
	bar.SetXAxis(x).AddSeries("Count", data)
	return bar
}
