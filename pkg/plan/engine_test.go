package plan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablegrape/entities"
	"tablegrape/pkg/weather"
)

var today = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC) // a Tuesday

func fptr(v float64) *float64 { return &v }

func forecastDays(days ...weather.Day) weather.Forecast {
	return weather.Forecast{Days: days}
}

func mildDay(date string) weather.Day {
	return weather.Day{Date: date, TempMin: fptr(15), TempMax: fptr(28)}
}

func mildWeek() weather.Forecast {
	return forecastDays(
		mildDay("2026-09-01"), mildDay("2026-09-02"), mildDay("2026-09-03"),
		mildDay("2026-09-04"), mildDay("2026-09-05"), mildDay("2026-09-06"),
		mildDay("2026-09-07"),
	)
}

func TestFrostScenario(t *testing.T) {
	fc := mildWeek()
	fc.Days[0].TempMin = fptr(2.0)

	tasks, _ := Generate(Input{Forecast: fc, Today: today})

	require.Len(t, tasks, 4)
	assert.Equal(t, "Monitor for frost risk", tasks[0].Title)
	assert.Equal(t, "high", tasks[0].Priority)
	assert.Equal(t, "Low temperature forecast (2.0°C)", tasks[0].Reason)
	assert.Equal(t, "Check irrigation needs", tasks[1].Title)
	assert.Equal(t, "Perform field scouting", tasks[2].Title)
	assert.Equal(t, "Collect brix samples", tasks[3].Title)
}

func TestDeterminism(t *testing.T) {
	fc := mildWeek()
	fc.Days[0].TempMin = fptr(2.0)
	fc.Days[0].PrecipitationSum = 12
	in := Input{Forecast: fc, Today: today}

	t1, i1 := Generate(in)
	t2, i2 := Generate(in)
	assert.Equal(t, t1, t2)
	assert.Equal(t, i1, i2)
}

func TestMissingTempsDoNotTrigger(t *testing.T) {
	fc := forecastDays(weather.Day{Date: "2026-09-01"}) // no temps at all
	tasks, _ := Generate(Input{Forecast: fc, Today: today})
	for _, task := range tasks {
		assert.NotEqual(t, "Monitor for frost risk", task.Title)
		assert.NotEqual(t, "Monitor for heat stress", task.Title)
	}
}

func TestStatusRules(t *testing.T) {
	blockID := "b-1"
	st := &entities.CropStatus{
		BlockID:        &blockID,
		Stage:          "fruit_set",
		MildewSigns:    true,
		LastIrrigation: "4plus_days",
		LastSpray:      "dont_know",
	}
	fc := mildWeek()
	fc.Days[1].TempMax = fptr(37)

	tasks, _ := Generate(Input{Status: st, Forecast: fc, Today: today})

	titles := make([]string, len(tasks))
	for i, task := range tasks {
		titles[i] = task.Title
	}
	assert.Contains(t, titles, "Re-scout for mildew")
	assert.Contains(t, titles, "Record last spray (if any)")

	// rule 5: 4plus_days plus >35 max in day0..2
	found := false
	for _, task := range tasks {
		if task.Reason == "Last irrigation was 4+ days ago and high heat expected" {
			found = true
			assert.Equal(t, "high", task.Priority)
			require.NotNil(t, task.BlockID)
			assert.Equal(t, blockID, *task.BlockID)
		}
	}
	assert.True(t, found)
}

func TestRecencyRules(t *testing.T) {
	in := Input{
		Forecast:   mildWeek(),
		Today:      today,
		Irrigation: []entities.IrrigationLog{{IrrigatedAt: today.AddDate(0, 0, -5)}},
		Scouting:   []entities.ScoutingLog{{ObservedAt: today.AddDate(0, 0, -2), Severity: 0}},
		Brix:       []entities.BrixSample{{SampledAt: today.AddDate(0, 0, -16)}},
	}
	tasks, _ := Generate(in)

	reasons := make([]string, len(tasks))
	for i, task := range tasks {
		reasons[i] = task.Reason
	}
	assert.Contains(t, reasons, "Last irrigation was 5 days ago")
	assert.Contains(t, reasons, "Last brix sample was 16 days ago")
	assert.NotContains(t, reasons, "No scouting logged in the last 7 days")
}

func TestHighSeverityFollowUps(t *testing.T) {
	in := Input{
		Forecast: mildWeek(),
		Today:    today,
		Scouting: []entities.ScoutingLog{
			{ObservedAt: today.AddDate(0, 0, -1), IssueType: "mildew", Severity: 2},
			{ObservedAt: today.AddDate(0, 0, -2), IssueType: "thrips", Severity: 3},
			{ObservedAt: today.AddDate(0, 0, -5), IssueType: "old rot", Severity: 3}, // too old
			{ObservedAt: today.AddDate(0, 0, -1), IssueType: "minor spots", Severity: 1},
		},
		Irrigation: []entities.IrrigationLog{{IrrigatedAt: today}},
		Brix:       []entities.BrixSample{{SampledAt: today}},
	}
	tasks, _ := Generate(in)

	var followUps []string
	for _, task := range tasks {
		if len(task.Tags) == 2 && task.Tags[1] == "issue-followup" {
			followUps = append(followUps, task.Title)
		}
	}
	assert.Equal(t, []string{"Follow up on mildew", "Follow up on thrips"}, followUps)
}

func TestTaskCap(t *testing.T) {
	st := &entities.CropStatus{
		MildewSigns:    true,
		LastIrrigation: "4plus_days",
		LastSpray:      "dont_know",
	}
	fc := mildWeek()
	fc.Days[0].TempMin = fptr(2)
	fc.Days[0].TempMax = fptr(38)
	fc.Days[0].PrecipitationSum = 15

	// rules 1,2,3,4,5,6 fire, then 7,8 for empty logs; rule 10 would be the
	// ninth and must be truncated away
	tasks, _ := Generate(Input{Status: st, Forecast: fc, Today: today})

	require.Len(t, tasks, MaxTasks)
	assert.Equal(t, "Perform field scouting", tasks[7].Title)
	for _, task := range tasks {
		assert.NotEqual(t, "Collect brix samples", task.Title)
	}
}

func TestSweetnessInsight(t *testing.T) {
	st := &entities.CropStatus{Stage: "harvest", SweetnessBrix: fptr(13.2)}
	_, insights := Generate(Input{Status: st, Forecast: mildWeek(), Today: today})

	require.NotEmpty(t, insights)
	assert.Equal(t, "Sweetness low", insights[0].Title)
	assert.Equal(t, "medium", insights[0].Risk)
	assert.Equal(t, "Tue-Wed", insights[0].Window)
	assert.Len(t, insights[0].Actions, 3)
}

func TestCrackingInsightRisk(t *testing.T) {
	st := &entities.CropStatus{Stage: "veraison", Cracking: true}
	_, insights := Generate(Input{Status: st, Forecast: mildWeek(), Today: today})
	require.NotEmpty(t, insights)
	assert.Equal(t, "Cracking risk window", insights[0].Title)
	assert.Equal(t, "high", insights[0].Risk)
	assert.Equal(t, "Tue", insights[0].Window)

	fc := mildWeek()
	fc.Days[2].PrecipitationSum = 25
	_, insights = Generate(Input{Forecast: fc, Today: today})
	require.NotEmpty(t, insights)
	assert.Equal(t, "Cracking risk window", insights[0].Title)
	assert.Equal(t, "medium", insights[0].Risk)
	assert.Equal(t, "Thu", insights[0].Window)
}

func TestMildewInsightFromRain(t *testing.T) {
	fc := mildWeek()
	fc.Days[1].PrecipitationSum = 6
	fc.Days[3].PrecipitationSum = 8
	_, insights := Generate(Input{Forecast: fc, Today: today})

	require.NotEmpty(t, insights)
	assert.Equal(t, "Mildew watch", insights[0].Title)
	assert.Equal(t, "medium", insights[0].Risk)
	assert.Equal(t, "Wed-Fri", insights[0].Window)
}

func TestHeatInsightWindow(t *testing.T) {
	fc := mildWeek()
	fc.Days[2].TempMax = fptr(36.5)
	_, insights := Generate(Input{Forecast: fc, Today: today})

	require.NotEmpty(t, insights)
	assert.Equal(t, "Heat stress", insights[0].Title)
	assert.Equal(t, "Thu-Mon", insights[0].Window)
}

func TestWindowFallbackForMissingDates(t *testing.T) {
	fc := forecastDays(
		weather.Day{TempMax: fptr(40)}, // no date
	)
	_, insights := Generate(Input{Forecast: fc, Today: today})
	require.NotEmpty(t, insights)
	assert.Equal(t, "Next 7 days", insights[0].Window)
}

func TestNoForecastNoInsights(t *testing.T) {
	st := &entities.CropStatus{Stage: "harvest", SweetnessBrix: fptr(10), Cracking: true}
	_, insights := Generate(Input{Status: st, Today: today})
	assert.Empty(t, insights)
}
