// Package plan turns farm signals (latest check-in, recent logs, forecast)
// into a prioritized task list and multi-day risk insights. Rules run in a
// fixed order and the task list is truncated to the first MaxTasks in that
// order, so rule order is part of the contract.
package plan

import (
	"fmt"
	"sort"
	"time"

	"tablegrape/pkg/weather"
)

// Generate evaluates every rule against in and returns tasks plus insights.
func Generate(in Input) ([]Task, []Insight) {
	return generateTasks(in), generateInsights(in)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(earlier, later time.Time) int {
	return int(dateOf(later).Sub(dateOf(earlier)).Hours() / 24)
}

func generateTasks(in Input) []Task {
	var tasks []Task
	days := in.Forecast.Days

	// Rules 1-3: today's forecast
	if len(days) > 0 {
		today := days[0]
		if today.TempMin != nil && *today.TempMin < MinTempThreshold {
			tasks = append(tasks, Task{
				Title:    "Monitor for frost risk",
				Reason:   fmt.Sprintf("Low temperature forecast (%.1f°C)", *today.TempMin),
				Priority: "high",
				Tags:     []string{"weather", "frost"},
			})
		}
		if today.TempMax != nil && *today.TempMax > MaxTempThreshold {
			tasks = append(tasks, Task{
				Title:    "Monitor for heat stress",
				Reason:   fmt.Sprintf("High temperature forecast (%.1f°C)", *today.TempMax),
				Priority: "medium",
				Tags:     []string{"weather", "heat"},
			})
		}
		if today.PrecipitationSum > PrecipitationThreshold {
			tasks = append(tasks, Task{
				Title:    "Check drainage after rain",
				Reason:   fmt.Sprintf("Significant rainfall expected (%.1fmm)", today.PrecipitationSum),
				Priority: "medium",
				Tags:     []string{"weather", "drainage"},
			})
		}
	}

	// Rules 4-6: latest check-in
	if st := in.Status; st != nil {
		if st.MildewSigns {
			tasks = append(tasks, Task{
				Title:    "Re-scout for mildew",
				Reason:   "Mildew signs detected in last check-in",
				Priority: "high",
				BlockID:  st.BlockID,
				Tags:     []string{"scouting", "disease"},
			})
		}
		if st.LastIrrigation == "4plus_days" && maxTempOver(days, 3) > MaxTempThreshold {
			tasks = append(tasks, Task{
				Title:    "Check irrigation needs",
				Reason:   "Last irrigation was 4+ days ago and high heat expected",
				Priority: "high",
				BlockID:  st.BlockID,
				Tags:     []string{"irrigation"},
			})
		}
		if st.LastSpray == "dont_know" {
			tasks = append(tasks, Task{
				Title:    "Record last spray (if any)",
				Reason:   "Spray history needed for safety and planning",
				Priority: "medium",
				BlockID:  st.BlockID,
				Tags:     []string{"spray", "safety"},
			})
		}
	}

	// Rule 7: irrigation recency
	if len(in.Irrigation) == 0 {
		tasks = append(tasks, Task{
			Title:    "Check irrigation needs",
			Reason:   "No irrigation logged in the last 7 days",
			Priority: "medium",
			Tags:     []string{"irrigation"},
		})
	} else if since := daysBetween(in.Irrigation[len(in.Irrigation)-1].IrrigatedAt, in.Today); since > IrrigationDaysSince {
		tasks = append(tasks, Task{
			Title:    "Check irrigation needs",
			Reason:   fmt.Sprintf("Last irrigation was %d days ago", since),
			Priority: "medium",
			Tags:     []string{"irrigation"},
		})
	}

	// Rule 8: scouting recency
	if len(in.Scouting) == 0 {
		tasks = append(tasks, Task{
			Title:    "Perform field scouting",
			Reason:   "No scouting logged in the last 7 days",
			Priority: "high",
			Tags:     []string{"scouting"},
		})
	} else if since := daysBetween(in.Scouting[len(in.Scouting)-1].ObservedAt, in.Today); since > ScoutingDaysSince {
		tasks = append(tasks, Task{
			Title:    "Perform field scouting",
			Reason:   fmt.Sprintf("Last scouting was %d days ago", since),
			Priority: "high",
			Tags:     []string{"scouting"},
		})
	}

	// Rule 9: one follow-up per fresh high-severity observation
	for _, s := range in.Scouting {
		if s.Severity < HighSeverityIssue {
			continue
		}
		since := daysBetween(s.ObservedAt, in.Today)
		if since <= IssueFollowupDays {
			tasks = append(tasks, Task{
				Title:    fmt.Sprintf("Follow up on %s", s.IssueType),
				Reason:   fmt.Sprintf("High severity issue detected %d days ago", since),
				Priority: "high",
				BlockID:  s.BlockID,
				Tags:     []string{"scouting", "issue-followup"},
			})
		}
	}

	// Rule 10: brix sampling recency
	if len(in.Brix) == 0 {
		tasks = append(tasks, Task{
			Title:    "Collect brix samples",
			Reason:   "No brix samples logged in the last 7 days",
			Priority: "medium",
			Tags:     []string{"harvest", "quality"},
		})
	} else if since := daysBetween(in.Brix[len(in.Brix)-1].SampledAt, in.Today); since > BrixSamplingDays {
		tasks = append(tasks, Task{
			Title:    "Collect brix samples",
			Reason:   fmt.Sprintf("Last brix sample was %d days ago", since),
			Priority: "medium",
			Tags:     []string{"harvest", "quality"},
		})
	}

	if len(tasks) > MaxTasks {
		tasks = tasks[:MaxTasks]
	}
	return tasks
}

// maxTempOver returns the highest forecast max temperature over the first n
// days, treating missing values as 0.
func maxTempOver(days []weather.Day, n int) float64 {
	max := 0.0
	for i, d := range days {
		if i >= n {
			break
		}
		if d.TempMax != nil && *d.TempMax > max {
			max = *d.TempMax
		}
	}
	return max
}

func generateInsights(in Input) []Insight {
	var insights []Insight
	days := in.Forecast.Days
	if len(days) == 0 {
		return insights
	}
	st := in.Status

	// Sweetness check during harvest
	if st != nil && st.Stage == "harvest" && st.SweetnessBrix != nil && *st.SweetnessBrix < HarvestBrixTarget {
		insights = append(insights, Insight{
			Title: "Sweetness low",
			Summary: fmt.Sprintf(
				"Current Brix is %.1f°Bx (target: %.1f°Bx). Check Brix again in 2 days; adjust irrigation timing; avoid stress spikes.",
				*st.SweetnessBrix, HarvestBrixTarget),
			Risk:    "medium",
			Window:  windowLabel(days, 0, 1),
			Actions: []string{"Check Brix again in 2 days", "Adjust irrigation timing", "Avoid stress spikes"},
		})
	}

	// Cracking risk
	hasCracking := st != nil && st.Cracking
	var heavyRainDays []int
	for i, d := range days {
		if d.PrecipitationSum > HeavyRainThreshold {
			heavyRainDays = append(heavyRainDays, i)
		}
	}
	if hasCracking || len(heavyRainDays) > 0 {
		var riskDays []int
		if hasCracking {
			riskDays = append(riskDays, 0)
		}
		riskDays = append(riskDays, heavyRainDays...)
		riskDays = uniqueSorted(riskDays)
		if len(riskDays) > 3 {
			riskDays = riskDays[:3]
		}
		risk := "medium"
		if hasCracking {
			risk = "high"
		}
		insights = append(insights, Insight{
			Title:   "Cracking risk window",
			Summary: "Cracking detected or heavy rain expected. Protect canopy and avoid sudden irrigation changes.",
			Risk:    risk,
			Window:  windowLabel(days, riskDays[0], riskDays[len(riskDays)-1]),
			Actions: []string{"Scout for cracks", "Protect canopy if possible", "Avoid sudden irrigation changes"},
		})
	}

	// Mildew watch: rain as a humidity proxy
	hasMildew := st != nil && st.MildewSigns
	var rainyDays []int
	for i, d := range days {
		if d.PrecipitationSum > RainyDayThreshold {
			rainyDays = append(rainyDays, i)
		}
	}
	if hasMildew || len(rainyDays) >= 2 {
		riskDays := rainyDays
		if len(riskDays) > 5 {
			riskDays = riskDays[:5]
		}
		if len(riskDays) == 0 {
			riskDays = []int{0, 1, 2}
		}
		end := riskDays[len(riskDays)-1]
		if end > 6 {
			end = 6
		}
		risk := "medium"
		if hasMildew {
			risk = "high"
		}
		insights = append(insights, Insight{
			Title:   "Mildew watch",
			Summary: "Mildew signs detected or humid/rainy conditions expected. Monitor closely and re-scout.",
			Risk:    risk,
			Window:  windowLabel(days, riskDays[0], end),
			Actions: []string{"Re-scout for mildew", "Monitor humidity", "Check canopy ventilation"},
		})
	}

	// Heat stress
	var highHeatDays []int
	for i, d := range days {
		if d.TempMax != nil && *d.TempMax > MaxTempThreshold {
			highHeatDays = append(highHeatDays, i)
		}
	}
	if len(highHeatDays) > 0 {
		first := highHeatDays[0]
		insights = append(insights, Insight{
			Title: "Heat stress",
			Summary: fmt.Sprintf(
				"High temperatures expected (%.1f°C+). Adjust irrigation timing to early morning or evening.",
				*days[first].TempMax),
			Risk:    "medium",
			Window:  windowLabel(days, first, 6),
			Actions: []string{"Irrigate early morning or evening", "Monitor for sunburn", "Check canopy coverage"},
		})
	}

	return insights
}

func uniqueSorted(xs []int) []int {
	seen := map[int]struct{}{}
	var out []int
	for _, x := range xs {
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		out = append(out, x)
	}
	sort.Ints(out)
	return out
}

const windowFallback = "Next 7 days"

// windowLabel renders a day-index range as weekday abbreviations: a single
// day as "Tue", a range as "Tue-Fri". Out-of-range indices or unparseable
// dates render the fallback label.
func windowLabel(days []weather.Day, startIdx, endIdx int) string {
	if startIdx >= len(days) || endIdx >= len(days) {
		return windowFallback
	}
	start, ok := parseDay(days[startIdx].Date)
	if !ok {
		return windowFallback
	}
	end, ok := parseDay(days[endIdx].Date)
	if !ok {
		return windowFallback
	}
	if startIdx == endIdx {
		return start.Format("Mon")
	}
	return start.Format("Mon") + "-" + end.Format("Mon")
}

func parseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// SummarizeWeather renders today's conditions for the plan response.
func SummarizeWeather(fc weather.Forecast) string {
	if len(fc.Days) == 0 {
		return "Weather data unavailable"
	}
	today := fc.Days[0]
	out := ""
	if today.TempMin != nil && today.TempMax != nil {
		out = fmt.Sprintf("Temp: %.1f°C - %.1f°C", *today.TempMin, *today.TempMax)
	}
	if out != "" {
		return out + fmt.Sprintf(", Rain: %.1fmm", today.PrecipitationSum)
	}
	return fmt.Sprintf("Rain: %.1fmm", today.PrecipitationSum)
}
