package advice

import (
	"fmt"
	"strings"

	"tablegrape/entities"
	"tablegrape/pkg/weather"
)

// ruleAdvice is the deterministic path used whenever generation is
// unavailable or fails. It never consults model output.
func ruleAdvice(status *entities.CropStatus, forecast weather.Forecast, tasks []contextTask) Advice {
	var summaryParts []string
	var bullets []string

	if status != nil {
		switch status.Stage {
		case "flowering":
			summaryParts = append(summaryParts, "Your grapes are flowering. This is a critical time for fruit set.")
			bullets = append(bullets,
				"Monitor for pests and diseases daily",
				"Avoid heavy irrigation during flowering")
		case "fruit_set":
			summaryParts = append(summaryParts, "Small grapes are forming. Focus on healthy growth.")
			bullets = append(bullets,
				"Check for sunburn on young berries",
				"Maintain consistent irrigation")
		case "veraison":
			summaryParts = append(summaryParts, "Grapes are changing color. Harvest is approaching.")
			bullets = append(bullets,
				"Monitor sweetness (Brix) regularly",
				"Watch for bird damage")
		case "harvest":
			summaryParts = append(summaryParts, "Harvest time! Ensure quality and timing.")
			bullets = append(bullets,
				"Check Brix before picking",
				"Harvest in cool morning hours")
		}

		if status.MildewSigns {
			bullets = append(bullets, "Mildew detected: Monitor closely and consider consulting local agri officer")
		}
		if status.Cracking {
			bullets = append(bullets, "Cracking seen: Avoid sudden irrigation changes")
		}
		if status.Sunburn {
			bullets = append(bullets, "Sunburn spots: Check canopy coverage")
		}
		if status.PestSigns {
			bullets = append(bullets, "Pests observed: Do morning scouting to identify type")
		}
	}

	if len(forecast.Days) > 0 {
		next3 := forecast.Days
		if len(next3) > 3 {
			next3 = next3[:3]
		}
		var heavyRain, highTemp bool
		for _, d := range next3 {
			if d.PrecipitationSum > 20 {
				heavyRain = true
			}
			if d.TempMax != nil && *d.TempMax > 35 {
				highTemp = true
			}
		}
		if heavyRain {
			bullets = append(bullets, "Heavy rain expected: Avoid irrigating before rain, check drainage")
		}
		if highTemp {
			bullets = append(bullets, "High temperatures: Irrigate early morning or evening")
		}
	}

	var highPriority int
	for _, t := range tasks {
		if t.Priority == "high" {
			highPriority++
		}
	}
	if highPriority > 0 {
		bullets = append(bullets, fmt.Sprintf("You have %d high priority tasks today", highPriority))
	}

	if len(summaryParts) == 0 {
		summaryParts = append(summaryParts, "Monitor your farm regularly and follow best practices.")
	}

	return finalize(Advice{
		Summary: strings.Join(summaryParts, " "),
		Bullets: bullets,
	})
}
