package advice

import "tablegrape/pkg/ai"

// Advice is a weekly summary plus action bullets. The shape is identical
// whether the model or the rule fallback produced it.
type Advice struct {
	Summary string   `json:"summary"`
	Bullets []string `json:"bullets"`
}

const (
	summaryMaxRunes = 200
	bulletMaxRunes  = 80
	minBullets      = 4
	maxBullets      = 6
)

// Generic bullets used to pad short lists so callers always get at least
// four actionable lines.
var defaultBullets = []string{
	"Do regular field scouting",
	"Maintain irrigation schedule",
	"Record observations in the app",
	"Consult local agriculture officer for specific issues",
}

// finalize enforces the output contract on any advice, whichever path
// produced it.
func finalize(a Advice) Advice {
	a.Summary = ai.Clamp(a.Summary, summaryMaxRunes)
	if len(a.Bullets) < minBullets {
		a.Bullets = append(a.Bullets, defaultBullets...)
	}
	a.Bullets = ai.ClampList(a.Bullets, maxBullets, bulletMaxRunes)
	return a
}
