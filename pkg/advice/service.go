package advice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tablegrape/entities"
	"tablegrape/pkg/ai"
	"tablegrape/pkg/cache"
	logrepo "tablegrape/pkg/logbook/repository"
	statusrepo "tablegrape/pkg/status/repository"
	"tablegrape/pkg/weather"
)

// Service produces weekly advice for a farm. Generation is attempted first
// when a client is configured; any failure lands on the rule-based path.
// Results are cached per farm and language.
type Service struct {
	statuses statusrepo.StatusRepository
	logs     logrepo.LogbookRepository
	weather  *weather.Service
	client   ai.Client
	cache    *cache.TTL[Advice]
	now      func() time.Time
	log      zerolog.Logger
}

func NewService(
	statuses statusrepo.StatusRepository,
	logs logrepo.LogbookRepository,
	w *weather.Service,
	client ai.Client,
	c *cache.TTL[Advice],
	log zerolog.Logger,
) *Service {
	return &Service{
		statuses: statuses,
		logs:     logs,
		weather:  w,
		client:   client,
		cache:    c,
		now:      time.Now,
		log:      log,
	}
}

// contextTask is the minimal task summary fed into prompts and the
// fallback. The full plan engine is not consulted here; recent-activity
// gaps are enough signal for weekly advice.
type contextTask struct {
	Title    string
	Priority string
}

// GetWeeklyAdvice returns cached or freshly produced advice in the farm's
// preferred language.
func (s *Service) GetWeeklyAdvice(ctx context.Context, farm *entities.Farm) (Advice, error) {
	lang := farm.PreferredLanguage
	if lang == "" {
		lang = "en"
	}
	key := fmt.Sprintf("advice_%s_%s", farm.ID, lang)
	if a, ok := s.cache.Get(key); ok {
		return a, nil
	}

	status, err := s.statuses.Latest(farm.ID, nil)
	if err != nil {
		return Advice{}, err
	}
	forecast := s.weather.GetForecast(ctx, farm.Lat, farm.Lon, 7)

	since := s.now().AddDate(0, 0, -7)
	scouting, err := s.logs.RecentScouting(farm.ID, since)
	if err != nil {
		return Advice{}, err
	}
	irrigation, err := s.logs.RecentIrrigation(farm.ID, since)
	if err != nil {
		return Advice{}, err
	}

	var tasks []contextTask
	if len(scouting) == 0 {
		tasks = append(tasks, contextTask{Title: "Perform field scouting", Priority: "high"})
	}
	if len(irrigation) == 0 {
		tasks = append(tasks, contextTask{Title: "Check irrigation needs", Priority: "medium"})
	}

	a, ok := s.generate(ctx, farm, status, forecast, tasks, lang)
	if !ok {
		s.log.Info().Str("farm_id", farm.ID).Msg("advice: using rule-based fallback")
		a = ruleAdvice(status, forecast, tasks)
	}

	s.cache.Set(key, a)
	return a, nil
}

const adviceSystem = "You are a helpful agricultural advisor. Always respond with valid JSON only."

const strictJSONSuffix = "\n\nIMPORTANT: Return ONLY valid JSON. Do not include any text before or after the JSON object."

// generate runs at most two attempts: the second attempt happens only after
// a parse failure and carries a stricter JSON-only instruction. Transport
// and schema errors abort straight to the fallback.
func (s *Service) generate(ctx context.Context, farm *entities.Farm, status *entities.CropStatus, forecast weather.Forecast, tasks []contextTask, lang string) (Advice, bool) {
	if s.client == nil {
		return Advice{}, false
	}

	prompt := buildPrompt(farm, status, forecast, tasks, lang)
	for attempt := 0; attempt < 2; attempt++ {
		user := prompt
		if attempt > 0 {
			user = prompt + strictJSONSuffix
		}

		raw, err := s.client.GenerateJSON(ctx, adviceSystem, user)
		if err != nil {
			s.log.Warn().Err(err).Str("farm_id", farm.ID).Msg("advice: generation failed")
			return Advice{}, false
		}

		var parsed struct {
			Summary *string   `json:"summary"`
			Bullets *[]string `json:"bullets"`
		}
		if err := json.Unmarshal([]byte(ai.StripFences(raw)), &parsed); err != nil {
			s.log.Warn().Err(err).Int("attempt", attempt+1).Msg("advice: malformed JSON")
			continue
		}
		if parsed.Summary == nil || parsed.Bullets == nil {
			s.log.Warn().Str("farm_id", farm.ID).Msg("advice: response missing summary or bullets")
			return Advice{}, false
		}
		return finalize(Advice{Summary: *parsed.Summary, Bullets: *parsed.Bullets}), true
	}
	return Advice{}, false
}

func buildPrompt(farm *entities.Farm, status *entities.CropStatus, forecast weather.Forecast, tasks []contextTask, lang string) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("Farm location: %v, %v", farm.Lat, farm.Lon))
	if farm.CountryCode != "" {
		parts = append(parts, "Country: "+farm.CountryCode)
	}

	if status != nil {
		parts = append(parts, "Stage: "+status.Stage)
		if status.SweetnessBrix != nil {
			parts = append(parts, fmt.Sprintf("Brix: %v°Bx", *status.SweetnessBrix))
		}
		if issues := status.Issues(); len(issues) > 0 {
			parts = append(parts, "Issues: "+strings.Join(issues, ", "))
		}
		if status.LastIrrigation != "" {
			parts = append(parts, "Last irrigation: "+status.LastIrrigation)
		}
		if status.LastSpray != "" {
			parts = append(parts, "Last spray: "+status.LastSpray)
		}
		if status.Notes != "" {
			parts = append(parts, "Notes: "+ai.Clamp(status.Notes, 100))
		}
	}

	if len(forecast.Days) > 0 {
		days := forecast.Days
		if len(days) > 7 {
			days = days[:7]
		}
		var summary []string
		for _, d := range days {
			if d.TempMax != nil {
				summary = append(summary, fmt.Sprintf("%.1f°C, %.1fmm rain", *d.TempMax, d.PrecipitationSum))
			}
		}
		if len(summary) > 0 {
			parts = append(parts, "Weather (7 days): "+strings.Join(summary, ", "))
		}
	}

	if len(tasks) > 0 {
		if len(tasks) > 5 {
			tasks = tasks[:5]
		}
		titles := make([]string, len(tasks))
		for i, t := range tasks {
			titles[i] = t.Title
		}
		parts = append(parts, "Today's tasks: "+strings.Join(titles, ", "))
	}

	return fmt.Sprintf(`You are an agricultural advisor for table grape farmers. Provide weekly advice based on the farm data below.

%s

Farm data:
%s

Respond in %s language. Output a JSON object with:
- "summary": A 2-3 sentence summary (max 200 characters)
- "bullets": An array of 4-6 short bullet points (each max 80 characters)

Example format:
{
  "summary": "Your grapes are flowering. Monitor for pests and maintain irrigation.",
  "bullets": [
    "Do morning scouting for pests",
    "Avoid heavy irrigation during flowering",
    "Monitor for mildew signs",
    "Check canopy coverage"
  ]
}`, ai.SafetyRules, strings.Join(parts, "\n"), ai.LanguageName(lang))
}
