package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tablegrape/entities"
	"tablegrape/pkg/ai"
	logrepo "tablegrape/pkg/logbook/repository"
)

// Issue is one detected problem in a scanned photo.
type Issue struct {
	Name       string  `json:"name"`
	Severity   int     `json:"severity"`   // 0-3
	Confidence float64 `json:"confidence"` // 0.0-1.0
}

// Result is the analysis for one uploaded photo. Results are never cached;
// every image is unique.
type Result struct {
	PhotoPath   string   `json:"photo_path"`
	Stage       string   `json:"stage"`
	Issues      []Issue  `json:"issues"`
	Summary     string   `json:"summary"`
	NextActions []string `json:"next_actions"`
}

const (
	maxIssues      = 5
	maxNextActions = 5
)

// Service analyzes grape/leaf photos. The upload is saved first, then
// vision analysis runs with a canned localized fallback, and a scouting log
// is recorded as a best-effort side effect.
type Service struct {
	logs      logrepo.LogbookRepository
	client    ai.Client
	uploadDir string
	now       func() time.Time
	log       zerolog.Logger
}

func NewService(logs logrepo.LogbookRepository, client ai.Client, uploadDir string, log zerolog.Logger) *Service {
	return &Service{logs: logs, client: client, uploadDir: uploadDir, now: time.Now, log: log}
}

// Analyze saves the image, runs vision analysis and records the scouting
// log. The returned error covers only the upload write; analysis failures
// resolve to the fallback result.
func (s *Service) Analyze(ctx context.Context, farm *entities.Farm, blockID *string, image []byte, filename, notes, lang string) (Result, error) {
	if lang == "" || lang == "en" {
		if farm.PreferredLanguage != "" {
			lang = farm.PreferredLanguage
		} else {
			lang = "en"
		}
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	name := uuid.NewString() + ext
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.uploadDir, name), image, 0o644); err != nil {
		return Result{}, fmt.Errorf("save image: %w", err)
	}
	photoPath := path.Join("uploads", name)

	result, ok := s.analyze(ctx, image, mimeFromExt(ext), lang)
	if !ok {
		s.log.Info().Str("farm_id", farm.ID).Msg("scan: using fallback result")
		result = fallbackResult(lang)
	}
	result.PhotoPath = photoPath

	s.recordScouting(farm.ID, blockID, photoPath, result, notes)
	return result, nil
}

func mimeFromExt(ext string) string {
	switch ext {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// analyze runs at most two attempts; only a parse failure earns the second,
// stricter attempt.
func (s *Service) analyze(ctx context.Context, image []byte, mimeType, lang string) (Result, bool) {
	if s.client == nil {
		return Result{}, false
	}

	prompt := visionPrompt(lang)
	for attempt := 0; attempt < 2; attempt++ {
		p := prompt
		if attempt > 0 {
			p = prompt + "\n\nIMPORTANT: Return ONLY valid JSON. Do not include any text before or after the JSON object."
		}

		raw, err := s.client.AnalyzeImage(ctx, p, image, mimeType)
		if err != nil {
			s.log.Warn().Err(err).Msg("scan: vision analysis failed")
			return Result{}, false
		}

		var parsed struct {
			Stage       *string   `json:"stage"`
			Issues      *[]Issue  `json:"issues"`
			Summary     *string   `json:"summary"`
			NextActions *[]string `json:"next_actions"`
		}
		if err := json.Unmarshal([]byte(ai.StripFences(raw)), &parsed); err != nil {
			s.log.Warn().Err(err).Int("attempt", attempt+1).Msg("scan: malformed JSON")
			continue
		}
		if parsed.Stage == nil || parsed.Issues == nil || parsed.Summary == nil || parsed.NextActions == nil {
			s.log.Warn().Msg("scan: response missing required keys")
			return Result{}, false
		}

		issues := *parsed.Issues
		if len(issues) > maxIssues {
			issues = issues[:maxIssues]
		}
		actions := *parsed.NextActions
		if len(actions) > maxNextActions {
			actions = actions[:maxNextActions]
		}
		return Result{
			Stage:       *parsed.Stage,
			Issues:      issues,
			Summary:     *parsed.Summary,
			NextActions: actions,
		}, true
	}
	return Result{}, false
}

// recordScouting persists the scan as a scouting entry. Failures are logged
// and swallowed; the scan response must still reach the caller.
func (s *Service) recordScouting(farmID string, blockID *string, photoPath string, result Result, notes string) {
	mainIssue := "unknown"
	maxSeverity := 0
	if len(result.Issues) > 0 {
		top := result.Issues[0]
		for _, is := range result.Issues[1:] {
			if is.Severity > top.Severity {
				top = is
			}
		}
		mainIssue = top.Name
		maxSeverity = top.Severity
	}

	logNotes := result.Summary
	if notes != "" {
		logNotes = fmt.Sprintf("%s\n\nUser notes: %s", result.Summary, notes)
	}

	entry := &entities.ScoutingLog{
		FarmID:     farmID,
		BlockID:    blockID,
		ObservedAt: s.now(),
		PhotoPath:  &photoPath,
		IssueType:  mainIssue,
		Severity:   maxSeverity,
		Notes:      logNotes,
	}
	if err := s.logs.CreateScouting(entry); err != nil {
		s.log.Error().Err(err).Str("farm_id", farmID).Msg("scan: failed to create scouting log")
		return
	}
	s.log.Info().Str("farm_id", farmID).Str("log_id", entry.ID).Msg("scan: created scouting log")
}

func visionPrompt(lang string) string {
	language := ai.LanguageName(lang)
	return fmt.Sprintf(`You are an agricultural expert analyzing a photo of table grapes (fresh eating grapes, not wine grapes).

Analyze this image and provide:
1. Crop stage: one of "early_growth", "flowering", "fruit_set", "veraison", "harvest", or "unknown"
2. Visible issues: list any visible problems like cracking, sunburn, mildew-like signs, rot-like signs, pests
3. Summary: brief description in %s
4. Next actions: safe recommendations (NO chemical names, NO doses, NO mixing instructions)

%s

Respond in %s language. Output a JSON object with:
- "stage": string (one of: early_growth, flowering, fruit_set, veraison, harvest, unknown)
- "issues": array of {"name": string, "severity": 0-3, "confidence": 0.0-1.0}
- "summary": string (brief description)
- "next_actions": array of strings (safe recommendations, no chemicals)

Example format:
{
  "stage": "fruit_set",
  "issues": [
    {"name": "sunburn", "severity": 2, "confidence": 0.8},
    {"name": "mildew-like signs", "severity": 1, "confidence": 0.6}
  ],
  "summary": "Small grapes visible with some sunburn spots. White powder on some leaves.",
  "next_actions": [
    "Check canopy coverage",
    "Monitor for mildew development",
    "Consult local agri officer if issues worsen"
  ]
}`, language, ai.SafetyRules, language)
}

func fallbackResult(lang string) Result {
	var summary string
	var actions []string
	switch lang {
	case "hi":
		summary = "AI स्कैन उपलब्ध नहीं है। कृपया Chat में लक्षण बताएं।"
		actions = []string{"Chat में समस्या बताएं", "अच्छी रोशनी में फोटो लें", "पत्ते और गुच्छे को बारीकी से जांचें"}
	case "es":
		summary = "Escaneo IA no disponible. Por favor describe los síntomas en Chat."
		actions = []string{"Usa Chat para describir el problema", "Toma foto con buena luz", "Revisa hojas y racimos de cerca"}
	case "mr":
		summary = "AI स्कॅन उपलब्ध नाही. कृपया Chat मध्ये लक्षणे वर्णन करा."
		actions = []string{"समस्या वर्णन करण्यासाठी Chat वापरा", "चांगल्या प्रकाशात फोटो घ्या", "पाने आणि गुच्छे जवळून तपासा"}
	default:
		summary = "AI scan not available. Please describe symptoms in Chat."
		actions = []string{"Use Chat to describe the issue", "Take photo in good light", "Check leaves and bunches closely"}
	}
	return Result{
		Stage:       "unknown",
		Issues:      []Issue{},
		Summary:     summary,
		NextActions: actions,
	}
}
