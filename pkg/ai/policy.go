package ai

import "strings"

// Shared formatting and safety policy for every generated-text path.

// SafetyRules is embedded in every prompt that can reach a farmer. The
// service never relays chemical product guidance beyond what the user
// already logged themselves.
const SafetyRules = `IMPORTANT SAFETY RULES:
- DO NOT mention specific chemical names, doses, or mixing instructions
- DO NOT provide pesticide recommendations
- DO provide general advice like: "monitor for issues", "consult local agri officer", "avoid irrigating before rain", "do morning scouting"
- Keep advice practical and farmer-friendly
- Use simple words`

// StripFences removes a markdown code fence wrapper, which some models add
// even in JSON mode.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Clamp truncates s to at most max runes.
func Clamp(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// ClampList keeps at most maxItems entries, each clamped to maxRunes.
func ClampList(items []string, maxItems, maxRunes int) []string {
	if len(items) > maxItems {
		items = items[:maxItems]
	}
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = Clamp(it, maxRunes)
	}
	return out
}

var languageNames = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"es": "Spanish",
	"mr": "Marathi",
}

// LanguageName maps a supported language code to its English name for use
// in prompts. Unknown codes resolve to English.
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return "English"
}
