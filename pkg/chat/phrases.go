package chat

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// PhraseSet drives intent detection. The built-in defaults cover the four
// supported languages; deployments can override any set from a spreadsheet
// so agronomists can extend them without a release.
type PhraseSet struct {
	Greetings        map[string]struct{}
	Acknowledgements map[string]struct{}
	WhatsNew         map[string]struct{}
	ContextKeywords  []string
}

func toSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// DefaultPhrases returns the built-in phrase sets.
func DefaultPhrases() *PhraseSet {
	return &PhraseSet{
		Greetings: toSet(
			"hi", "hello", "hey", "namaste", "good morning", "good evening",
			"good afternoon", "good night", "greetings", "hi there", "hey there",
			"हाय", "नमस्ते", "नमस्कार", "प्रणाम",
			"hola", "buenos días", "buenas tardes", "buenas noches", "saludos",
			"हॅलो",
		),
		Acknowledgements: toSet(
			"ok", "okay", "kk", "k", "sure", "cool", "great", "nice",
			"thanks", "thank you", "thx", "ty", "👍", "👌",
			"hmm", "hmmm", "yes", "yep",
		),
		WhatsNew: toSet(
			"what's new", "whats new", "what is new", "update", "updates",
			"anything new", "what happened", "what changed",
		),
		ContextKeywords: []string{
			"stage", "status", "weather", "forecast", "irrigation", "spray",
			"issue", "problem", "mildew", "sunburn", "crack", "pest", "brix",
			"harvest", "variety", "block", "farm",
		},
	}
}

// Sheet names recognized by LoadPhrasesXLSX. Each sheet contributes the
// non-empty cells of its first column; a missing or empty sheet leaves the
// corresponding default set in place.
const (
	sheetGreetings        = "greetings"
	sheetAcknowledgements = "acknowledgements"
	sheetWhatsNew         = "whats_new"
	sheetContextKeywords  = "context_keywords"
)

// LoadPhrasesXLSX reads phrase overrides from an xlsx workbook on top of the
// defaults. Callers treat a load error as non-fatal and fall back to
// DefaultPhrases.
func LoadPhrasesXLSX(path string) (*PhraseSet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open phrases workbook: %w", err)
	}
	defer f.Close()

	p := DefaultPhrases()
	read := func(sheet string) []string {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil
		}
		var out []string
		for _, row := range rows {
			if len(row) == 0 {
				continue
			}
			w := strings.ToLower(strings.TrimSpace(row[0]))
			if w != "" {
				out = append(out, w)
			}
		}
		return out
	}

	if words := read(sheetGreetings); len(words) > 0 {
		p.Greetings = toSet(words...)
	}
	if words := read(sheetAcknowledgements); len(words) > 0 {
		p.Acknowledgements = toSet(words...)
	}
	if words := read(sheetWhatsNew); len(words) > 0 {
		p.WhatsNew = toSet(words...)
	}
	if words := read(sheetContextKeywords); len(words) > 0 {
		p.ContextKeywords = words
	}
	return p, nil
}
