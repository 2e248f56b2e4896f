package chat

import (
	"strings"
	"unicode/utf8"
)

// Short-message gate for greetings and acknowledgements. "thanks for the
// advice on downy mildew spraying" should reach the model, not a canned
// reply.
const shortMessageMax = 20

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// IsWhatsNew reports whether the message asks for updates.
func (p *PhraseSet) IsWhatsNew(text string) bool {
	n := normalize(text)
	if n == "" {
		return false
	}
	if _, ok := p.WhatsNew[n]; ok {
		return true
	}
	return strings.HasPrefix(n, "what's new") || strings.HasPrefix(n, "whats new")
}

// IsAcknowledgement reports whether the message is a short acknowledgement
// ("ok", "thanks", "👍"). Exact match only.
func (p *PhraseSet) IsAcknowledgement(text string) bool {
	n := normalize(text)
	if n == "" || utf8.RuneCountInString(n) > shortMessageMax {
		return false
	}
	_, ok := p.Acknowledgements[n]
	return ok
}

// IsGreeting reports whether the message is a short greeting, either an
// exact phrase or a phrase followed by more words ("hello friend").
func (p *PhraseSet) IsGreeting(text string) bool {
	n := normalize(text)
	if n == "" || utf8.RuneCountInString(n) > shortMessageMax {
		return false
	}
	if _, ok := p.Greetings[n]; ok {
		return true
	}
	for g := range p.Greetings {
		if strings.HasPrefix(n, g+" ") {
			return true
		}
	}
	return false
}

// NeedsContext reports whether the question looks farm-specific enough to
// justify attaching the full context bundle to the prompt.
func (p *PhraseSet) NeedsContext(text string) bool {
	n := normalize(text)
	for _, kw := range p.ContextKeywords {
		if strings.Contains(n, kw) {
			return true
		}
	}
	return false
}
