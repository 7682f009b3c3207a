package agents

import (
	"strings"
	"unicode/utf8"
)

// industrySignal is a deliberately simpler detector than the industry
// analyzer: plain substring matching, first hit wins, used only to pick
// technology-stack suggestions inside a prompt.
type industrySignal struct {
	name     string
	keywords []string
}

var industrySignals = []industrySignal{
	{"healthcare", []string{"health", "hospital", "patient", "medical", "clinic", "care provider"}},
	{"finance", []string{"bank", "finance", "investment", "trading", "payment", "insurance"}},
	{"government", []string{"government", "federal", "agency", "public sector", "state", "municipal"}},
	{"education", []string{"school", "university", "college", "education", "student", "learning"}},
	{"retail", []string{"retail", "store", "shop", "e-commerce", "product", "inventory", "sell"}},
}

func detectIndustry(text string) string {
	lower := strings.ToLower(text)
	for _, sig := range industrySignals {
		for _, kw := range sig.keywords {
			if strings.Contains(lower, kw) {
				return sig.name
			}
		}
	}
	return "general"
}

// truncate cuts text to a fixed byte budget. The cut is a silent,
// deterministic prefix that never splits a rune.
func truncate(text string, budget int) string {
	if len(text) <= budget {
		return text
	}
	cut := budget
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
