// Package tone maps a client classification to the tone and style
// configuration used by the generation agents.
package tone

import (
	"strings"

	contractx "github.com/mwilhelm/proposalforge/agent/contract"
)

type Resolver struct {
	settings map[string]contractx.ToneSettings
}

var _ contractx.ToneResolver = (*Resolver)(nil)

func New() *Resolver {
	return &Resolver{
		settings: map[string]contractx.ToneSettings{
			"government": {
				Tone:        "Formal",
				Style:       "Compliance-focused",
				Description: "A formal tone with an emphasis on compliance and regulatory details.",
			},
			"enterprise": {
				Tone:        "Persuasive",
				Style:       "Business-focused",
				Description: "A persuasive tone designed to appeal to business objectives and ROI.",
			},
		},
	}
}

// Resolve looks up the tone settings for a category. The lookup is
// case-insensitive; unknown categories fall back to enterprise.
func (r *Resolver) Resolve(category string) contractx.ToneSettings {
	if s, ok := r.settings[strings.ToLower(strings.TrimSpace(category))]; ok {
		return s
	}
	return r.settings["enterprise"]
}
