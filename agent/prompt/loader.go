package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/technical.txt
	technicalRaw string

	//go:embed template/requirements_extraction.txt
	requirementsRaw string

	//go:embed template/proposal_outline.txt
	outlineRaw string

	//go:embed template/timeline.txt
	timelineRaw string

	//go:embed template/feedback.txt
	feedbackRaw string
)

// Set holds the loaded system prompts, one per generation task.
type Set struct {
	Technical              string
	RequirementsExtraction string
	ProposalOutline        string
	Timeline               string
	Feedback               string
}

// LoadSet returns the embedded system prompts with surrounding
// whitespace trimmed. Safe to call concurrently; the embed is
// compile-time and trimming is cheap.
func LoadSet() Set {
	return Set{
		Technical:              strings.TrimSpace(technicalRaw),
		RequirementsExtraction: strings.TrimSpace(requirementsRaw),
		ProposalOutline:        strings.TrimSpace(outlineRaw),
		Timeline:               strings.TrimSpace(timelineRaw),
		Feedback:               strings.TrimSpace(feedbackRaw),
	}
}
