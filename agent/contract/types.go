package contract

import "strings"

type RequestType string

const (
	RequestGenerateTechnicalSection RequestType = "generate_technical_section"
	RequestGenerateTimeline         RequestType = "generate_timeline"
	RequestGeneratePricing          RequestType = "generate_pricing"
	RequestApplyUserFeedback        RequestType = "apply_user_feedback"
	RequestAnalyzeIndustry          RequestType = "analyze_industry"
)

type AgentType string

const (
	AgentTypeTechnical AgentType = "technical"
	AgentTypeTimeline  AgentType = "timeline"
	AgentTypeFeedback  AgentType = "feedback"
)

// Category is the coarse client classification driving tone and
// technology suggestions. Non-profit and academic organizations fold
// into enterprise for backward compatibility with downstream callers.
type Category string

const (
	CategoryGovernment Category = "government"
	CategoryEnterprise Category = "enterprise"
)

type OrgSize string

const (
	SizeSmall  OrgSize = "small"
	SizeMedium OrgSize = "medium"
	SizeLarge  OrgSize = "large"
)

type Classification struct {
	Category Category `json:"category"`
	Size     OrgSize  `json:"size"`
}

// ToneSettings governs the register of generated prose for a
// classification.
type ToneSettings struct {
	Tone        string `json:"tone"`
	Style       string `json:"style"`
	Description string `json:"description"`
}

// Intent tells a generation agent which kind of output the caller
// wants, so the agent can pick a system prompt without re-deriving the
// task from free-form instructions.
type Intent string

const (
	IntentGenerate            Intent = "generate"
	IntentExtractRequirements Intent = "extract_requirements"
	IntentOutline             Intent = "outline"
)

// DetectIntent classifies free-form instructions into an Intent. The
// coordinator calls this once at the request boundary; agents receive
// the result as an explicit field.
func DetectIntent(instructions string) Intent {
	lower := strings.ToLower(instructions)
	switch {
	case strings.Contains(lower, "extract specific"),
		strings.Contains(lower, "requirements extraction"):
		return IntentExtractRequirements
	case strings.Contains(lower, "proposal structure"),
		strings.Contains(lower, "outline"):
		return IntentOutline
	default:
		return IntentGenerate
	}
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response is the envelope every coordinator call returns. Payload
// fields vary by request type (technical_solution, timeline,
// pricing_table, revised_draft, industry_analysis, classification,
// tone_settings).
type Response struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Payload map[string]any `json:"payload,omitempty"`
}

func SuccessResponse(payload map[string]any) Response {
	return Response{
		Status:  StatusSuccess,
		Message: "Request processed successfully",
		Payload: payload,
	}
}

func ErrorResponse(message string) Response {
	return Response{
		Status:  StatusError,
		Message: message,
	}
}

type PricingLineItem struct {
	Role           string  `json:"role"`
	HourlyRate     float64 `json:"hourly_rate"`
	EstimatedHours float64 `json:"estimated_hours"`
}

type TechnicalRequest struct {
	Classification Classification `json:"classification"`
	Tone           ToneSettings   `json:"tone"`
	ExtractedText  string         `json:"extracted_text"`
	Instructions   string         `json:"instructions"`
	Intent         Intent         `json:"intent"`
}

type TimelineRequest struct {
	Classification    Classification `json:"classification"`
	Tone              ToneSettings   `json:"tone"`
	RelevantText      string         `json:"relevant_text"`
	AdditionalContext string         `json:"additional_context"`
}

type RevisionRequest struct {
	CurrentDraft string `json:"current_draft"`
	Feedback     string `json:"feedback"`
}
