package contract

import "context"

// Classifier assigns a coarse category and size to a client
// description. It is a pure function of its input: identical text
// yields identical results.
type Classifier interface {
	Classify(text string) Classification
}

// ToneResolver maps a classification to tone settings. Unknown
// categories resolve to the enterprise configuration.
type ToneResolver interface {
	Resolve(category string) ToneSettings
}

// IndustryAnalyzer renders deterministic markdown insight for the
// detected industry. It never fails and never returns an empty string.
type IndustryAnalyzer interface {
	Analyze(text string) string
}

type TechnicalGenerator interface {
	Generate(ctx context.Context, req TechnicalRequest) (string, error)
}

type TimelineGenerator interface {
	Generate(ctx context.Context, req TimelineRequest) (string, error)
}

// PricingFormatter builds a fixed-width pricing table. It performs no
// model call; malformed input yields a sentinel message, not an error.
type PricingFormatter interface {
	Format(details any) string
}

type FeedbackReviser interface {
	Revise(ctx context.Context, req RevisionRequest) (string, error)
}

type Registry interface {
	Technical() TechnicalGenerator
	Timeline() TimelineGenerator
	Pricing() PricingFormatter
	Feedback() FeedbackReviser
}
