package agents

import (
	"context"
	"fmt"

	contractx "github.com/mwilhelm/proposalforge/agent/contract"
	llmx "github.com/mwilhelm/proposalforge/agent/llm"
	promptx "github.com/mwilhelm/proposalforge/agent/prompt"
)

type registryImpl struct {
	technical contractx.TechnicalGenerator
	timeline  contractx.TimelineGenerator
	pricing   contractx.PricingFormatter
	feedback  contractx.FeedbackReviser
}

func (r *registryImpl) Technical() contractx.TechnicalGenerator {
	return r.technical
}

func (r *registryImpl) Timeline() contractx.TimelineGenerator {
	return r.timeline
}

func (r *registryImpl) Pricing() contractx.PricingFormatter {
	return r.pricing
}

func (r *registryImpl) Feedback() contractx.FeedbackReviser {
	return r.feedback
}

// NewRegistry builds every generation agent once. Agents hold only
// configuration and a chat model; they carry no per-request state and
// are reused across requests.
func NewRegistry(ctx context.Context, cfg llmx.Config) (contractx.Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prompts := promptx.LoadSet()
	for name, prompt := range map[string]string{
		"technical":               prompts.Technical,
		"requirements_extraction": prompts.RequirementsExtraction,
		"proposal_outline":        prompts.ProposalOutline,
		"timeline":                prompts.Timeline,
		"feedback":                prompts.Feedback,
	} {
		if prompt == "" {
			return nil, fmt.Errorf("%w: %s", contractx.ErrPromptMissing, name)
		}
	}

	technicalCfg := cfg.OpenRouterFor(contractx.AgentTypeTechnical)
	technicalModel, err := technicalCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create technical model: %v", contractx.ErrModelInvoke, err)
	}
	timelineCfg := cfg.OpenRouterFor(contractx.AgentTypeTimeline)
	timelineModel, err := timelineCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create timeline model: %v", contractx.ErrModelInvoke, err)
	}
	feedbackCfg := cfg.OpenRouterFor(contractx.AgentTypeFeedback)
	feedbackModel, err := feedbackCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create feedback model: %v", contractx.ErrModelInvoke, err)
	}

	return &registryImpl{
		technical: newTechnicalAgent(technicalModel, prompts),
		timeline:  newTimelineAgent(timelineModel, prompts),
		pricing:   newPricingAgent(),
		feedback:  newFeedbackAgent(feedbackModel, prompts),
	}, nil
}
