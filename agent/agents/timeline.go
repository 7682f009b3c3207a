package agents

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/mwilhelm/proposalforge/agent/contract"
	promptx "github.com/mwilhelm/proposalforge/agent/prompt"
)

const timelineSummaryBudget = 3000

type timelineAgent struct {
	model   einomodel.BaseChatModel
	prompts promptx.Set
}

var _ contractx.TimelineGenerator = (*timelineAgent)(nil)

func newTimelineAgent(model einomodel.BaseChatModel, prompts promptx.Set) *timelineAgent {
	return &timelineAgent{model: model, prompts: prompts}
}

// Generate produces a phased implementation plan with one model call.
func (a *timelineAgent) Generate(ctx context.Context, req contractx.TimelineRequest) (string, error) {
	truncated := truncate(req.RelevantText, timelineSummaryBudget)

	userPrompt := fmt.Sprintf(`Client Classification: %s
Tone: %s, Style: %s

Project Context:
%s

Additional Requirements:
%s

Create a detailed project timeline with the following:
1. Clear phases with specific durations (in weeks)
2. Key milestones and deliverables for each phase
3. Dependencies between phases
4. Critical path activities
5. Risk factors that might affect the timeline

Format the timeline in a structured, easy-to-read manner with clear headings and bullet points.`,
		req.Classification.Category, req.Tone.Tone, req.Tone.Style,
		truncated, req.AdditionalContext)

	msg, err := a.model.Generate(ctx, []*schema.Message{
		schema.SystemMessage(a.prompts.Timeline),
		schema.UserMessage(userPrompt),
	})
	if err != nil {
		return "", fmt.Errorf("%w: timeline generate: %v", contractx.ErrModelInvoke, err)
	}

	return strings.TrimSpace(msg.Content), nil
}
