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

type feedbackAgent struct {
	model   einomodel.BaseChatModel
	prompts promptx.Set
}

var _ contractx.FeedbackReviser = (*feedbackAgent)(nil)

func newFeedbackAgent(model einomodel.BaseChatModel, prompts promptx.Set) *feedbackAgent {
	return &feedbackAgent{model: model, prompts: prompts}
}

// Revise rewrites the current draft to incorporate user feedback. Both
// inputs are passed through verbatim; the model's own context limit is
// the only bound on draft length.
func (a *feedbackAgent) Revise(ctx context.Context, req contractx.RevisionRequest) (string, error) {
	userPrompt := fmt.Sprintf("Current Proposal Section:\n```\n%s\n```\n\nUser Feedback:\n```\n%s\n```\n\nPlease revise the proposal section to incorporate this feedback thoughtfully and cohesively.",
		req.CurrentDraft, req.Feedback)

	msg, err := a.model.Generate(ctx, []*schema.Message{
		schema.SystemMessage(a.prompts.Feedback),
		schema.UserMessage(userPrompt),
	})
	if err != nil {
		return "", fmt.Errorf("%w: feedback revise: %v", contractx.ErrModelInvoke, err)
	}

	return strings.TrimSpace(msg.Content), nil
}
