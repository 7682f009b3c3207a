// Package agents implements the single-purpose generation units the
// coordinator dispatches to: technical solution, timeline, pricing,
// and feedback revision.
package agents

import (
	"fmt"
	"strings"

	"context"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	contractx "github.com/mwilhelm/proposalforge/agent/contract"
	promptx "github.com/mwilhelm/proposalforge/agent/prompt"
)

// Long-form inputs are cut to a fixed prefix before prompting so a
// single oversized document cannot blow the model context window.
const technicalSummaryBudget = 3000

type technicalAgent struct {
	model   einomodel.BaseChatModel
	prompts promptx.Set

	industryTechStack map[string][]string
}

var _ contractx.TechnicalGenerator = (*technicalAgent)(nil)

func newTechnicalAgent(model einomodel.BaseChatModel, prompts promptx.Set) *technicalAgent {
	return &technicalAgent{
		model:   model,
		prompts: prompts,
		industryTechStack: map[string][]string{
			"healthcare": {"HIPAA-compliant cloud services", "Electronic Health Record (EHR) systems", "HL7 FHIR"},
			"finance":    {"Blockchain", "RegTech solutions", "Secure payment gateways", "Anti-fraud ML systems"},
			"government": {"FedRAMP certified solutions", "GovCloud", "Zero-trust architecture"},
			"education":  {"Learning Management Systems", "Virtual classrooms", "Student analytics platforms"},
			"retail":     {"Inventory management systems", "POS integration", "Customer loyalty platforms"},
		},
	}
}

// Generate produces the Technical Approach section (or, depending on
// intent, a requirements extraction or proposal outline) with one
// model call.
func (a *technicalAgent) Generate(ctx context.Context, req contractx.TechnicalRequest) (string, error) {
	industry := detectIndustry(req.ExtractedText + " " + req.Instructions)

	techSuggestions := "No specific industry technologies detected"
	if stack := a.industryTechStack[industry]; len(stack) > 0 {
		techSuggestions = strings.Join(stack, ", ")
	}

	summary := truncate(req.ExtractedText, technicalSummaryBudget)

	var systemPrompt, userPrompt string
	switch req.Intent {
	case contractx.IntentExtractRequirements:
		systemPrompt = a.prompts.RequirementsExtraction
		userPrompt = fmt.Sprintf(`## RFP Document Content
%s

## Extraction Instructions
%s

Carefully analyze the RFP content above and extract all specific requirements.
Each requirement should be a single line starting with a dash (-).
Be comprehensive and specific - these requirements will be used to build the proposal structure.`,
			summary, req.Instructions)

	case contractx.IntentOutline:
		systemPrompt = a.prompts.ProposalOutline
		userPrompt = fmt.Sprintf(`## Client Information
- Classification: %s
- Industry: %s

## RFP Context (Summary)
%s

## Proposal Structure Instructions
%s

Create a comprehensive proposal structure that directly addresses the requirements.
Use main sections (starting with -) and bullet points (starting with *) under each section.
Make sure each section and bullet point is relevant and specific to this particular RFP.`,
			req.Classification.Category, industry, summary, req.Instructions)

	default:
		systemPrompt = a.prompts.Technical
		userPrompt = fmt.Sprintf(`## Client Information
- Classification: %s
- Industry: %s
- Tone/Style: %s/%s

## Requirements Summary
%s

## Additional Project Requirements
%s

## Industry-Specific Technology Suggestions
%s

Create a comprehensive technical proposal section that includes:

1. **Requirements Analysis**: Restate and clarify the client's needs
2. **Proposed Architecture**: High-level design with components and interactions
3. **Technology Stack**: Specific technologies with justification for each choice
4. **Implementation Approach**: How the solution will be built and delivered
5. **Technical Differentiators**: Why our approach is superior

Format your response with clear headings, bullet points for key features, and emphasize how the solution
aligns with %s requirements and %s industry best practices.`,
			req.Classification.Category, industry, req.Tone.Tone, req.Tone.Style,
			summary, req.Instructions, techSuggestions,
			req.Classification.Category, industry)
	}

	msg, err := a.model.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(userPrompt),
	})
	if err != nil {
		return "", fmt.Errorf("%w: technical generate: %v", contractx.ErrModelInvoke, err)
	}

	return strings.TrimSpace(msg.Content), nil
}
