package coordinator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/mwilhelm/proposalforge/agent/contract"
)

// compileProcessGraph builds the dispatch graph once at construction:
// a prepare node fans out through a branch to exactly one handler per
// request type, and every handler terminates the graph with its
// payload.
func (c *Coordinator) compileProcessGraph(
	ctx context.Context,
) (compose.Runnable[*requestState, map[string]any], error) {
	graph := compose.NewGraph[*requestState, map[string]any]()

	if err := graph.AddLambdaNode("prepare_request",
		compose.InvokableLambda(func(ctx context.Context, in *requestState) (*requestState, error) {
			if in == nil {
				return nil, fmt.Errorf("%w: request state is nil", contractx.ErrValidation)
			}
			return in, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node prepare_request: %w", err)
	}

	handlers := map[string]func(context.Context, *requestState) (map[string]any, error){
		"handle_technical_section": c.handleTechnicalSection,
		"handle_timeline":          c.handleTimeline,
		"handle_pricing":           c.handlePricing,
		"handle_feedback":          c.handleFeedback,
		"handle_industry_analysis": c.handleIndustryAnalysis,
	}

	for name, handler := range handlers {
		handler := handler
		if err := graph.AddLambdaNode(name,
			compose.InvokableLambda(func(ctx context.Context, in *requestState) (map[string]any, error) {
				if in == nil {
					return nil, fmt.Errorf("%w: request state is nil", contractx.ErrValidation)
				}
				return handler(ctx, in)
			}),
		); err != nil {
			return nil, fmt.Errorf("add node %s: %w", name, err)
		}
	}

	branch := compose.NewGraphBranch(
		func(ctx context.Context, in *requestState) (string, error) {
			if in == nil {
				return "", fmt.Errorf("%w: request state is nil", contractx.ErrValidation)
			}
			switch in.requestType {
			case contractx.RequestGenerateTechnicalSection:
				return "handle_technical_section", nil
			case contractx.RequestGenerateTimeline:
				return "handle_timeline", nil
			case contractx.RequestGeneratePricing:
				return "handle_pricing", nil
			case contractx.RequestApplyUserFeedback:
				return "handle_feedback", nil
			case contractx.RequestAnalyzeIndustry:
				return "handle_industry_analysis", nil
			default:
				return "", fmt.Errorf("%w: %s", contractx.ErrUnsupportedRequest, in.requestType)
			}
		},
		map[string]bool{
			"handle_technical_section": true,
			"handle_timeline":          true,
			"handle_pricing":           true,
			"handle_feedback":          true,
			"handle_industry_analysis": true,
		},
	)

	if err := graph.AddEdge(compose.START, "prepare_request"); err != nil {
		return nil, fmt.Errorf("add edge start->prepare: %w", err)
	}
	if err := graph.AddBranch("prepare_request", branch); err != nil {
		return nil, fmt.Errorf("add dispatch branch: %w", err)
	}
	for name := range handlers {
		if err := graph.AddEdge(name, compose.END); err != nil {
			return nil, fmt.Errorf("add edge %s->end: %w", name, err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("coordinator.process_request"))
	if err != nil {
		return nil, fmt.Errorf("compile coordinator graph: %w", err)
	}
	return runner, nil
}
