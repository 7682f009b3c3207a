package coordinator

import (
	"fmt"
	"strings"

	contractx "github.com/mwilhelm/proposalforge/agent/contract"
)

// requiredParams declares, per request type, the parameter names that
// must be present before any agent runs. Validation fails closed.
var requiredParams = map[contractx.RequestType][]string{
	contractx.RequestGenerateTechnicalSection: {"client_text", "extracted_text"},
	contractx.RequestGenerateTimeline:         {"client_text", "relevant_text"},
	contractx.RequestGeneratePricing:          {"pricing_details"},
	contractx.RequestApplyUserFeedback:        {"current_draft", "user_feedback"},
	contractx.RequestAnalyzeIndustry:          {"extracted_text"},
}

// requestState is the per-call unit of work flowing through the
// dispatch graph. Each call builds a fresh one; nothing persists
// across calls.
type requestState struct {
	requestType contractx.RequestType
	params      map[string]any
	requestID   string
}

func validateRequest(requestType contractx.RequestType, params map[string]any) (*requestState, error) {
	required, ok := requiredParams[requestType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", contractx.ErrUnsupportedRequest, requestType)
	}

	var missing []string
	for _, name := range required {
		if _, ok := params[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required parameters: %s",
			contractx.ErrValidation, strings.Join(missing, ", "))
	}

	return &requestState{
		requestType: requestType,
		params:      params,
	}, nil
}

func (st *requestState) stringParam(name string) string {
	if st == nil || st.params == nil {
		return ""
	}
	v, _ := st.params[name].(string)
	return v
}
