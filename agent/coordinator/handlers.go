package coordinator

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	contractx "github.com/mwilhelm/proposalforge/agent/contract"
)

// Agent and model failures inside a handler degrade to a bounded
// diagnostic string in the payload; the call still succeeds. Only
// validation problems fail the whole request.

func (c *Coordinator) handleTechnicalSection(ctx context.Context, st *requestState) (map[string]any, error) {
	log.Info().Str("request_id", st.requestID).Msg("generating technical section")

	clientText := st.stringParam("client_text")
	extractedText := st.stringParam("extracted_text")
	projectRequirements := st.stringParam("project_requirements")

	classification, toneSettings := c.classificationAndTone(clientText)

	// Industry context always accompanies technical generation.
	industryAnalysis := c.industry.Analyze(extractedText)
	instructions := projectRequirements + "\n\nIndustry Analysis: " + industryAnalysis

	solution, err := c.registry.Technical().Generate(ctx, contractx.TechnicalRequest{
		Classification: classification,
		Tone:           toneSettings,
		ExtractedText:  extractedText,
		Instructions:   instructions,
		Intent:         contractx.DetectIntent(instructions),
	})
	if err != nil {
		log.Error().Err(err).Str("request_id", st.requestID).Msg("technical solution generation failed")
		solution = fmt.Sprintf("An error occurred while generating the technical solution: %s...", boundedMessage(err))
	}

	return map[string]any{
		"classification":     string(classification.Category),
		"tone_settings":      toneSettings,
		"industry_analysis":  industryAnalysis,
		"technical_solution": solution,
	}, nil
}

func (c *Coordinator) handleTimeline(ctx context.Context, st *requestState) (map[string]any, error) {
	log.Info().Str("request_id", st.requestID).Msg("generating project timeline")

	clientText := st.stringParam("client_text")
	relevantText := st.stringParam("relevant_text")
	additionalContext := st.stringParam("additional_context")

	classification, toneSettings := c.classificationAndTone(clientText)

	timeline, err := c.registry.Timeline().Generate(ctx, contractx.TimelineRequest{
		Classification:    classification,
		Tone:              toneSettings,
		RelevantText:      relevantText,
		AdditionalContext: additionalContext,
	})
	if err != nil {
		log.Error().Err(err).Str("request_id", st.requestID).Msg("timeline generation failed")
		timeline = fmt.Sprintf("An error occurred while generating the timeline: %s...", boundedMessage(err))
	}

	return map[string]any{
		"classification": string(classification.Category),
		"tone_settings":  toneSettings,
		"timeline":       timeline,
	}, nil
}

func (c *Coordinator) handlePricing(ctx context.Context, st *requestState) (map[string]any, error) {
	log.Info().Str("request_id", st.requestID).Msg("generating pricing table")

	details := st.params["pricing_details"]
	if isEmptyList(details) {
		return nil, fmt.Errorf("%w: pricing details cannot be empty", contractx.ErrValidation)
	}

	return map[string]any{
		"pricing_table": c.registry.Pricing().Format(details),
	}, nil
}

func (c *Coordinator) handleFeedback(ctx context.Context, st *requestState) (map[string]any, error) {
	log.Info().Str("request_id", st.requestID).Msg("applying user feedback to existing draft")

	currentDraft := st.stringParam("current_draft")
	userFeedback := st.stringParam("user_feedback")

	if currentDraft == "" {
		return nil, fmt.Errorf("%w: current draft cannot be empty", contractx.ErrValidation)
	}
	if userFeedback == "" {
		return nil, fmt.Errorf("%w: user feedback cannot be empty", contractx.ErrValidation)
	}

	revised, err := c.registry.Feedback().Revise(ctx, contractx.RevisionRequest{
		CurrentDraft: currentDraft,
		Feedback:     userFeedback,
	})
	if err != nil {
		log.Error().Err(err).Str("request_id", st.requestID).Msg("feedback revision failed")
		revised = fmt.Sprintf("Error incorporating feedback: %s... Please try again with more specific instructions.", boundedMessage(err))
	}

	return map[string]any{
		"revised_draft": revised,
	}, nil
}

func (c *Coordinator) handleIndustryAnalysis(ctx context.Context, st *requestState) (map[string]any, error) {
	log.Info().Str("request_id", st.requestID).Msg("analyzing industry information")

	return map[string]any{
		"industry_analysis": c.industry.Analyze(st.stringParam("extracted_text")),
	}, nil
}

// boundedMessage caps a diagnostic at 100 bytes so a failing
// dependency cannot flood the payload. The cap never splits a rune.
func boundedMessage(err error) string {
	msg := err.Error()
	if len(msg) <= 100 {
		return msg
	}
	cut := 100
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut]
}

func isEmptyList(v any) bool {
	switch items := v.(type) {
	case nil:
		return true
	case []any:
		return len(items) == 0
	case []map[string]any:
		return len(items) == 0
	case []contractx.PricingLineItem:
		return len(items) == 0
	default:
		return false
	}
}
