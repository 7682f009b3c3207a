package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/mwilhelm/proposalforge/agent/contract"
	openrouterx "github.com/mwilhelm/proposalforge/pkg/openrouter"
)

// Config carries the shared model settings plus per-agent overrides.
// Output budgets differ per agent: the technical section is the
// longest artifact, the timeline the shortest.
type Config struct {
	BaseURL     string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey      string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model       string        `envconfig:"MODEL" split_words:"true" required:"true"`
	Temperature float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.7"`
	Timeout     time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"60s"`
	SiteURL     string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName    string        `envconfig:"SITE_NAME" split_words:"true"`

	TechnicalModel     string `envconfig:"TECHNICAL_MODEL" split_words:"true"`
	TimelineModel      string `envconfig:"TIMELINE_MODEL" split_words:"true"`
	FeedbackModel      string `envconfig:"FEEDBACK_MODEL" split_words:"true"`
	TechnicalMaxTokens int    `envconfig:"TECHNICAL_MAX_TOKENS" split_words:"true" default:"1500"`
	TimelineMaxTokens  int    `envconfig:"TIMELINE_MAX_TOKENS" split_words:"true" default:"800"`
	FeedbackMaxTokens  int    `envconfig:"FEEDBACK_MAX_TOKENS" split_words:"true" default:"1200"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	return nil
}

// OpenRouterFor resolves the model settings for one agent type.
func (c Config) OpenRouterFor(agentType contractx.AgentType) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	maxTokens := c.TechnicalMaxTokens

	switch agentType {
	case contractx.AgentTypeTechnical:
		if v := strings.TrimSpace(c.TechnicalModel); v != "" {
			modelName = v
		}
		maxTokens = c.TechnicalMaxTokens
	case contractx.AgentTypeTimeline:
		if v := strings.TrimSpace(c.TimelineModel); v != "" {
			modelName = v
		}
		maxTokens = c.TimelineMaxTokens
	case contractx.AgentTypeFeedback:
		if v := strings.TrimSpace(c.FeedbackModel); v != "" {
			modelName = v
		}
		maxTokens = c.FeedbackMaxTokens
	}

	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxTokens,
		Temperature:        c.Temperature,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
