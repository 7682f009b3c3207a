package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	agentsx "github.com/mwilhelm/proposalforge/agent/agents"
	classifierx "github.com/mwilhelm/proposalforge/agent/classifier"
	contractx "github.com/mwilhelm/proposalforge/agent/contract"
	coordinatorx "github.com/mwilhelm/proposalforge/agent/coordinator"
	extractx "github.com/mwilhelm/proposalforge/agent/extract"
	industryx "github.com/mwilhelm/proposalforge/agent/industry"
	llmx "github.com/mwilhelm/proposalforge/agent/llm"
	statex "github.com/mwilhelm/proposalforge/agent/state"
	tonex "github.com/mwilhelm/proposalforge/agent/tone"
	configx "github.com/mwilhelm/proposalforge/pkg/config"
	_ "github.com/mwilhelm/proposalforge/pkg/logger/autoload"
	openrouterx "github.com/mwilhelm/proposalforge/pkg/openrouter"
	upstashx "github.com/mwilhelm/proposalforge/pkg/upstash"
)

type AppConfig struct {
	ClientName string `envconfig:"CLIENT_NAME"`
}

var (
	requestTypeFlag  = flag.String("type", string(contractx.RequestGenerateTechnicalSection), "request type to run")
	briefPathFlag    = flag.String("brief", "", "path to the client brief text file")
	docPathFlag      = flag.String("doc", "", "path to the client document (.txt, .docx, .pdf)")
	requirementsFlag = flag.String("requirements", "", "extra project requirements")
	contextFlag      = flag.String("context", "", "additional timeline context")
	pricingPathFlag  = flag.String("pricing", "", "path to a JSON array of pricing line items")
	draftPathFlag    = flag.String("draft", "", "path to the current draft for feedback revision")
	feedbackFlag     = flag.String("feedback", "", "user feedback to apply to the draft")
	proposalIDFlag   = flag.String("proposal", "", "proposal id to persist the result under")
	storeFlag        = flag.String("store", "redis", "draft store backend: redis (UPSTASH_* env) or postgres (PROPOSAL_DB_* env)")
)

func main() {
	ctx := context.Background()

	appCfg := configx.MustNew[AppConfig]("")

	llmCfg := configx.MustNew[llmx.Config]("OPENROUTER")
	probe := openrouterx.NewClient(llmCfg.OpenRouterFor(contractx.AgentTypeTechnical))
	if probe == nil {
		panic("failed to initialize openrouter client")
	}

	registry, err := agentsx.NewRegistry(ctx, *llmCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build agent registry")
	}

	coord, err := coordinatorx.New(classifierx.New(), tonex.New(), industryx.New(), registry)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build coordinator")
	}

	requestType := contractx.RequestType(strings.TrimSpace(*requestTypeFlag))
	params, err := buildParams(requestType)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to assemble request parameters")
	}

	resp := coord.ProcessRequest(ctx, requestType, params)

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to encode response")
	}
	fmt.Println(string(out))

	if resp.Status == contractx.StatusSuccess && strings.TrimSpace(*proposalIDFlag) != "" {
		if err := persistResult(ctx, appCfg.ClientName, params, resp); err != nil {
			log.Error().Err(err).Msg("failed to persist proposal draft")
		}
	}
}

// buildParams maps the CLI surface onto the coordinator's parameter
// contract for the requested operation.
func buildParams(requestType contractx.RequestType) (map[string]any, error) {
	params := make(map[string]any)

	clientText, err := readOptionalFile(*briefPathFlag)
	if err != nil {
		return nil, err
	}
	if clientText != "" {
		params["client_text"] = clientText
	}

	extractedText, err := extractDocument(*docPathFlag)
	if err != nil {
		return nil, err
	}

	switch requestType {
	case contractx.RequestGenerateTechnicalSection:
		params["extracted_text"] = extractedText
		if *requirementsFlag != "" {
			params["project_requirements"] = *requirementsFlag
		}
	case contractx.RequestGenerateTimeline:
		params["relevant_text"] = extractedText
		if *contextFlag != "" {
			params["additional_context"] = *contextFlag
		}
	case contractx.RequestGeneratePricing:
		items, err := readPricingItems(*pricingPathFlag)
		if err != nil {
			return nil, err
		}
		params["pricing_details"] = items
	case contractx.RequestApplyUserFeedback:
		draft, err := readOptionalFile(*draftPathFlag)
		if err != nil {
			return nil, err
		}
		params["current_draft"] = draft
		params["user_feedback"] = *feedbackFlag
	case contractx.RequestAnalyzeIndustry:
		params["extracted_text"] = extractedText
	}

	return params, nil
}

func readOptionalFile(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func extractDocument(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", nil
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return extractx.Text(f)
}

func readPricingItems(path string) ([]map[string]any, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var items []map[string]any
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode pricing items from %s: %w", path, err)
	}
	return items, nil
}

// newDraftStore builds the store backend the -store flag selects.
// The cleanup func releases backend resources and may be a no-op.
func newDraftStore(ctx context.Context) (statex.Store, func(), error) {
	switch strings.ToLower(strings.TrimSpace(*storeFlag)) {
	case "redis":
		upstashCfg := configx.MustNew[upstashx.Config]("UPSTASH")
		client, err := upstashx.NewClient(*upstashCfg)
		if err != nil {
			return nil, nil, err
		}
		store, err := statex.NewUpstashRedisStore(client)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	case "postgres":
		pgCfg := configx.MustNew[statex.PostgresConfig]("PROPOSAL_DB")
		store, err := statex.NewPostgresStore(*pgCfg)
		if err != nil {
			return nil, nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", *storeFlag)
	}
}

// persistResult stores generated sections under the given proposal id
// so a later session can revise them.
func persistResult(ctx context.Context, clientName string, params map[string]any, resp contractx.Response) error {
	store, cleanup, err := newDraftStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	proposalID := strings.TrimSpace(*proposalIDFlag)
	proposal, err := store.Load(ctx, proposalID)
	if err != nil {
		if !errors.Is(err, statex.ErrProposalNotFound) {
			return err
		}
		proposal = statex.NewProposal(proposalID, clientName, time.Now())
	}

	if v, ok := params["client_text"].(string); ok && v != "" {
		proposal.ClientText = v
	}
	if v, ok := params["extracted_text"].(string); ok && v != "" {
		proposal.ExtractedText = v
	}
	if v, ok := resp.Payload["classification"].(string); ok {
		proposal.Classification = v
	}
	for _, section := range []string{"technical_solution", "timeline", "pricing_table", "revised_draft", "industry_analysis"} {
		if v, ok := resp.Payload[section].(string); ok && v != "" {
			proposal.SetSection(section, v)
		}
	}
	proposal.Touch(time.Now())

	if err := store.Save(ctx, proposal); err != nil {
		return err
	}

	log.Info().Str("proposal_id", proposalID).Msg("proposal draft saved")
	return nil
}
