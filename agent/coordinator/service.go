// Package coordinator is the orchestration core. It validates typed
// requests, resolves classification and tone (cached), fans out to the
// generation agents, and merges their outputs into one response
// envelope. Failures are isolated per request: nothing escapes
// ProcessRequest.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"

	contractx "github.com/mwilhelm/proposalforge/agent/contract"
)

// classificationCacheSize bounds the classify+tone memo. Oldest unused
// entries are evicted; entries live for the coordinator's lifetime.
const classificationCacheSize = 32

type Coordinator struct {
	classifier contractx.Classifier
	tones      contractx.ToneResolver
	industry   contractx.IndustryAnalyzer
	registry   contractx.Registry

	cache *lru.Cache[string, cacheEntry]

	graphRunner compose.Runnable[*requestState, map[string]any]
}

func New(
	classifier contractx.Classifier,
	tones contractx.ToneResolver,
	industry contractx.IndustryAnalyzer,
	registry contractx.Registry,
) (*Coordinator, error) {
	if classifier == nil {
		return nil, errors.New("classifier is required")
	}
	if tones == nil {
		return nil, errors.New("tone resolver is required")
	}
	if industry == nil {
		return nil, errors.New("industry analyzer is required")
	}
	if registry == nil {
		return nil, errors.New("agent registry is required")
	}

	cache, err := lru.New[string, cacheEntry](classificationCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create classification cache: %w", err)
	}

	c := &Coordinator{
		classifier: classifier,
		tones:      tones,
		industry:   industry,
		registry:   registry,
		cache:      cache,
	}

	graphRunner, err := c.compileProcessGraph(context.Background())
	if err != nil {
		return nil, err
	}
	c.graphRunner = graphRunner

	log.Info().Msg("coordinator initialized with all agents")
	return c, nil
}

// ProcessRequest runs one request to completion and returns the merged
// envelope. Validation failures and handler errors come back as
// status=error responses; generation degradations come back as
// status=success with diagnostic payload text. The method never
// panics out to the caller.
func (c *Coordinator) ProcessRequest(
	ctx context.Context,
	requestType contractx.RequestType,
	params map[string]any,
) (resp contractx.Response) {
	requestID := uuid.NewString()
	logger := log.With().
		Str("request_id", requestID).
		Str("request_type", string(requestType)).
		Logger()
	logger.Info().Msg("processing request")

	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("panic while processing request")
			resp = contractx.ErrorResponse(fmt.Sprintf("Error processing request: %v", r))
		}
	}()

	// Validation happens before the graph runs so a malformed request
	// can never reach an agent.
	st, err := validateRequest(requestType, params)
	if err != nil {
		if errors.Is(err, contractx.ErrUnsupportedRequest) {
			msg := fmt.Sprintf("Unsupported request type: %s", requestType)
			logger.Error().Msg(msg)
			return contractx.ErrorResponse(msg)
		}
		msg := fmt.Sprintf("Invalid request parameters: %s", trimSentinel(err, contractx.ErrValidation))
		logger.Error().Msg(msg)
		return contractx.ErrorResponse(msg)
	}
	st.requestID = requestID

	payload, err := c.graphRunner.Invoke(ctx, st)
	if err != nil {
		if errors.Is(err, contractx.ErrValidation) {
			msg := fmt.Sprintf("Invalid request parameters: %s", trimSentinel(err, contractx.ErrValidation))
			logger.Error().Msg(msg)
			return contractx.ErrorResponse(msg)
		}
		logger.Error().Err(err).Msg("error processing request")
		return contractx.ErrorResponse(fmt.Sprintf("Error processing request: %s", err))
	}

	logger.Info().Msg("request processed successfully")
	return contractx.SuccessResponse(payload)
}

// trimSentinel strips the wrapped sentinel prefix so user-facing
// messages read naturally.
func trimSentinel(err error, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}
