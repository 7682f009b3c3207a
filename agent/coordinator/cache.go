package coordinator

import (
	"github.com/rs/zerolog/log"

	contractx "github.com/mwilhelm/proposalforge/agent/contract"
)

// cacheEntry memoizes the classify+tone step, keyed by the exact
// client-description text. The same text always returns the same
// tuple for the coordinator's lifetime; this staleness is an accepted
// trade-off, not a bug.
type cacheEntry struct {
	classification contractx.Classification
	tone           contractx.ToneSettings
}

// classificationAndTone resolves classification and tone for the
// client text, serving repeats from the LRU cache. Any internal
// failure falls back silently to the enterprise defaults; resolution
// problems must never block content generation.
func (c *Coordinator) classificationAndTone(clientText string) (contractx.Classification, contractx.ToneSettings) {
	if entry, ok := c.cache.Get(clientText); ok {
		return entry.classification, entry.tone
	}

	entry := func() (e cacheEntry) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Msg("classification failed, falling back to enterprise defaults")
				e = c.enterpriseDefaults()
			}
		}()
		cls := c.classifier.Classify(clientText)
		return cacheEntry{
			classification: cls,
			tone:           c.tones.Resolve(string(cls.Category)),
		}
	}()

	c.cache.Add(clientText, entry)
	return entry.classification, entry.tone
}

func (c *Coordinator) enterpriseDefaults() cacheEntry {
	return cacheEntry{
		classification: contractx.Classification{
			Category: contractx.CategoryEnterprise,
			Size:     contractx.SizeMedium,
		},
		tone: c.tones.Resolve(string(contractx.CategoryEnterprise)),
	}
}
