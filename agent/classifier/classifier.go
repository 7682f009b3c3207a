// Package classifier assigns client organizations to a coarse category
// (government or enterprise) plus an internal size bucket, by scoring
// whole-word keyword occurrences against weighted taxonomies.
package classifier

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/mwilhelm/proposalforge/agent/contract"
)

type Classifier struct {
	governmentKeywords map[string][]string
	enterpriseKeywords map[string][]string
	otherOrgKeywords   map[string][]string
	sizeKeywords       map[string][]string

	patterns map[string]*regexp.Regexp
}

var _ contractx.Classifier = (*Classifier)(nil)

func New() *Classifier {
	c := &Classifier{
		governmentKeywords: map[string][]string{
			"federal":  {"federal", "national", "united states", "federal agency", "u.s. government"},
			"state":    {"state government", "state agency", "state of"},
			"local":    {"municipal", "county", "city of", "local government", "town"},
			"military": {"defense", "military", "army", "navy", "air force", "marines", "dod", "defense department"},
			"general":  {"public sector", "government", "govt", "g2g", "g2b"},
		},
		enterpriseKeywords: map[string][]string{
			"corporate":     {"private", "corporation", "inc", "llc", "company", "business", "enterprise"},
			"finance":       {"bank", "financial", "investment", "insurance", "capital", "wealth", "fintech"},
			"healthcare":    {"healthcare", "hospital", "medical", "health system", "clinic", "pharma"},
			"technology":    {"tech", "software", "it company", "technology", "digital", "tech firm"},
			"retail":        {"retail", "store", "e-commerce", "consumer goods", "shopping"},
			"manufacturing": {"manufacturing", "factory", "production", "industrial"},
		},
		otherOrgKeywords: map[string][]string{
			"non_profit": {"non-profit", "nonprofit", "ngo", "foundation", "charity", "501c"},
			"academic":   {"university", "school", "college", "education", "academy", "institute"},
		},
		sizeKeywords: map[string][]string{
			"small":            {"small business", "startup", "small company", "fewer than 50", "small team"},
			"medium":           {"medium-sized", "growing company", "mid-size"},
			"large":            {"large enterprise", "corporation", "fortune 500", "global", "multinational", "enterprise"},
			"government_large": {"federal", "department", "agency"},
		},
		patterns: make(map[string]*regexp.Regexp, 64),
	}

	for _, group := range []map[string][]string{
		c.governmentKeywords,
		c.enterpriseKeywords,
		c.otherOrgKeywords,
		c.sizeKeywords,
	} {
		for _, keywords := range group {
			for _, kw := range keywords {
				if _, ok := c.patterns[kw]; ok {
					continue
				}
				c.patterns[kw] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
			}
		}
	}

	return c
}

// Classify scores the text against the government, enterprise, and
// other-organization taxonomies and returns the winning category. Ties
// involving government resolve to government; everything else,
// including an other-org win, resolves to enterprise. Empty input
// defaults to enterprise without error.
func (c *Classifier) Classify(text string) contractx.Classification {
	if strings.TrimSpace(text) == "" {
		log.Warn().Msg("empty text provided for classification, defaulting to enterprise")
		return contractx.Classification{
			Category: contractx.CategoryEnterprise,
			Size:     contractx.SizeMedium,
		}
	}

	lower := strings.ToLower(text)

	govScore := c.groupScore(lower, c.governmentKeywords)
	enterpriseScore := c.groupScore(lower, c.enterpriseKeywords)
	otherScore := c.groupScore(lower, c.otherOrgKeywords)

	maxScore := max(govScore, enterpriseScore, otherScore)

	var category contractx.Category
	switch {
	case maxScore == 0:
		log.Info().Msg("no classification indicators found, defaulting to enterprise")
		category = contractx.CategoryEnterprise
	case maxScore == govScore:
		category = contractx.CategoryGovernment
	case maxScore == otherScore:
		// Non-profit and academic fold into enterprise.
		category = contractx.CategoryEnterprise
	default:
		category = contractx.CategoryEnterprise
	}

	size := c.determineSize(lower, category)

	log.Info().
		Str("category", string(category)).
		Str("size", string(size)).
		Int("gov_score", govScore).
		Int("enterprise_score", enterpriseScore).
		Int("other_score", otherScore).
		Msg("client classified")

	return contractx.Classification{Category: category, Size: size}
}

func (c *Classifier) groupScore(lower string, group map[string][]string) int {
	score := 0
	for _, keywords := range group {
		for _, kw := range keywords {
			score += len(c.patterns[kw].FindAllStringIndex(lower, -1))
		}
	}
	return score
}

// determineSize scores the size buckets. A government classification
// with any government-size signal forces large; otherwise the highest
// non-signal bucket wins, defaulting to medium on a zero-score tie.
func (c *Classifier) determineSize(lower string, category contractx.Category) contractx.OrgSize {
	scores := make(map[string]int, len(c.sizeKeywords))
	for bucket, keywords := range c.sizeKeywords {
		score := 0
		for _, kw := range keywords {
			score += len(c.patterns[kw].FindAllStringIndex(lower, -1))
		}
		scores[bucket] = score
	}

	if category == contractx.CategoryGovernment && scores["government_large"] > 0 {
		return contractx.SizeLarge
	}

	maxScore := 0
	size := contractx.SizeMedium
	for _, bucket := range []string{"small", "medium", "large"} {
		if scores[bucket] > maxScore {
			maxScore = scores[bucket]
			size = contractx.OrgSize(bucket)
		}
	}
	return size
}
