// Package industry derives deterministic markdown insight for a
// client's business sector by scoring whole-word keyword occurrences
// against per-industry profiles. The output is rendered text, not a
// reusable structure; downstream consumers only see the markdown.
package industry

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/mwilhelm/proposalforge/agent/contract"
)

// A secondary industry only appears when the primary score is less
// than twice the secondary score, keeping noise sectors out.
const secondaryRatioCutoff = 2

const insufficientDataMessage = "Insufficient information to perform industry analysis."

type profile struct {
	keywords        []string
	talkingPoints   []string
	complianceNotes string
}

type Analyzer struct {
	profiles map[string]profile
	patterns map[string]*regexp.Regexp
}

var _ contractx.IndustryAnalyzer = (*Analyzer)(nil)

func New() *Analyzer {
	a := &Analyzer{
		profiles: map[string]profile{
			"healthcare": {
				keywords: []string{
					"healthcare", "hospital", "medical", "clinic", "patient", "physician",
					"ehr", "electronic health record", "hipaa", "health insurance", "medicare",
					"medicaid", "telehealth", "telemedicine", "pharmaceutical", "clinical",
				},
				talkingPoints: []string{
					"Ensuring HIPAA compliance and patient data security is paramount to any healthcare solution.",
					"Modern healthcare organizations require seamless integration between clinical and administrative systems.",
					"Healthcare providers are seeking technology that reduces administrative burden while improving patient outcomes.",
					"Solutions that enhance patient engagement while maintaining privacy are highly valued in healthcare.",
					"Interoperability with existing Electronic Health Record (EHR) systems is a critical requirement.",
					"Telehealth capabilities have become essential in modern healthcare delivery models.",
				},
				complianceNotes: "HIPAA, HITECH Act, FDA regulations for medical devices, state-specific healthcare regulations",
			},
			"finance": {
				keywords: []string{
					"finance", "bank", "investment", "insurance", "financial", "credit",
					"lending", "mortgage", "wealth management", "asset", "portfolio",
					"fintech", "payment", "transaction", "regulatory compliance", "trading",
				},
				talkingPoints: []string{
					"Financial institutions require robust security measures that meet regulatory standards while enabling business agility.",
					"Solutions must address the challenge of legacy system integration without disrupting critical financial operations.",
					"Advanced analytics capabilities can help financial organizations leverage their data for competitive advantage.",
					"Regulatory compliance including AML, KYC, and fraud detection should be built into any financial technology solution.",
					"Real-time processing and high availability are non-negotiable for financial transaction systems.",
					"Financial institutions are increasingly focused on improving customer experience through digital transformation.",
				},
				complianceNotes: "SEC regulations, Gramm-Leach-Bliley Act, Dodd-Frank, PCI DSS, Basel frameworks",
			},
			"government": {
				keywords: []string{
					"government", "federal", "agency", "public sector", "state", "municipal",
					"department", "regulation", "compliance", "procurement", "civilian",
					"defense", "military", "public safety", "public works", "citizen service",
				},
				talkingPoints: []string{
					"Government solutions must prioritize security, compliance, and accessibility requirements.",
					"Demonstrating adherence to FedRAMP, FISMA, and other government security standards is essential.",
					"Procurement processes in government require detailed documentation and compliance with specific contracting vehicles.",
					"Government agencies often require solutions that can be customized to their unique workflows while maintaining security.",
					"Solutions for government should emphasize long-term value, sustainability, and cost-effectiveness.",
					"Citizen-facing systems must be designed for maximum accessibility and inclusiveness.",
				},
				complianceNotes: "FISMA, FedRAMP, Section 508 accessibility, NIST frameworks, CMMC",
			},
			"education": {
				keywords: []string{
					"education", "school", "university", "college", "student", "campus",
					"learning", "academic", "faculty", "classroom", "curriculum",
					"e-learning", "lms", "learning management", "distance learning", "teacher",
				},
				talkingPoints: []string{
					"Educational institutions need scalable solutions that support both in-person and remote learning environments.",
					"Integration with existing Learning Management Systems (LMS) is typically a key requirement.",
					"Solutions should be designed to enhance educational outcomes while simplifying administrative processes.",
					"Student data privacy and FERPA compliance must be prioritized in educational technology solutions.",
					"Accessibility features are essential to ensure equal access to educational resources.",
					"Technology should enable data-driven decision making while protecting sensitive student information.",
				},
				complianceNotes: "FERPA, COPPA (for K-12), state education privacy laws, accessibility requirements",
			},
			"retail": {
				keywords: []string{
					"retail", "store", "e-commerce", "merchandise", "inventory", "pos",
					"point of sale", "consumer", "shopping", "omnichannel", "supply chain",
					"logistics", "fulfillment", "customer experience", "loyalty", "pricing",
				},
				talkingPoints: []string{
					"Modern retail requires seamless integration between online and offline channels for true omnichannel experiences.",
					"Inventory management systems must provide real-time visibility across all sales channels and warehouses.",
					"Customer data platforms that unify shopper information can drive personalization and increase loyalty.",
					"Payment systems must be secure, flexible, and support diverse payment methods including mobile and contactless options.",
					"Supply chain visibility and agility have become critical success factors for retailers.",
					"Solutions should help retailers leverage data to optimize pricing, promotions, and inventory decisions.",
				},
				complianceNotes: "PCI DSS, consumer protection regulations, ADA accessibility for e-commerce",
			},
			"manufacturing": {
				keywords: []string{
					"manufacturing", "factory", "production", "industrial", "supply chain",
					"inventory", "quality control", "assembly", "fabrication", "equipment",
					"maintenance", "iot", "sensors", "automation", "warehouse", "logistics",
				},
				talkingPoints: []string{
					"Modern manufacturing operations require real-time visibility into production processes and supply chains.",
					"IoT and sensor integration enable predictive maintenance and reduction in equipment downtime.",
					"Solutions should help manufacturers improve quality control while optimizing production efficiency.",
					"Supply chain resilience and visibility have become critical concerns for manufacturing operations.",
					"Data integration across systems can provide valuable insights for continuous improvement initiatives.",
					"Technology solutions should demonstrate clear ROI through operational efficiency and reduced downtime.",
				},
				complianceNotes: "ISO standards, industry-specific quality standards, safety regulations, environmental compliance",
			},
			"technology": {
				keywords: []string{
					"technology", "software", "hardware", "it", "cloud", "saas",
					"digital transformation", "artificial intelligence", "machine learning",
					"development", "cybersecurity", "data center", "platform", "api", "integration",
				},
				talkingPoints: []string{
					"Technology companies need solutions that can scale rapidly while maintaining security and compliance.",
					"API-first architecture and strong integration capabilities are typically essential requirements.",
					"Development and deployment automation can significantly improve time-to-market for technology products.",
					"Robust security measures and compliance frameworks are critical for technology service providers.",
					"Solutions should enable data-driven decision making while respecting privacy concerns.",
					"Modern technology operations require tools that support both cloud-native and hybrid infrastructure.",
				},
				complianceNotes: "Various framework compliance depending on sector served (HIPAA, PCI, SOC2, ISO 27001, GDPR)",
			},
		},
		patterns: make(map[string]*regexp.Regexp, 112),
	}

	for _, p := range a.profiles {
		for _, kw := range p.keywords {
			if _, ok := a.patterns[kw]; ok {
				continue
			}
			a.patterns[kw] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
		}
	}

	return a
}

// Analyze scores each industry by whole-word keyword count and renders
// markdown for the primary industry, plus the secondary industry when
// it qualifies. Zero scores across the board produce a general
// analysis; empty input produces an insufficient-data message. Output
// is a pure function of the input text.
func (a *Analyzer) Analyze(text string) string {
	if strings.TrimSpace(text) == "" {
		log.Warn().Msg("empty text provided for industry analysis")
		return insufficientDataMessage
	}

	lower := strings.ToLower(text)

	scores := make(map[string]int, len(a.profiles))
	for name, p := range a.profiles {
		for _, kw := range p.keywords {
			scores[name] += len(a.patterns[kw].FindAllStringIndex(lower, -1))
		}
	}

	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	// Equal scores resolve alphabetically; profile ordering carries no
	// priority.
	sort.Slice(names, func(i, j int) bool {
		if scores[names[i]] != scores[names[j]] {
			return scores[names[i]] > scores[names[j]]
		}
		return names[i] < names[j]
	})

	primary := names[0]
	if scores[primary] == 0 {
		log.Info().Msg("no clear industry detected in the text")
		return generalAnalysis
	}

	secondary := ""
	if len(names) > 1 && scores[names[1]] > 0 {
		if scores[primary]/max(1, scores[names[1]]) < secondaryRatioCutoff {
			secondary = names[1]
		}
	}

	log.Info().
		Str("primary", primary).
		Str("secondary", secondary).
		Int("primary_score", scores[primary]).
		Msg("industry analysis complete")

	return a.render(primary, secondary)
}

func (a *Analyzer) render(primary, secondary string) string {
	primaryData := a.profiles[primary]

	var b strings.Builder
	fmt.Fprintf(&b, "## %s Industry Analysis\n\n", capitalize(primary))
	b.WriteString("### Key Industry Insights\n")
	for _, point := range firstN(primaryData.talkingPoints, 4) {
		fmt.Fprintf(&b, "- %s\n", point)
	}

	fmt.Fprintf(&b, "\n### Compliance Considerations\n%s\n", primaryData.complianceNotes)

	if secondary != "" {
		secondaryData := a.profiles[secondary]
		fmt.Fprintf(&b, "\n### Additional %s Sector Considerations\n", capitalize(secondary))
		for _, point := range firstN(secondaryData.talkingPoints, 2) {
			fmt.Fprintf(&b, "- %s\n", point)
		}
	}

	b.WriteString("\n### Recommendation for Proposal\n")
	fmt.Fprintf(&b, "This proposal should emphasize solutions specifically designed for the %s ", primary)
	b.WriteString("sector, highlighting expertise in addressing the unique challenges and requirements of this industry. ")
	if secondary != "" {
		fmt.Fprintf(&b, "Also consider including elements relevant to the %s sector where appropriate.", secondary)
	}

	return b.String()
}

const generalAnalysis = `## General Industry Analysis

No specific industry was clearly identified in the provided documents. Consider focusing on these universal business values in your proposal:

### Key Business Priorities
- Operational efficiency and cost optimization
- Security and risk management
- Digital transformation and modernization
- Data-driven decision making
- Customer experience enhancement
- Business continuity and resilience

### Recommendation for Proposal
Without a clear industry focus, emphasize adaptability of your solution to various business contexts and how it addresses fundamental business needs like efficiency, security, and ROI. Consider asking the client for additional information about their industry-specific requirements.`

func firstN(points []string, n int) []string {
	if len(points) < n {
		n = len(points)
	}
	return points[:n]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
