package industry

import (
	"strings"
	"testing"
)

func TestAnalyzeEmptyTextReturnsInsufficientData(t *testing.T) {
	t.Parallel()

	a := New()
	if got := a.Analyze("  \n "); got != insufficientDataMessage {
		t.Fatalf("Analyze() = %q, want insufficient data message", got)
	}
}

func TestAnalyzeNoKeywordsReturnsGeneralAnalysis(t *testing.T) {
	t.Parallel()

	a := New()
	got := a.Analyze("We build better mousetraps for happy customers.")

	if !strings.Contains(got, "## General Industry Analysis") {
		t.Fatalf("Analyze() = %q, want general analysis", got)
	}
}

func TestAnalyzePrimaryIndustryOnly(t *testing.T) {
	t.Parallel()

	a := New()
	got := a.Analyze("The hospital clinic treats every patient with telehealth.")

	if !strings.Contains(got, "## Healthcare Industry Analysis") {
		t.Fatalf("Analyze() missing healthcare heading:\n%s", got)
	}
	if strings.Contains(got, "### Additional") {
		t.Fatalf("Analyze() includes secondary section without a qualifying score:\n%s", got)
	}
	if !strings.Contains(got, "### Recommendation for Proposal") {
		t.Fatalf("Analyze() missing recommendation section:\n%s", got)
	}
}

func TestAnalyzeIncludesCloseSecondaryIndustry(t *testing.T) {
	t.Parallel()

	a := New()
	// healthcare scores 3, finance scores 2; 3/2 < 2 so finance appears.
	got := a.Analyze("The hospital clinic supports patient billing with bank payment options.")

	if !strings.Contains(got, "## Healthcare Industry Analysis") {
		t.Fatalf("Analyze() missing healthcare heading:\n%s", got)
	}
	if !strings.Contains(got, "### Additional Finance Sector Considerations") {
		t.Fatalf("Analyze() missing finance secondary section:\n%s", got)
	}
}

func TestAnalyzeExcludesDistantSecondaryIndustry(t *testing.T) {
	t.Parallel()

	a := New()
	// healthcare scores 4, finance scores 2; 4/2 is not below the cutoff.
	got := a.Analyze("The hospital clinic treats each patient, and every physician reviews records, while bank payment runs separately.")

	if !strings.Contains(got, "## Healthcare Industry Analysis") {
		t.Fatalf("Analyze() missing healthcare heading:\n%s", got)
	}
	if strings.Contains(got, "### Additional") {
		t.Fatalf("Analyze() includes secondary section beyond the ratio cutoff:\n%s", got)
	}
}

func TestAnalyzeTieBreaksByName(t *testing.T) {
	t.Parallel()

	a := New()
	// healthcare and finance score 1 apiece; finance wins alphabetically.
	got := a.Analyze("The hospital invoices a bank.")

	if !strings.Contains(got, "## Finance Industry Analysis") {
		t.Fatalf("Analyze() tie did not resolve to finance:\n%s", got)
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	t.Parallel()

	a := New()
	text := "A retail store with e-commerce inventory and supply chain logistics for manufacturing."

	first := a.Analyze(text)
	for i := 0; i < 10; i++ {
		if got := a.Analyze(text); got != first {
			t.Fatalf("Analyze() run %d differs:\n%s\n---\n%s", i, got, first)
		}
	}
}
