package agents

import (
	"strings"
	"testing"

	contractx "github.com/mwilhelm/proposalforge/agent/contract"
)

func TestPricingFormatTable(t *testing.T) {
	t.Parallel()

	agent := newPricingAgent()
	got := agent.Format([]map[string]any{
		{"role": "Engineer", "hourly_rate": 100.0, "estimated_hours": 10.0},
	})

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Format() produced %d lines, want 3:\n%s", len(lines), got)
	}
	if !strings.HasPrefix(lines[0], "Role") {
		t.Fatalf("Format() header = %q", lines[0])
	}
	if lines[1] != strings.Repeat("-", 70) {
		t.Fatalf("Format() separator = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "Engineer") {
		t.Fatalf("Format() row = %q", lines[2])
	}
	if !strings.Contains(lines[2], "$100.00") {
		t.Fatalf("Format() row missing rate: %q", lines[2])
	}
	if !strings.Contains(lines[2], "$1000.00") {
		t.Fatalf("Format() row missing total: %q", lines[2])
	}
}

func TestPricingFormatEmptyOrInvalidInput(t *testing.T) {
	t.Parallel()

	agent := newPricingAgent()
	for _, details := range []any{
		nil,
		[]any{},
		[]map[string]any{},
		"not a list",
		42,
	} {
		if got := agent.Format(details); got != InsufficientPricingData {
			t.Fatalf("Format(%#v) = %q, want sentinel", details, got)
		}
	}
}

func TestPricingFormatCoercesBadNumbersToZero(t *testing.T) {
	t.Parallel()

	agent := newPricingAgent()
	got := agent.Format([]map[string]any{
		{"role": "Analyst", "hourly_rate": "not-a-number", "estimated_hours": "abc"},
	})

	if !strings.Contains(got, "Analyst") {
		t.Fatalf("Format() dropped the row:\n%s", got)
	}
	if !strings.Contains(got, "$0.00") {
		t.Fatalf("Format() did not coerce bad numbers to zero:\n%s", got)
	}
}

func TestPricingFormatDefaultsMissingRole(t *testing.T) {
	t.Parallel()

	agent := newPricingAgent()
	got := agent.Format([]map[string]any{
		{"hourly_rate": 50, "estimated_hours": 2},
	})

	if !strings.Contains(got, "N/A") {
		t.Fatalf("Format() missing role placeholder:\n%s", got)
	}
	if !strings.Contains(got, "$100.00") {
		t.Fatalf("Format() wrong total for int inputs:\n%s", got)
	}
}

func TestPricingFormatSkipsUndecodableRows(t *testing.T) {
	t.Parallel()

	agent := newPricingAgent()
	got := agent.Format([]any{
		"garbage",
		map[string]any{"role": "Engineer", "hourly_rate": 100.0, "estimated_hours": 1.0},
	})

	if strings.Contains(got, "garbage") {
		t.Fatalf("Format() emitted undecodable row:\n%s", got)
	}
	if !strings.Contains(got, "Engineer") {
		t.Fatalf("Format() dropped the valid row:\n%s", got)
	}
}

func TestPricingFormatTypedLineItems(t *testing.T) {
	t.Parallel()

	agent := newPricingAgent()
	got := agent.Format([]contractx.PricingLineItem{
		{Role: "PM", HourlyRate: 120, EstimatedHours: 0.5},
	})

	if !strings.Contains(got, "PM") || !strings.Contains(got, "$60.00") {
		t.Fatalf("Format() typed items wrong:\n%s", got)
	}
}
