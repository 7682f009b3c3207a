package agents

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/mwilhelm/proposalforge/agent/contract"
)

// InsufficientPricingData is returned when the pricing input is
// missing or not a non-empty list. It is a signaled condition, not an
// error.
const InsufficientPricingData = "Insufficient pricing data provided."

type pricingAgent struct{}

var _ contractx.PricingFormatter = (*pricingAgent)(nil)

func newPricingAgent() *pricingAgent {
	return &pricingAgent{}
}

// Format builds a fixed-width pricing table: role left-justified,
// numeric columns right-aligned with two decimals. Rows with
// non-numeric rate or hours coerce those values to zero and are still
// emitted; rows that cannot be decoded at all are skipped with a
// logged error. No model call is involved.
func (a *pricingAgent) Format(details any) string {
	items, ok := coerceLineItems(details)
	if !ok || len(items) == 0 {
		log.Error().Msg("no pricing data provided or invalid data format")
		return InsufficientPricingData
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-20s %15s %18s %15s\n", "Role", "Hourly Rate", "Estimated Hours", "Total Cost")
	b.WriteString(strings.Repeat("-", 70) + "\n")

	for _, item := range items {
		total := item.HourlyRate * item.EstimatedHours
		fmt.Fprintf(&b, "%-20s %15s %18.2f %15s\n",
			item.Role,
			fmt.Sprintf("$%.2f", item.HourlyRate),
			item.EstimatedHours,
			fmt.Sprintf("$%.2f", total))
	}

	return b.String()
}

func coerceLineItems(details any) ([]contractx.PricingLineItem, bool) {
	switch v := details.(type) {
	case nil:
		return nil, false
	case []contractx.PricingLineItem:
		return v, true
	case []map[string]any:
		items := make([]contractx.PricingLineItem, 0, len(v))
		for _, row := range v {
			items = append(items, lineItemFromMap(row))
		}
		return items, true
	case []any:
		items := make([]contractx.PricingLineItem, 0, len(v))
		for _, raw := range v {
			row, ok := raw.(map[string]any)
			if !ok {
				log.Error().Interface("row", raw).Msg("skipping undecodable pricing row")
				continue
			}
			items = append(items, lineItemFromMap(row))
		}
		return items, true
	default:
		return nil, false
	}
}

func lineItemFromMap(row map[string]any) contractx.PricingLineItem {
	role := "N/A"
	if v, ok := row["role"].(string); ok && v != "" {
		role = v
	}
	return contractx.PricingLineItem{
		Role:           role,
		HourlyRate:     toFloat(row["hourly_rate"]),
		EstimatedHours: toFloat(row["estimated_hours"]),
	}
}

// toFloat coerces loosely-typed numeric values; anything unparseable
// becomes zero rather than rejecting the row.
func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
