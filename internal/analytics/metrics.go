// Package analytics fetches raw usage data and computes every derived figure
// shown by the UI. Consumers never recompute; all math lives here.
package analytics

import "github.com/prismlabs/prism-tui/internal/models"

// EstimatedSavings projects measured spend into an estimated labor-cost
// saving. It is a heuristic, not a measurement, and is labeled as such
// wherever it is displayed.
func EstimatedSavings(summary models.Summary, multiplier float64) float64 {
	return summary.TotalCostUSD * multiplier
}

// BudgetUtilization returns spend as a percentage of the budget cap,
// capped at 100. A non-positive cap yields 0.
func BudgetUtilization(summary models.Summary, budgetCap float64) float64 {
	if budgetCap <= 0 {
		return 0
	}
	pct := summary.TotalCostUSD / budgetCap * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// PercentOfTotal returns cost as a percentage of total, and 0 when the
// total is 0 so that an all-zero row set renders as all-zero shares.
func PercentOfTotal(cost, total float64) float64 {
	if total == 0 {
		return 0
	}
	return cost / total * 100
}

// AverageCostPerRequest returns mean spend per request, and 0 when no
// requests were recorded.
func AverageCostPerRequest(summary models.Summary) float64 {
	if summary.TotalRequests <= 0 {
		return 0
	}
	return summary.TotalCostUSD / float64(summary.TotalRequests)
}
