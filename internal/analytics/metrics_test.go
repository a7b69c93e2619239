package analytics

import (
	"testing"

	"github.com/prismlabs/prism-tui/internal/models"
)

func TestEstimatedSavings(t *testing.T) {
	summary := models.Summary{TotalCostUSD: 100}
	if got := EstimatedSavings(summary, 5); got != 500 {
		t.Errorf("EstimatedSavings(100, x5) = %v, want 500", got)
	}
	if got := EstimatedSavings(models.Summary{}, 5); got != 0 {
		t.Errorf("EstimatedSavings(0) = %v, want 0", got)
	}
}

func TestBudgetUtilization(t *testing.T) {
	tests := []struct {
		name string
		cost float64
		cap  float64
		want float64
	}{
		{"Partial", 2500, 12500, 20},
		{"Full", 12500, 12500, 100},
		{"OverCapClamped", 20000, 12500, 100},
		{"ZeroCost", 0, 12500, 0},
		{"ZeroCap", 100, 0, 0},
		{"NegativeCap", 100, -5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := models.Summary{TotalCostUSD: tt.cost}
			if got := BudgetUtilization(summary, tt.cap); got != tt.want {
				t.Errorf("BudgetUtilization(%v, %v) = %v, want %v", tt.cost, tt.cap, got, tt.want)
			}
		})
	}
}

func TestPercentOfTotal(t *testing.T) {
	if got := PercentOfTotal(30, 100); got != 30 {
		t.Errorf("PercentOfTotal(30, 100) = %v, want 30", got)
	}
	if got := PercentOfTotal(70, 100); got != 70 {
		t.Errorf("PercentOfTotal(70, 100) = %v, want 70", got)
	}
	// Zero total is not an error, every row gets 0.
	if got := PercentOfTotal(0, 0); got != 0 {
		t.Errorf("PercentOfTotal(0, 0) = %v, want 0", got)
	}
}

func TestAverageCostPerRequest(t *testing.T) {
	if got := AverageCostPerRequest(models.Summary{TotalCostUSD: 10, TotalRequests: 400}); got != 0.025 {
		t.Errorf("AverageCostPerRequest = %v, want 0.025", got)
	}
	// No requests yields 0, not a division error.
	if got := AverageCostPerRequest(models.Summary{TotalCostUSD: 100, TotalRequests: 0}); got != 0 {
		t.Errorf("AverageCostPerRequest with zero requests = %v, want 0", got)
	}
}

func TestPrecisionPreserved(t *testing.T) {
	// Sub-cent amounts must survive derivation without rounding.
	summary := models.Summary{TotalCostUSD: 0.1234, TotalRequests: 2}
	if got := AverageCostPerRequest(summary); got != 0.0617 {
		t.Errorf("AverageCostPerRequest = %v, want 0.0617", got)
	}
}
