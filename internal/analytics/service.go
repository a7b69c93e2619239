package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/prismlabs/prism-tui/internal/models"
)

// Backend is the slice of the API client the analytics service consumes.
type Backend interface {
	Summary(ctx context.Context, period models.Period) (*models.Summary, error)
	CostOverTime(ctx context.Context, period models.Period, granularity models.Granularity) ([]models.SeriesPoint, error)
	ByModel(ctx context.Context, period models.Period) ([]models.ModelBreakdownRow, error)
	ByKey(ctx context.Context, period models.Period) ([]models.KeyBreakdownRow, error)
}

// ModelShare is a per-model breakdown row with its share of total spend.
type ModelShare struct {
	models.ModelBreakdownRow
	Share float64
}

// KeyShare is a per-credential breakdown row with its share of total spend.
type KeyShare struct {
	models.KeyBreakdownRow
	Share float64
}

// Dashboard is the joined result of one batched fetch. All four queries
// reflect the same period; a batch never yields partial data.
type Dashboard struct {
	Period  models.Period
	Summary models.Summary
	Series  []models.SeriesPoint
	ByModel []ModelShare
	ByKey   []KeyShare

	EstimatedSavings  float64
	BudgetPercent     float64
	AvgCostPerRequest float64

	// Cached marks a dashboard rebuilt from the local snapshot store
	// rather than a live fetch. CachedAt is the original fetch time.
	Cached   bool
	CachedAt time.Time
}

// Service owns the batched dashboard fetch and all derived figures.
// SavingsMultiplier and BudgetCap are deployment configuration, injected
// rather than hardcoded.
type Service struct {
	backend           Backend
	savingsMultiplier float64
	budgetCap         float64
}

// New creates an analytics service.
func New(backend Backend, savingsMultiplier, budgetCap float64) *Service {
	return &Service{
		backend:           backend,
		savingsMultiplier: savingsMultiplier,
		budgetCap:         budgetCap,
	}
}

// BudgetCap returns the configured budget cap in USD.
func (s *Service) BudgetCap() float64 {
	return s.budgetCap
}

// FetchDashboard issues the four dashboard queries concurrently and joins
// them. Any single failure fails the whole batch: no mixed-period or partial
// state ever reaches a consumer. The returned Dashboard is tagged with the
// period it was issued for so superseded batches can be discarded.
func (s *Service) FetchDashboard(ctx context.Context, period models.Period) (*Dashboard, error) {
	var (
		wg      sync.WaitGroup
		summary *models.Summary
		series  []models.SeriesPoint
		byModel []models.ModelBreakdownRow
		byKey   []models.KeyBreakdownRow
		errs    [4]error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		summary, errs[0] = s.backend.Summary(ctx, period)
	}()
	go func() {
		defer wg.Done()
		series, errs[1] = s.backend.CostOverTime(ctx, period, models.GranularityDay)
	}()
	go func() {
		defer wg.Done()
		byModel, errs[2] = s.backend.ByModel(ctx, period)
	}()
	go func() {
		defer wg.Done()
		byKey, errs[3] = s.backend.ByKey(ctx, period)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return s.compose(period, *summary, series, byModel, byKey), nil
}

// compose assembles a Dashboard with every derived figure computed.
func (s *Service) compose(period models.Period, summary models.Summary, series []models.SeriesPoint, byModel []models.ModelBreakdownRow, byKey []models.KeyBreakdownRow) *Dashboard {
	d := &Dashboard{
		Period:  period,
		Summary: summary,
		Series:  series,

		EstimatedSavings:  EstimatedSavings(summary, s.savingsMultiplier),
		BudgetPercent:     BudgetUtilization(summary, s.budgetCap),
		AvgCostPerRequest: AverageCostPerRequest(summary),
	}

	var modelTotal float64
	for _, row := range byModel {
		modelTotal += row.CostUSD
	}
	d.ByModel = make([]ModelShare, len(byModel))
	for i, row := range byModel {
		d.ByModel[i] = ModelShare{
			ModelBreakdownRow: row,
			Share:             PercentOfTotal(row.CostUSD, modelTotal),
		}
	}

	var keyTotal float64
	for _, row := range byKey {
		keyTotal += row.CostUSD
	}
	d.ByKey = make([]KeyShare, len(byKey))
	for i, row := range byKey {
		d.ByKey[i] = KeyShare{
			KeyBreakdownRow: row,
			Share:           PercentOfTotal(row.CostUSD, keyTotal),
		}
	}

	return d
}

// FromCache rebuilds a dashboard from a locally cached summary. Breakdowns
// are not cached, so the result carries only the summary, its derived
// figures, and whatever series the caller reconstructed from snapshots.
func (s *Service) FromCache(period models.Period, summary models.Summary, series []models.SeriesPoint, fetchedAt time.Time) *Dashboard {
	d := s.compose(period, summary, series, nil, nil)
	d.Cached = true
	d.CachedAt = fetchedAt
	return d
}

// CostSeries extracts the cost values for charting, in chronological order.
func (d *Dashboard) CostSeries() []float64 {
	costs := make([]float64, len(d.Series))
	for i, p := range d.Series {
		costs[i] = p.CostUSD
	}
	return costs
}
